// Package viewer provides the image viewer widget: it renders the source
// image aspect-fit, overlays recognized word boxes, tracks hover, and
// supports click-drag selection of a region of interest.
package viewer

import (
	"image"
	stddraw "image/draw"

	"textlens/internal/ocr"
	"textlens/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const noWord = -1

// Viewer displays the source image with word box overlays.
type Viewer struct {
	widget.BaseWidget

	raster *fynecanvas.Raster

	img   *image.RGBA // Source image, converted once for fast pixel access
	words []ocr.WordBox
	roi   *geometry.RectInt

	hoveredID  int
	selectedID int

	// Rubber-band selection state. selectMode arms the next drag as a
	// region selection and disarms itself when the drag ends.
	selectMode bool
	selecting  bool
	selStart   fyne.Position
	selEnd     fyne.Position

	onWordHovered    func(id int)
	onWordTapped     func(id int)
	onRegionSelected func(r geometry.RectInt)
}

var (
	_ desktop.Hoverable = (*Viewer)(nil)
	_ fyne.Tappable     = (*Viewer)(nil)
	_ fyne.Draggable    = (*Viewer)(nil)
)

// New creates an empty viewer.
func New() *Viewer {
	v := &Viewer{
		hoveredID:  noWord,
		selectedID: noWord,
	}
	v.raster = fynecanvas.NewRaster(v.draw)
	v.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	v.ExtendBaseWidget(v)
	return v
}

// SetImage sets the image to display and clears all overlays.
func (v *Viewer) SetImage(img image.Image) {
	if img == nil {
		v.img = nil
	} else {
		b := img.Bounds()
		rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		stddraw.Draw(rgba, rgba.Bounds(), img, b.Min, stddraw.Src)
		v.img = rgba
	}
	v.words = nil
	v.roi = nil
	v.hoveredID = noWord
	v.selectedID = noWord
	v.Refresh()
}

// SetWords sets the word boxes to overlay.
func (v *Viewer) SetWords(words []ocr.WordBox) {
	v.words = words
	v.hoveredID = noWord
	v.selectedID = noWord
	v.Refresh()
}

// SetROI sets the region-of-interest rectangle to display, nil to clear.
func (v *Viewer) SetROI(roi *geometry.RectInt) {
	v.roi = roi
	v.Refresh()
}

// SetHighlight highlights the word with the given ID (hover from the
// transcript side). Pass -1 to clear.
func (v *Viewer) SetHighlight(id int) {
	if v.hoveredID == id {
		return
	}
	v.hoveredID = id
	v.Refresh()
}

// SetSelected marks the word with the given ID as selected. Pass -1 to clear.
func (v *Viewer) SetSelected(id int) {
	if v.selectedID == id {
		return
	}
	v.selectedID = id
	v.Refresh()
}

// ArmSelectMode makes the next drag create a region selection.
func (v *Viewer) ArmSelectMode() {
	v.selectMode = true
	v.selecting = false
}

// OnWordHovered sets the callback for hover changes; id is -1 when the
// cursor leaves all boxes.
func (v *Viewer) OnWordHovered(callback func(id int)) {
	v.onWordHovered = callback
}

// OnWordTapped sets the callback for word selection by click.
func (v *Viewer) OnWordTapped(callback func(id int)) {
	v.onWordTapped = callback
}

// OnRegionSelected sets the callback for a completed region drag.
// Coordinates are in original-image space, unclamped.
func (v *Viewer) OnRegionSelected(callback func(r geometry.RectInt)) {
	v.onRegionSelected = callback
}

// Refresh redraws the viewer.
func (v *Viewer) Refresh() {
	v.raster.Refresh()
	v.BaseWidget.Refresh()
}

// viewTransform returns the image-to-viewport transform for the given
// viewport size.
func (v *Viewer) viewTransform(viewW, viewH float64) geometry.ViewTransform {
	if v.img == nil {
		return geometry.ViewTransform{Scale: 1}
	}
	b := v.img.Bounds()
	return geometry.FitToViewport(float64(b.Dx()), float64(b.Dy()), viewW, viewH)
}

// hitTest returns the ID of the topmost word box containing the widget
// position, or -1.
func (v *Viewer) hitTest(pos fyne.Position) int {
	size := v.Size()
	tr := v.viewTransform(float64(size.Width), float64(size.Height))
	pt := tr.ToImage(geometry.NewPoint2D(float64(pos.X), float64(pos.Y)))

	for i := len(v.words) - 1; i >= 0; i-- {
		if v.words[i].Bounds.ToFloat().Contains(pt) {
			return v.words[i].ID
		}
	}
	return noWord
}

// MouseIn implements desktop.Hoverable.
func (v *Viewer) MouseIn(ev *desktop.MouseEvent) {
	v.MouseMoved(ev)
}

// MouseMoved tracks the cursor and updates the hovered word.
func (v *Viewer) MouseMoved(ev *desktop.MouseEvent) {
	if v.selecting {
		return
	}
	id := v.hitTest(ev.Position)
	if id == v.hoveredID {
		return
	}
	v.hoveredID = id
	v.Refresh()
	if v.onWordHovered != nil {
		v.onWordHovered(id)
	}
}

// MouseOut clears the hover state.
func (v *Viewer) MouseOut() {
	if v.hoveredID == noWord {
		return
	}
	v.hoveredID = noWord
	v.Refresh()
	if v.onWordHovered != nil {
		v.onWordHovered(noWord)
	}
}

// Tapped selects the word under the cursor.
func (v *Viewer) Tapped(ev *fyne.PointEvent) {
	id := v.hitTest(ev.Position)
	if id == v.selectedID {
		return
	}
	v.selectedID = id
	v.Refresh()
	if v.onWordTapped != nil {
		v.onWordTapped(id)
	}
}

// Dragged draws the selection rubber band while select mode is armed.
func (v *Viewer) Dragged(ev *fyne.DragEvent) {
	if !v.selectMode {
		return
	}
	if !v.selecting {
		v.selecting = true
		v.selStart = ev.Position
	}
	v.selEnd = ev.Position
	v.Refresh()
}

// DragEnd completes the region selection and reports it in image coordinates.
func (v *Viewer) DragEnd() {
	if !v.selectMode || !v.selecting {
		return
	}
	v.selecting = false
	v.selectMode = false // One selection per arming

	size := v.Size()
	tr := v.viewTransform(float64(size.Width), float64(size.Height))

	x1, y1 := float64(v.selStart.X), float64(v.selStart.Y)
	x2, y2 := float64(v.selEnd.X), float64(v.selEnd.Y)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	rect := tr.RectToImage(geometry.NewRect(x1, y1, x2-x1, y2-y1)).ToInt()
	v.Refresh()

	if v.onRegionSelected != nil && !rect.Empty() {
		v.onRegionSelected(rect)
	}
}

// CreateRenderer implements fyne.Widget.
func (v *Viewer) CreateRenderer() fyne.WidgetRenderer {
	return &viewerRenderer{viewer: v}
}

type viewerRenderer struct {
	viewer *Viewer
}

func (r *viewerRenderer) Layout(size fyne.Size) {
	r.viewer.raster.Resize(size)
}

func (r *viewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *viewerRenderer) Refresh() {
	r.viewer.raster.Refresh()
}

func (r *viewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.raster}
}

func (r *viewerRenderer) Destroy() {}
