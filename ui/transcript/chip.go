package transcript

import (
	"image/color"

	"textlens/internal/ocr"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Chip colors, matched to the viewer overlay palette.
var (
	hoverFillColor    = color.RGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 0x5A}
	selectedFillColor = color.RGBA{R: 0x00, G: 0xAA, B: 0xFF, A: 0x50}
	lowConfTextColor  = color.RGBA{R: 0xFF, G: 0x8C, B: 0x00, A: 0xFF}
)

// lowConfidenceThreshold marks words the engine was unsure about.
const lowConfidenceThreshold = 50.0

const chipPadding float32 = 2

// wordChip is a single word of the transcript. Hovering or tapping it
// reports the word's ID back to the owning view.
type wordChip struct {
	widget.BaseWidget

	view *View
	id   int

	bg       *canvas.Rectangle
	text     *canvas.Text
	hovered  bool
	selected bool
}

var (
	_ desktop.Hoverable = (*wordChip)(nil)
	_ fyne.Tappable     = (*wordChip)(nil)
)

func newWordChip(v *View, w ocr.WordBox) *wordChip {
	c := &wordChip{
		view: v,
		id:   w.ID,
		bg:   canvas.NewRectangle(color.Transparent),
		text: canvas.NewText(w.Text, theme.ForegroundColor()),
	}
	if w.Confidence < lowConfidenceThreshold {
		c.text.Color = lowConfTextColor
	}
	c.ExtendBaseWidget(c)
	return c
}

func (c *wordChip) setHovered(hovered bool) {
	if c.hovered == hovered {
		return
	}
	c.hovered = hovered
	c.updateFill()
}

func (c *wordChip) setSelected(selected bool) {
	if c.selected == selected {
		return
	}
	c.selected = selected
	c.updateFill()
}

func (c *wordChip) updateFill() {
	switch {
	case c.hovered:
		c.bg.FillColor = hoverFillColor
	case c.selected:
		c.bg.FillColor = selectedFillColor
	default:
		c.bg.FillColor = color.Transparent
	}
	c.bg.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (c *wordChip) MouseIn(*desktop.MouseEvent) {
	c.view.applyHover(c.id)
}

// MouseMoved implements desktop.Hoverable.
func (c *wordChip) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (c *wordChip) MouseOut() {
	if c.view.hoveredID == c.id {
		c.view.applyHover(noWord)
	}
}

// Tapped implements fyne.Tappable.
func (c *wordChip) Tapped(*fyne.PointEvent) {
	c.view.tapChip(c.id)
}

// CreateRenderer implements fyne.Widget.
func (c *wordChip) CreateRenderer() fyne.WidgetRenderer {
	return &chipRenderer{chip: c}
}

type chipRenderer struct {
	chip *wordChip
}

func (r *chipRenderer) Layout(size fyne.Size) {
	r.chip.bg.Resize(size)
	r.chip.text.Move(fyne.NewPos(chipPadding, chipPadding))
	r.chip.text.Resize(r.chip.text.MinSize())
}

func (r *chipRenderer) MinSize() fyne.Size {
	min := r.chip.text.MinSize()
	return fyne.NewSize(min.Width+2*chipPadding, min.Height+2*chipPadding)
}

func (r *chipRenderer) Refresh() {
	r.chip.bg.Refresh()
	r.chip.text.Refresh()
}

func (r *chipRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.chip.bg, r.chip.text}
}

func (r *chipRenderer) Destroy() {}
