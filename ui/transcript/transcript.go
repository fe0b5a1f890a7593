// Package transcript provides the transcript view: the reconstructed text
// rendered line by line as individual word chips, each tagged with its word
// box ID so highlight state can be synchronized with the image viewer.
package transcript

import (
	"textlens/internal/ocr"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const noWord = -1

// View displays a transcription result as tappable, hoverable words.
type View struct {
	widget.BaseWidget

	scroll  *container.Scroll
	content *fyne.Container

	chips       map[int]*wordChip
	hoveredID   int
	selectedID  int
	suppressEch bool // True while applying an external highlight

	onWordHovered func(id int)
	onWordTapped  func(id int)
}

// New creates an empty transcript view.
func New() *View {
	v := &View{
		chips:      make(map[int]*wordChip),
		hoveredID:  noWord,
		selectedID: noWord,
	}
	v.content = container.NewVBox(widget.NewLabel("Transcription output..."))
	v.scroll = container.NewScroll(v.content)
	v.ExtendBaseWidget(v)
	return v
}

// OnWordHovered sets the callback for hover changes originating in this view.
func (v *View) OnWordHovered(callback func(id int)) {
	v.onWordHovered = callback
}

// OnWordTapped sets the callback for word taps originating in this view.
func (v *View) OnWordTapped(callback func(id int)) {
	v.onWordTapped = callback
}

// SetResult renders a transcription result. A nil result clears the view.
func (v *View) SetResult(res *ocr.Result) {
	v.chips = make(map[int]*wordChip)
	v.hoveredID = noWord
	v.selectedID = noWord
	v.content.Objects = nil

	if res == nil || len(res.Words) == 0 {
		v.content.Objects = []fyne.CanvasObject{widget.NewLabel("No text recognized.")}
		v.content.Refresh()
		return
	}

	for _, line := range ocr.Lines(res.Words) {
		row := container.NewHBox()
		for _, w := range line {
			chip := newWordChip(v, w)
			v.chips[w.ID] = chip
			row.Add(chip)
		}
		v.content.Add(row)
	}
	v.content.Refresh()
	v.scroll.ScrollToTop()
}

// SetMessage replaces the view content with a plain message, used for status
// text and OCR error strings.
func (v *View) SetMessage(text string) {
	v.chips = make(map[int]*wordChip)
	v.hoveredID = noWord
	v.selectedID = noWord

	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord
	v.content.Objects = []fyne.CanvasObject{label}
	v.content.Refresh()
	v.scroll.ScrollToTop()
}

// SetHighlight applies a hover highlight coming from the image viewer.
// Pass -1 to clear. The change does not echo back through OnWordHovered.
func (v *View) SetHighlight(id int) {
	if v.hoveredID == id {
		return
	}
	v.suppressEch = true
	v.applyHover(id)
	v.suppressEch = false

	if id != noWord {
		v.scrollToChip(id)
	}
}

// SetSelected applies a selection coming from the image viewer.
func (v *View) SetSelected(id int) {
	if v.selectedID == id {
		return
	}
	if old, ok := v.chips[v.selectedID]; ok {
		old.setSelected(false)
	}
	v.selectedID = id
	if chip, ok := v.chips[id]; ok {
		chip.setSelected(true)
		v.scrollToChip(id)
	}
}

// applyHover moves the hover highlight to the given chip.
func (v *View) applyHover(id int) {
	if old, ok := v.chips[v.hoveredID]; ok {
		old.setHovered(false)
	}
	v.hoveredID = id
	if chip, ok := v.chips[id]; ok {
		chip.setHovered(true)
	}
	if !v.suppressEch && v.onWordHovered != nil {
		v.onWordHovered(id)
	}
}

// tapChip handles a tap on one of the word chips.
func (v *View) tapChip(id int) {
	if old, ok := v.chips[v.selectedID]; ok {
		old.setSelected(false)
	}
	v.selectedID = id
	if chip, ok := v.chips[id]; ok {
		chip.setSelected(true)
	}
	if v.onWordTapped != nil {
		v.onWordTapped(id)
	}
}

// scrollToChip brings the chip's row into view.
func (v *View) scrollToChip(id int) {
	chip, ok := v.chips[id]
	if !ok {
		return
	}

	// Row position within the scrolled content.
	rowY := chip.Position().Y
	for _, row := range v.content.Objects {
		if hbox, ok := row.(*fyne.Container); ok {
			for _, obj := range hbox.Objects {
				if obj == chip {
					rowY = row.Position().Y
				}
			}
		}
	}

	viewH := v.scroll.Size().Height
	if viewH <= 0 {
		return
	}
	offset := v.scroll.Offset
	if rowY < offset.Y || rowY > offset.Y+viewH-chip.Size().Height {
		v.scroll.Offset = fyne.NewPos(0, rowY-viewH/2)
		v.scroll.Refresh()
	}
}

// CreateRenderer implements fyne.Widget.
func (v *View) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.scroll)
}
