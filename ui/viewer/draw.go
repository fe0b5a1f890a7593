package viewer

import (
	"image"
	"image/color"

	"textlens/internal/ocr"
	"textlens/pkg/geometry"
)

// Overlay colors.
var (
	backgroundColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	boxColor        = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xB4}
	lowConfColor    = color.RGBA{R: 0xFF, G: 0x8C, B: 0x00, A: 0xC8}
	hoverFillColor  = color.RGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 0x5A}
	hoverColor      = color.RGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 0xFF}
	selectedColor   = color.RGBA{R: 0x00, G: 0xAA, B: 0xFF, A: 0xFF}
	roiColor        = color.RGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 0xFF}
	rubberBandColor = color.RGBA{R: 0x5A, G: 0xA0, B: 0xFF, A: 0xFF}
)

// lowConfidenceThreshold marks words the engine was unsure about.
const lowConfidenceThreshold = 50.0

// draw is the raster drawing function. The raster may render at a higher
// pixel density than the widget's logical size, so everything is mapped
// through the transform computed for the raster dimensions.
func (v *Viewer) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(output, backgroundColor)

	if v.img == nil || w == 0 || h == 0 {
		return output
	}

	b := v.img.Bounds()
	tr := geometry.FitToViewport(float64(b.Dx()), float64(b.Dy()), float64(w), float64(h))
	v.blit(output, tr)

	for _, wb := range v.words {
		v.drawWordBox(output, tr, wb)
	}

	if v.roi != nil {
		r := tr.RectToView(v.roi.ToFloat())
		strokeRect(output, int(r.X), int(r.Y), int(r.Width), int(r.Height), 2, roiColor)
	}

	if v.selecting {
		v.drawRubberBand(output, w, h)
	}

	return output
}

// blit renders the source image scaled into the fitted area using nearest
// neighbor inverse mapping.
func (v *Viewer) blit(output *image.RGBA, tr geometry.ViewTransform) {
	b := v.img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	out := output.Bounds()

	inv := 1.0 / tr.Scale

	y0 := clampInt(int(tr.OffsetY), 0, out.Dy())
	y1 := clampInt(int(tr.OffsetY+float64(srcH)*tr.Scale)+1, 0, out.Dy())
	x0 := clampInt(int(tr.OffsetX), 0, out.Dx())
	x1 := clampInt(int(tr.OffsetX+float64(srcW)*tr.Scale)+1, 0, out.Dx())

	for y := y0; y < y1; y++ {
		srcY := int((float64(y) - tr.OffsetY) * inv)
		if srcY < 0 || srcY >= srcH {
			continue
		}
		for x := x0; x < x1; x++ {
			srcX := int((float64(x) - tr.OffsetX) * inv)
			if srcX < 0 || srcX >= srcW {
				continue
			}
			output.SetRGBA(x, y, v.img.RGBAAt(srcX, srcY))
		}
	}
}

// drawWordBox draws one word box with hover/selection/confidence styling.
func (v *Viewer) drawWordBox(output *image.RGBA, tr geometry.ViewTransform, wb ocr.WordBox) {
	r := tr.RectToView(wb.Bounds.ToFloat())
	x, y := int(r.X), int(r.Y)
	rw, rh := int(r.Width), int(r.Height)

	outline := boxColor
	if wb.Confidence < lowConfidenceThreshold {
		outline = lowConfColor
	}
	thickness := 1

	switch wb.ID {
	case v.hoveredID:
		blendFillRect(output, x, y, rw, rh, hoverFillColor)
		outline = hoverColor
	case v.selectedID:
		outline = selectedColor
		thickness = 2
	}

	strokeRect(output, x, y, rw, rh, thickness, outline)
}

// drawRubberBand draws the live selection rectangle. Drag positions are in
// widget logical coordinates and are scaled to raster pixels.
func (v *Viewer) drawRubberBand(output *image.RGBA, w, h int) {
	size := v.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	px := float64(w) / float64(size.Width)
	py := float64(h) / float64(size.Height)

	x1, y1 := float64(v.selStart.X)*px, float64(v.selStart.Y)*py
	x2, y2 := float64(v.selEnd.X)*px, float64(v.selEnd.Y)*py
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	strokeRect(output, int(x1), int(y1), int(x2-x1), int(y2-y1), 1, rubberBandColor)
}

// fillBackground fills the whole image with a solid color.
func fillBackground(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

// strokeRect draws a rectangle outline with the given line thickness.
func strokeRect(img *image.RGBA, x, y, w, h, thickness int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	for t := 0; t < thickness; t++ {
		drawHLine(img, x, x+w, y+t, c)
		drawHLine(img, x, x+w, y+h-1-t, c)
		drawVLine(img, y, y+h, x+t, c)
		drawVLine(img, y, y+h, x+w-1-t, c)
	}
}

// blendFillRect fills a rectangle, alpha-blending with the existing pixels.
func blendFillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	bounds := img.Bounds()
	alpha := float64(c.A) / 255.0
	inv := 1 - alpha

	for yy := y; yy < y+h; yy++ {
		if yy < bounds.Min.Y || yy >= bounds.Max.Y {
			continue
		}
		for xx := x; xx < x+w; xx++ {
			if xx < bounds.Min.X || xx >= bounds.Max.X {
				continue
			}
			dst := img.RGBAAt(xx, yy)
			img.SetRGBA(xx, yy, color.RGBA{
				R: uint8(float64(c.R)*alpha + float64(dst.R)*inv),
				G: uint8(float64(c.G)*alpha + float64(dst.G)*inv),
				B: uint8(float64(c.B)*alpha + float64(dst.B)*inv),
				A: 0xFF,
			})
		}
	}
}

func drawHLine(img *image.RGBA, x1, x2, y int, c color.RGBA) {
	bounds := img.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	for x := clampInt(x1, bounds.Min.X, bounds.Max.X); x < clampInt(x2, bounds.Min.X, bounds.Max.X); x++ {
		img.SetRGBA(x, y, c)
	}
}

func drawVLine(img *image.RGBA, y1, y2, x int, c color.RGBA) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X {
		return
	}
	for y := clampInt(y1, bounds.Min.Y, bounds.Max.Y); y < clampInt(y2, bounds.Min.Y, bounds.Max.Y); y++ {
		img.SetRGBA(x, y, c)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
