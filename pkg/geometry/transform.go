package geometry

// ViewTransform maps original-image coordinates to viewport coordinates for an
// image displayed aspect-fit inside a viewport: scale by a uniform factor, then
// center with fixed offsets.
type ViewTransform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitToViewport computes the transform for an image of size (imgW, imgH)
// displayed scaled into a (viewW, viewH) viewport while preserving aspect
// ratio. The scale factor is min(viewW/imgW, viewH/imgH) and the image is
// centered in the leftover space.
func FitToViewport(imgW, imgH, viewW, viewH float64) ViewTransform {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return ViewTransform{Scale: 1}
	}

	scale := viewW / imgW
	if s := viewH / imgH; s < scale {
		scale = s
	}

	return ViewTransform{
		Scale:   scale,
		OffsetX: (viewW - imgW*scale) / 2,
		OffsetY: (viewH - imgH*scale) / 2,
	}
}

// ToView maps a point from image coordinates to viewport coordinates.
func (t ViewTransform) ToView(p Point2D) Point2D {
	return Point2D{
		X: p.X*t.Scale + t.OffsetX,
		Y: p.Y*t.Scale + t.OffsetY,
	}
}

// ToImage maps a point from viewport coordinates back to image coordinates.
// This is the inverse of ToView and is used for hover hit-testing.
func (t ViewTransform) ToImage(p Point2D) Point2D {
	if t.Scale == 0 {
		return Point2D{}
	}
	return Point2D{
		X: (p.X - t.OffsetX) / t.Scale,
		Y: (p.Y - t.OffsetY) / t.Scale,
	}
}

// RectToView maps a rectangle from image coordinates to viewport coordinates.
func (t ViewTransform) RectToView(r Rect) Rect {
	return Rect{
		X:      r.X*t.Scale + t.OffsetX,
		Y:      r.Y*t.Scale + t.OffsetY,
		Width:  r.Width * t.Scale,
		Height: r.Height * t.Scale,
	}
}

// RectToImage maps a rectangle from viewport coordinates to image coordinates.
func (t ViewTransform) RectToImage(r Rect) Rect {
	if t.Scale == 0 {
		return Rect{}
	}
	return Rect{
		X:      (r.X - t.OffsetX) / t.Scale,
		Y:      (r.Y - t.OffsetY) / t.Scale,
		Width:  r.Width / t.Scale,
		Height: r.Height / t.Scale,
	}
}
