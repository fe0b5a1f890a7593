package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFitToViewport_WideImage(t *testing.T) {
	// 2000x1000 image into 500x500 viewport: width-limited.
	tr := FitToViewport(2000, 1000, 500, 500)

	if !almostEqual(tr.Scale, 0.25) {
		t.Errorf("scale: got %v, want 0.25", tr.Scale)
	}
	if !almostEqual(tr.OffsetX, 0) {
		t.Errorf("offsetX: got %v, want 0", tr.OffsetX)
	}
	// Scaled height is 250, leftover 250, centered -> 125.
	if !almostEqual(tr.OffsetY, 125) {
		t.Errorf("offsetY: got %v, want 125", tr.OffsetY)
	}
}

func TestFitToViewport_TallImage(t *testing.T) {
	// 1000x2000 image into 600x400 viewport: height-limited.
	tr := FitToViewport(1000, 2000, 600, 400)

	if !almostEqual(tr.Scale, 0.2) {
		t.Errorf("scale: got %v, want 0.2", tr.Scale)
	}
	if !almostEqual(tr.OffsetX, 200) {
		t.Errorf("offsetX: got %v, want 200", tr.OffsetX)
	}
	if !almostEqual(tr.OffsetY, 0) {
		t.Errorf("offsetY: got %v, want 0", tr.OffsetY)
	}
}

func TestFitToViewport_DegenerateInput(t *testing.T) {
	tr := FitToViewport(0, 0, 500, 500)
	if tr.Scale != 1 || tr.OffsetX != 0 || tr.OffsetY != 0 {
		t.Errorf("degenerate input: got %+v, want identity", tr)
	}
}

func TestViewTransform_RoundTrip(t *testing.T) {
	tr := FitToViewport(1234, 567, 800, 600)

	points := []Point2D{
		{X: 0, Y: 0},
		{X: 1234, Y: 567},
		{X: 100.5, Y: 33.25},
	}
	for _, p := range points {
		back := tr.ToImage(tr.ToView(p))
		if !almostEqual(back.X, p.X) || !almostEqual(back.Y, p.Y) {
			t.Errorf("round trip of %+v: got %+v", p, back)
		}
	}
}

func TestViewTransform_RectToView(t *testing.T) {
	tr := ViewTransform{Scale: 0.5, OffsetX: 10, OffsetY: 20}

	r := tr.RectToView(Rect{X: 100, Y: 200, Width: 40, Height: 60})
	want := Rect{X: 60, Y: 120, Width: 20, Height: 30}
	if r != want {
		t.Errorf("RectToView: got %+v, want %+v", r, want)
	}

	back := tr.RectToImage(r)
	if back != (Rect{X: 100, Y: 200, Width: 40, Height: 60}) {
		t.Errorf("RectToImage round trip: got %+v", back)
	}
}

func TestViewTransform_HitTest(t *testing.T) {
	// A box at (100,100) size 50x20 in a 1000x1000 image shown in a 500x400
	// viewport. A cursor inside the mapped box must invert to a point the
	// original box contains.
	tr := FitToViewport(1000, 1000, 500, 400)
	box := Rect{X: 100, Y: 100, Width: 50, Height: 20}

	viewBox := tr.RectToView(box)
	cursor := Point2D{X: viewBox.X + viewBox.Width/2, Y: viewBox.Y + viewBox.Height/2}

	imgPt := tr.ToImage(cursor)
	if !box.Contains(imgPt) {
		t.Errorf("cursor %+v inverted to %+v, outside box %+v", cursor, imgPt, box)
	}

	// A cursor in the letterbox margin must invert to a point outside the box.
	outside := tr.ToImage(Point2D{X: 1, Y: 1})
	if box.Contains(outside) {
		t.Errorf("margin cursor inverted inside box: %+v", outside)
	}
}

func TestRectIntIntersect(t *testing.T) {
	bounds := NewRectInt(0, 0, 100, 100)

	tests := []struct {
		name string
		roi  RectInt
		want RectInt
	}{
		{"inside", NewRectInt(10, 10, 20, 20), NewRectInt(10, 10, 20, 20)},
		{"overlapping edge", NewRectInt(90, 90, 30, 30), NewRectInt(90, 90, 10, 10)},
		{"negative origin", NewRectInt(-10, -10, 30, 30), NewRectInt(0, 0, 20, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.roi.Intersect(bounds)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	if !NewRectInt(200, 200, 10, 10).Intersect(bounds).Empty() {
		t.Error("disjoint rects should intersect to an empty rect")
	}
}
