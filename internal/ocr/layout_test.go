package ocr

import (
	"math"
	"testing"

	"textlens/pkg/geometry"
)

// word builds a WordBox with layout indices; geometry defaults to a 10x10 box
// at the origin unless a bounds override is given.
func word(id int, text string, block, par, line int) WordBox {
	return WordBox{
		ID:        id,
		Text:      text,
		Bounds:    geometry.NewRectInt(0, 0, 10, 10),
		Block:     block,
		Paragraph: par,
		Line:      line,
	}
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name  string
		words []WordBox
		want  string
	}{
		{
			name: "single line",
			words: []WordBox{
				word(0, "Es", 1, 1, 1),
				word(1, "war", 1, 1, 1),
				word(2, "einmal", 1, 1, 1),
			},
			want: "Es war einmal",
		},
		{
			name: "line change breaks",
			words: []WordBox{
				word(0, "erste", 1, 1, 1),
				word(1, "Zeile", 1, 1, 1),
				word(2, "zweite", 1, 1, 2),
				word(3, "Zeile", 1, 1, 2),
			},
			want: "erste Zeile\nzweite Zeile",
		},
		{
			name: "paragraph change breaks even with same line index",
			words: []WordBox{
				word(0, "Absatz", 1, 1, 1),
				word(1, "eins", 1, 2, 1),
			},
			want: "Absatz\neins",
		},
		{
			name: "block change breaks",
			words: []WordBox{
				word(0, "links", 1, 1, 1),
				word(1, "rechts", 2, 1, 1),
			},
			want: "links\nrechts",
		},
		{
			name:  "empty input",
			words: nil,
			want:  "",
		},
		{
			name:  "single word",
			words: []WordBox{word(0, "Wort", 3, 2, 5)},
			want:  "Wort",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reconstruct(tt.words); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	words := []WordBox{
		word(0, "a", 1, 1, 1),
		word(1, "b", 1, 1, 1),
		word(2, "c", 1, 1, 2),
		word(3, "d", 2, 1, 1),
	}

	lines := Lines(words)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if len(lines[0]) != 2 || lines[0][0].Text != "a" || lines[0][1].Text != "b" {
		t.Errorf("first line: got %+v", lines[0])
	}
	if len(lines[1]) != 1 || lines[1][0].Text != "c" {
		t.Errorf("second line: got %+v", lines[1])
	}
	if len(lines[2]) != 1 || lines[2][0].Text != "d" {
		t.Errorf("third line: got %+v", lines[2])
	}
}

func TestEstimateSkew_LevelPage(t *testing.T) {
	// Two perfectly horizontal lines.
	words := []WordBox{
		{ID: 0, Text: "a", Bounds: geometry.NewRectInt(0, 100, 20, 10), Block: 1, Paragraph: 1, Line: 1},
		{ID: 1, Text: "b", Bounds: geometry.NewRectInt(50, 100, 20, 10), Block: 1, Paragraph: 1, Line: 1},
		{ID: 2, Text: "c", Bounds: geometry.NewRectInt(0, 200, 20, 10), Block: 1, Paragraph: 1, Line: 2},
		{ID: 3, Text: "d", Bounds: geometry.NewRectInt(50, 200, 20, 10), Block: 1, Paragraph: 1, Line: 2},
	}

	if skew := EstimateSkew(words); math.Abs(skew) > 1e-9 {
		t.Errorf("level page: got skew %v, want 0", skew)
	}
}

func TestEstimateSkew_TiltedPage(t *testing.T) {
	// Box centers rising 10px over 100px: atan(0.1) ~ 5.71 degrees.
	words := []WordBox{
		{ID: 0, Text: "a", Bounds: geometry.NewRectInt(0, 100, 10, 10), Block: 1, Paragraph: 1, Line: 1},
		{ID: 1, Text: "b", Bounds: geometry.NewRectInt(50, 105, 10, 10), Block: 1, Paragraph: 1, Line: 1},
		{ID: 2, Text: "c", Bounds: geometry.NewRectInt(100, 110, 10, 10), Block: 1, Paragraph: 1, Line: 1},
	}

	want := math.Atan(0.1) * 180 / math.Pi
	if skew := EstimateSkew(words); math.Abs(skew-want) > 0.01 {
		t.Errorf("tilted page: got %v, want %v", skew, want)
	}
}

func TestEstimateSkew_NotEnoughData(t *testing.T) {
	if skew := EstimateSkew(nil); skew != 0 {
		t.Errorf("no words: got %v, want 0", skew)
	}

	// Single-word lines carry no slope information.
	words := []WordBox{
		word(0, "a", 1, 1, 1),
		word(1, "b", 1, 1, 2),
	}
	if skew := EstimateSkew(words); skew != 0 {
		t.Errorf("single-word lines: got %v, want 0", skew)
	}
}

func TestResultWord(t *testing.T) {
	res := &Result{Words: []WordBox{word(0, "a", 1, 1, 1), word(1, "b", 1, 1, 1)}}

	if w := res.Word(1); w == nil || w.Text != "b" {
		t.Errorf("Word(1): got %+v", w)
	}
	if w := res.Word(-1); w != nil {
		t.Error("Word(-1) should be nil")
	}
	if w := res.Word(2); w != nil {
		t.Error("Word(2) should be nil")
	}
	var nilRes *Result
	if w := nilRes.Word(0); w != nil {
		t.Error("nil result should return nil word")
	}
}
