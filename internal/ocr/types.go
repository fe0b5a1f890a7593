// Package ocr wraps the Tesseract engine: it runs recognition on an image
// (optionally restricted to a region of interest), collects word-level
// bounding boxes, and reconstructs line-broken text from the engine's layout
// metadata.
package ocr

import "textlens/pkg/geometry"

// WordBox is one recognized word with its location in original-image pixel
// coordinates. IDs are sequential and unique within a single Result; both the
// image viewer and the transcript view reference words by ID.
type WordBox struct {
	ID         int
	Text       string
	Bounds     geometry.RectInt
	Confidence float64 // 0-100, as reported by the engine

	// Layout indices from the engine, used for text reconstruction.
	Block     int
	Paragraph int
	Line      int
}

// Result holds the outcome of one transcription run. It is rebuilt wholesale
// on every run and never persisted.
type Result struct {
	Words       []WordBox
	Text        string // Line-broken transcript reconstructed from Words
	Language    string
	ModelDir    string
	SkewDegrees float64 // Estimated page skew, positive = clockwise
}

// Word returns the word with the given ID, or nil if no such word exists.
func (r *Result) Word(id int) *WordBox {
	if r == nil || id < 0 || id >= len(r.Words) {
		return nil
	}
	// IDs are assigned sequentially, so the slice index is the ID.
	return &r.Words[id]
}
