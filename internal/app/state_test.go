package app

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"textlens/internal/ocr"
	"textlens/pkg/geometry"
)

// writeTestPNG writes a small image to disk and returns its path.
func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadImage_ClearsROIAndResult(t *testing.T) {
	s := NewState()
	path := writeTestPNG(t, 200, 100)

	if err := s.LoadImage(path); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if err := s.SetROI(geometry.NewRectInt(10, 10, 50, 50)); err != nil {
		t.Fatalf("SetROI failed: %v", err)
	}
	s.SetResult(&ocr.Result{Text: "alt"})

	if err := s.LoadImage(path); err != nil {
		t.Fatalf("second LoadImage failed: %v", err)
	}
	if s.ROI() != nil {
		t.Error("ROI should be cleared on image load")
	}
	if s.Result() != nil {
		t.Error("result should be cleared on image load")
	}
}

func TestLoadImage_MissingFile(t *testing.T) {
	if err := NewState().LoadImage("/no/such/file.png"); err == nil {
		t.Fatal("LoadImage should fail for a missing file")
	}
}

func TestSetROI_Validation(t *testing.T) {
	s := NewState()

	if err := s.SetROI(geometry.NewRectInt(0, 0, 10, 10)); err == nil {
		t.Fatal("SetROI should fail without an image")
	}

	if err := s.LoadImage(writeTestPNG(t, 100, 100)); err != nil {
		t.Fatal(err)
	}

	// Overlapping region is clamped to the image bounds.
	if err := s.SetROI(geometry.NewRectInt(80, 80, 50, 50)); err != nil {
		t.Fatalf("SetROI failed: %v", err)
	}
	if roi := s.ROI(); *roi != geometry.NewRectInt(80, 80, 20, 20) {
		t.Errorf("clamped ROI: got %+v", *roi)
	}

	// Fully outside region is rejected; previous ROI stays.
	if err := s.SetROI(geometry.NewRectInt(500, 500, 10, 10)); err == nil {
		t.Fatal("SetROI should reject a region outside the image")
	}
	if s.ROI() == nil {
		t.Error("a rejected ROI must not clear the previous one")
	}
}

func TestClearROI_EmitsOnce(t *testing.T) {
	s := NewState()
	if err := s.LoadImage(writeTestPNG(t, 100, 100)); err != nil {
		t.Fatal(err)
	}

	events := 0
	s.On(EventROIChanged, func(data interface{}) { events++ })

	if err := s.SetROI(geometry.NewRectInt(0, 0, 10, 10)); err != nil {
		t.Fatal(err)
	}
	s.ClearROI()
	s.ClearROI() // already clear, no event

	if events != 2 {
		t.Errorf("got %d ROI events, want 2 (set + clear)", events)
	}
}

func TestHighlightWord(t *testing.T) {
	s := NewState()

	var got Highlight
	s.On(EventWordHighlighted, func(data interface{}) {
		got = data.(Highlight)
	})

	s.HighlightWord(7, "viewer")
	if got.WordID != 7 || got.Origin != "viewer" {
		t.Errorf("highlight: got %+v", got)
	}

	s.HighlightWord(-1, "transcript")
	if got.WordID != -1 {
		t.Errorf("clear highlight: got %+v", got)
	}
}

func TestExportTranscript(t *testing.T) {
	s := NewState()

	out := filepath.Join(t.TempDir(), "out.txt")
	if err := s.ExportTranscript(out); err == nil {
		t.Fatal("export without a result should fail")
	}

	s.SetResult(&ocr.Result{Text: "erste Zeile\nzweite Zeile"})
	if err := s.ExportTranscript(out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "erste Zeile\nzweite Zeile\n" {
		t.Errorf("exported content: got %q", string(data))
	}
}
