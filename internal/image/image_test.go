package image

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 320, 200))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	page, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if page.Width() != 320 || page.Height() != 200 {
		t.Errorf("size: got %dx%d, want 320x200", page.Width(), page.Height())
	}
	if page.DPI != 0 {
		t.Errorf("PNG has no DPI metadata, got %v", page.DPI)
	}
	if page.Path != path {
		t.Errorf("path: got %q", page.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/no/such/scan.png"); err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}

func TestIsSupportedFormat(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"scan.png", true},
		{"scan.PNG", true},
		{"page.tiff", true},
		{"page.tif", true},
		{"photo.jpeg", true},
		{"old.bmp", true},
		{"notes.txt", false},
		{"archive.pdf", false},
		{"noextension", false},
	}
	for _, c := range cases {
		if got := IsSupportedFormat(c.path); got != c.want {
			t.Errorf("IsSupportedFormat(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
