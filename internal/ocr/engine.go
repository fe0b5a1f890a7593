package ocr

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"sync"

	"textlens/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Request describes one transcription run.
type Request struct {
	ImagePath   string
	Language    string            // Language code, e.g. "deu_frak"
	TessdataDir string            // Directory holding <Language>.traineddata
	ROI         *geometry.RectInt // Optional region of interest in image coordinates
	Preprocess  PreprocessMode
	DPI         float64 // Source resolution hint, 0 if unknown
}

// Engine runs Tesseract recognition through a shared gosseract client.
// Transcribe calls are serialized; the engine holds no per-run state.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewEngine creates an OCR engine and verifies the Tesseract library is
// usable.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()
	if client == nil {
		return nil, fmt.Errorf("tesseract engine not available")
	}

	if v := client.Version(); v == "" {
		client.Close()
		return nil, fmt.Errorf("tesseract engine not found: install tesseract-ocr and its development libraries")
	}

	return &Engine{client: client}, nil
}

// Close releases engine resources.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		err := e.client.Close()
		e.client = nil
		return err
	}
	return nil
}

// Transcribe runs recognition on the requested image and returns word boxes
// in original-image coordinates plus the reconstructed transcript.
func (e *Engine) Transcribe(req Request) (*Result, error) {
	if _, err := os.Stat(req.ImagePath); err != nil {
		return nil, fmt.Errorf("image file not found at %s", req.ImagePath)
	}
	if req.Language == "" {
		return nil, fmt.Errorf("no language model selected")
	}

	mat := gocv.IMRead(req.ImagePath, gocv.IMReadColor)
	if mat.Empty() {
		return nil, fmt.Errorf("could not decode image %s", req.ImagePath)
	}
	defer mat.Close()

	// Clamp the ROI against the image bounds; reject if nothing remains.
	offsetX, offsetY := 0, 0
	work := mat
	if req.ROI != nil {
		bounds := geometry.NewRectInt(0, 0, mat.Cols(), mat.Rows())
		roi := req.ROI.Intersect(bounds)
		if roi.Empty() {
			return nil, fmt.Errorf("selected region lies outside the image")
		}
		region := mat.Region(image.Rect(roi.X, roi.Y, roi.X+roi.Width, roi.Y+roi.Height))
		defer region.Close()
		work = region
		offsetX, offsetY = roi.X, roi.Y
	}

	processed := Preprocess(work, req.Preprocess)
	defer processed.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, processed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}
	defer buf.Close()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return nil, fmt.Errorf("engine is closed")
	}

	// Tesseract resolves models through both the API setting and the
	// environment variable depending on version; set both and restore the
	// environment afterwards.
	restore := setTessdataEnv(req.TessdataDir)
	defer restore()

	if req.TessdataDir != "" {
		if err := e.client.SetTessdataPrefix(req.TessdataDir); err != nil {
			return nil, fmt.Errorf("failed to set model directory: %w", err)
		}
	}
	if err := e.client.SetLanguage(req.Language); err != nil {
		return nil, fmt.Errorf("failed to set language %q: %w", req.Language, err)
	}
	if err := e.client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if req.DPI > 0 {
		if err := e.client.SetVariable("user_defined_dpi", strconv.Itoa(int(req.DPI))); err != nil {
			return nil, fmt.Errorf("failed to set DPI: %w", err)
		}
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("OCR failed for language %q: %w", req.Language, err)
	}

	words := collectWords(boxes, offsetX, offsetY)

	return &Result{
		Words:       words,
		Text:        Reconstruct(words),
		Language:    req.Language,
		ModelDir:    req.TessdataDir,
		SkewDegrees: EstimateSkew(words),
	}, nil
}

// collectWords converts engine bounding boxes to WordBoxes, dropping empty
// words, shifting ROI-relative coordinates back into original-image space,
// and assigning sequential IDs.
func collectWords(boxes []gosseract.BoundingBox, offsetX, offsetY int) []WordBox {
	words := make([]WordBox, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, WordBox{
			ID:   len(words),
			Text: text,
			Bounds: geometry.RectInt{
				X:      b.Box.Min.X + offsetX,
				Y:      b.Box.Min.Y + offsetY,
				Width:  b.Box.Dx(),
				Height: b.Box.Dy(),
			},
			Confidence: b.Confidence,
			Block:      b.BlockNum,
			Paragraph:  b.ParNum,
			Line:       b.LineNum,
		})
	}
	return words
}

// setTessdataEnv points TESSDATA_PREFIX at dir and returns a function that
// restores the previous value.
func setTessdataEnv(dir string) func() {
	old, had := os.LookupEnv("TESSDATA_PREFIX")
	if dir != "" {
		os.Setenv("TESSDATA_PREFIX", dir)
	}
	return func() {
		if had {
			os.Setenv("TESSDATA_PREFIX", old)
		} else {
			os.Unsetenv("TESSDATA_PREFIX")
		}
	}
}
