// Command transcribe runs OCR on a single image from the command line,
// either with one chosen model or with every model found in the model
// directories, printing each transcript for comparison.
//
// Usage: transcribe -image scan.png [options]
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"textlens/internal/model"
	"textlens/internal/ocr"
	"textlens/pkg/geometry"
)

func main() {
	var (
		imagePath  = flag.String("image", "", "image file to transcribe (required)")
		modelsDir  = flag.String("models", "models", "directory holding .traineddata models")
		language   = flag.String("lang", "", "language code; empty runs all available models")
		preprocess = flag.String("preprocess", "none", "preprocessing: none, gray, or binarize")
		region     = flag.String("region", "", "region of interest as x,y,w,h in image pixels")
		boxes      = flag.Bool("boxes", false, "print per-word bounding boxes and confidence")
	)
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: transcribe -image <file> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var roi *geometry.RectInt
	if *region != "" {
		r, err := parseRegion(*region)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -region: %v\n", err)
			os.Exit(1)
		}
		roi = &r
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "OCR engine unavailable: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	manager := model.NewManager(*modelsDir)

	var codes []string
	if *language != "" {
		codes = []string{*language}
	} else {
		for _, m := range manager.Scan() {
			codes = append(codes, m.Code)
		}
		if len(codes) == 0 {
			fmt.Fprintf(os.Stderr, "No models found in %s\n", *modelsDir)
			os.Exit(1)
		}
	}

	failures := 0
	for _, code := range codes {
		if err := runOne(engine, manager, code, *imagePath, roi, *preprocess, *boxes); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", code, err)
			failures++
		}
	}
	if failures > 0 {
		os.Exit(1)
	}
}

// runOne transcribes the image with a single model and prints the result.
func runOne(engine *ocr.Engine, manager *model.Manager, code, imagePath string, roi *geometry.RectInt, preprocess string, boxes bool) error {
	dir, err := manager.Resolve(code)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := engine.Transcribe(ocr.Request{
		ImagePath:   imagePath,
		Language:    code,
		TessdataDir: dir,
		ROI:         roi,
		Preprocess:  ocr.ParsePreprocessMode(preprocess),
	})
	if err != nil {
		return err
	}

	fmt.Printf("=== %s (%d words, %.1fs)\n", model.DisplayName(code), len(res.Words), time.Since(start).Seconds())
	fmt.Println(res.Text)

	if boxes {
		for _, w := range res.Words {
			fmt.Printf("  [%4d,%4d %3dx%3d] %5.1f%% %s\n",
				w.Bounds.X, w.Bounds.Y, w.Bounds.Width, w.Bounds.Height, w.Confidence, w.Text)
		}
	}
	fmt.Println()
	return nil
}

// parseRegion parses "x,y,w,h" into a rectangle.
func parseRegion(s string) (geometry.RectInt, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.RectInt{}, fmt.Errorf("want x,y,w,h, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &vals[i]); err != nil {
			return geometry.RectInt{}, fmt.Errorf("bad number %q", p)
		}
	}
	r := geometry.NewRectInt(vals[0], vals[1], vals[2], vals[3])
	if r.Empty() {
		return geometry.RectInt{}, fmt.Errorf("region is empty")
	}
	return r, nil
}
