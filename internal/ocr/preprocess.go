package ocr

import (
	"image"

	"gocv.io/x/gocv"
)

// PreprocessMode selects how an image region is prepared before recognition.
type PreprocessMode int

const (
	// PreprocessNone passes the image to the engine unchanged.
	PreprocessNone PreprocessMode = iota
	// PreprocessGray converts to grayscale with contrast enhancement.
	PreprocessGray
	// PreprocessBinarize produces a clean black-on-white binary image.
	PreprocessBinarize
)

// String returns the mode name as used in CLI flags.
func (m PreprocessMode) String() string {
	switch m {
	case PreprocessGray:
		return "gray"
	case PreprocessBinarize:
		return "binarize"
	default:
		return "none"
	}
}

// ParsePreprocessMode parses a CLI flag value into a PreprocessMode.
func ParsePreprocessMode(s string) PreprocessMode {
	switch s {
	case "gray":
		return PreprocessGray
	case "binarize":
		return PreprocessBinarize
	default:
		return PreprocessNone
	}
}

// minRegionDim is the minimum dimension fed to the engine; smaller regions
// are upscaled for better recognition.
const minRegionDim = 150

// Preprocess prepares an image region for OCR. The caller owns the returned
// Mat and must Close it.
func Preprocess(region gocv.Mat, mode PreprocessMode) gocv.Mat {
	h, w := region.Rows(), region.Cols()

	// Upscale small regions (typical for a tight ROI around a single line).
	var scaled gocv.Mat
	minDim := h
	if w < minDim {
		minDim = w
	}
	if minDim > 0 && minDim < minRegionDim {
		scale := float64(minRegionDim) / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(region, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = region.Clone()
	}

	if mode == PreprocessNone {
		return scaled
	}

	// Grayscale with CLAHE contrast enhancement.
	gray := gocv.NewMat()
	gocv.CvtColor(scaled, &gray, gocv.ColorBGRToGray)
	scaled.Close()

	clahe := gocv.NewCLAHEWithParams(2.0, image.Point{X: 8, Y: 8})
	defer clahe.Close()

	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	gray.Close()

	if mode == PreprocessGray {
		result := gocv.NewMat()
		gocv.CvtColor(enhanced, &result, gocv.ColorGrayToBGR)
		enhanced.Close()
		return result
	}

	// Otsu's threshold for clean text/background separation.
	binary := gocv.NewMat()
	gocv.Threshold(enhanced, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	enhanced.Close()

	// The engine expects dark text on a light background; invert
	// light-on-dark scans.
	whiteCount := gocv.CountNonZero(binary)
	totalPixels := binary.Rows() * binary.Cols()
	if totalPixels > 0 && float64(whiteCount)/float64(totalPixels) < 0.5 {
		gocv.BitwiseNot(binary, &binary)
	}

	result := gocv.NewMat()
	gocv.CvtColor(binary, &result, gocv.ColorGrayToBGR)
	binary.Close()

	return result
}
