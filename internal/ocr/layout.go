package ocr

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Reconstruct rebuilds line-broken plain text from word boxes using the
// engine's layout metadata: words sharing the same (block, paragraph, line)
// triple are joined with single spaces, and a change in any index of the
// triple starts a new output line.
func Reconstruct(words []WordBox) string {
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	prevBlock, prevPar, prevLine := words[0].Block, words[0].Paragraph, words[0].Line

	for i, w := range words {
		if i > 0 {
			if w.Block != prevBlock || w.Paragraph != prevPar || w.Line != prevLine {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(w.Text)
		prevBlock, prevPar, prevLine = w.Block, w.Paragraph, w.Line
	}

	return sb.String()
}

// Lines groups word boxes into reconstructed text lines, preserving word
// order within each line. The transcript view renders one row per group.
func Lines(words []WordBox) [][]WordBox {
	var lines [][]WordBox
	for _, w := range words {
		n := len(lines)
		if n > 0 {
			last := lines[n-1][0]
			if w.Block == last.Block && w.Paragraph == last.Paragraph && w.Line == last.Line {
				lines[n-1] = append(lines[n-1], w)
				continue
			}
		}
		lines = append(lines, []WordBox{w})
	}
	return lines
}

// EstimateSkew estimates the page skew angle in degrees from the word boxes.
// For every text line with at least two words, a least-squares line is fitted
// through the box centers; the per-line slopes are averaged weighted by word
// count. Returns 0 when there is not enough data.
func EstimateSkew(words []WordBox) float64 {
	var weightedAngle, totalWeight float64

	for _, line := range Lines(words) {
		if len(line) < 2 {
			continue
		}

		xs := make([]float64, len(line))
		ys := make([]float64, len(line))
		for i, w := range line {
			c := w.Bounds.ToFloat().Center()
			xs[i] = c.X
			ys[i] = c.Y
		}

		_, slope := stat.LinearRegression(xs, ys, nil, false)
		if math.IsNaN(slope) || math.IsInf(slope, 0) {
			continue
		}

		weight := float64(len(line))
		weightedAngle += math.Atan(slope) * 180 / math.Pi * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedAngle / totalWeight
}
