package quantize

import (
	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// AntRefinementWrapper runs a base quantizer and then relaxes its palette
// with k-means-style iterations: every histogram color is assigned to its
// nearest palette entry under Metric, and each entry is recomputed as the
// weighted centroid of its assigned colors. An entry with no assignments
// keeps its previous position. Always honors pixel counts as centroid
// weights, never uniform per-color weights, so frequent colors dominate the
// recomputed center the way they dominated the original histogram.
type AntRefinementWrapper struct {
	Base   Quantizer
	Metric colorspace.Metric
	// Iterations is the number of relaxation passes. Zero selects 25.
	Iterations int
}

func (w AntRefinementWrapper) Name() string { return w.Base.Name() + "+Ant" }

func (w AntRefinementWrapper) Reduce(target int, h *Histogram) (palette.Palette, error) {
	base, err := w.Base.Reduce(target, h)
	if err != nil {
		return nil, err
	}

	metric := w.Metric
	if metric == nil {
		metric = colorspace.Euclidean
	}
	iterations := w.Iterations
	if iterations <= 0 {
		iterations = 25
	}

	colors := h.ColorCounts()
	if len(colors) == 0 || len(base) < 2 {
		return base, nil
	}

	centers := make([]colorspace.Color, len(base))
	copy(centers, base)

	for iter := 0; iter < iterations; iter++ {
		var sumR, sumG, sumB, sumN = make([]uint64, len(centers)), make([]uint64, len(centers)), make([]uint64, len(centers)), make([]uint64, len(centers))

		for _, cc := range colors {
			best := 0
			bestDist := metric.Distance(cc.Color, centers[0])
			for i := 1; i < len(centers); i++ {
				if d := metric.Distance(cc.Color, centers[i]); d < bestDist {
					bestDist = d
					best = i
				}
			}
			weight := uint64(cc.Count)
			sumR[best] += uint64(cc.Color.R) * weight
			sumG[best] += uint64(cc.Color.G) * weight
			sumB[best] += uint64(cc.Color.B) * weight
			sumN[best] += weight
		}

		changed := false
		for i := range centers {
			if sumN[i] == 0 {
				continue
			}
			next := colorspace.NewRGB(uint8(sumR[i]/sumN[i]), uint8(sumG[i]/sumN[i]), uint8(sumB[i]/sumN[i]))
			if next != centers[i] {
				changed = true
			}
			centers[i] = next
		}
		if !changed {
			break
		}
	}

	return palette.Palette(palette.Pad(palette.Dedup(centers), target)), nil
}

// AntTreeRefiner is AntRefinementWrapper with the Euclidean metric and the
// default 25 iterations, usable as a standalone post-process over any
// palette produced outside this package.
func AntTreeRefiner(base Quantizer) Quantizer {
	return AntRefinementWrapper{Base: base, Metric: colorspace.Euclidean, Iterations: 25}
}

// WuAntQuantizer runs Wu followed by ant-tree relaxation.
func WuAntQuantizer() Quantizer { return AntTreeRefiner(Wu{}) }

// BinarySplittingAntQuantizer runs BinarySplitting followed by ant-tree
// relaxation.
func BinarySplittingAntQuantizer() Quantizer { return AntTreeRefiner(BinarySplitting{}) }

// BSITATCQQuantizer composes VarianceCut with ant-tree relaxation: "Binary
// Splitting Initialized Tree-Adaptive Trellis Coded Quantization" in name
// only, it is VarianceCut's box split used purely as a seeding step for the
// centroid relaxation.
func BSITATCQQuantizer() Quantizer { return AntTreeRefiner(VarianceCut{}) }
