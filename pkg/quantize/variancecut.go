package quantize

import (
	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// VarianceCut measures splittability as the sum of squared error from the
// cube's centroid; the split runs along the axis of greatest univariate
// variance at the component's mean value, falling back to a median split if
// that leaves one side empty.
type VarianceCut struct{}

func (VarianceCut) Name() string { return "VarianceCut" }

func (VarianceCut) Reduce(target int, h *Histogram) (palette.Palette, error) {
	return Base(target, h, varianceCutAlgorithm)
}

func varianceCutAlgorithm(target int, colors []ColorCount) []colorspace.Color {
	cubes := []*Cube{NewCube(colors)}

	for len(cubes) < target {
		maxIdx := -1
		maxSSE := -1.0
		for i, cube := range cubes {
			if !cube.Splittable() {
				continue
			}
			if v := cube.SSE(); v > maxSSE {
				maxSSE = v
				maxIdx = i
			}
		}
		if maxIdx == -1 {
			break
		}

		cube := cubes[maxIdx]
		varR, varG, varB := cube.Variance()
		axis := AxisR
		best := varR
		if varG > best {
			axis, best = AxisG, varG
		}
		if varB > best {
			axis = AxisB
		}

		mean := cube.Mean()
		left, right := cube.SplitAtValue(axis, channel(mean, axis))
		if len(left.Entries) == 0 || len(right.Entries) == 0 {
			left, right = cube.SplitAtMedian(axis)
			if len(left.Entries) == 0 || len(right.Entries) == 0 {
				break
			}
		}

		cubes = append(cubes[:maxIdx], append([]*Cube{left, right}, cubes[maxIdx+1:]...)...)
	}

	out := make([]colorspace.Color, len(cubes))
	for i, cube := range cubes {
		out[i] = cube.Mean()
	}
	return out
}
