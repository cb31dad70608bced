package quantize

import (
	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// MedianCut repeatedly splits the cube with the largest bounding-box volume
// at the median along its longest axis (ties broken R > G > B) until the
// cube count equals target.
type MedianCut struct{}

func (MedianCut) Name() string { return "MedianCut" }

// Reduce implements Quantizer.
func (MedianCut) Reduce(target int, h *Histogram) (palette.Palette, error) {
	return Base(target, h, medianCutAlgorithm)
}

func medianCutAlgorithm(target int, colors []ColorCount) []colorspace.Color {
	cubes := []*Cube{NewCube(colors)}

	for len(cubes) < target {
		maxIdx := -1
		maxVol := -1
		for i, cube := range cubes {
			if !cube.Splittable() {
				continue
			}
			if v := cube.Volume(); v > maxVol {
				maxVol = v
				maxIdx = i
			}
		}
		if maxIdx == -1 {
			break
		}

		axis, _ := cubes[maxIdx].LongestAxis()
		left, right := cubes[maxIdx].SplitAtMedian(axis)
		if len(left.Entries) == 0 || len(right.Entries) == 0 {
			// Never emit an empty child: leave the cube unsplit and stop.
			break
		}

		cubes = append(cubes[:maxIdx], append([]*Cube{left, right}, cubes[maxIdx+1:]...)...)
	}

	out := make([]colorspace.Color, len(cubes))
	for i, cube := range cubes {
		out[i] = cube.Mean()
	}
	return out
}
