package quantize

import (
	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// VarianceBased splits the cube with the largest weighted variance
// WL·(σR²+σG²+σB²) (L = pixel count). The split threshold
// is chosen, per axis and per distinct value along that axis, to minimize
// the sum of per-side within-variance × count; if no candidate improves on
// the unsplit cube, fall back to a median split.
type VarianceBased struct{}

func (VarianceBased) Name() string { return "VarianceBased" }

func (VarianceBased) Reduce(target int, h *Histogram) (palette.Palette, error) {
	return Base(target, h, varianceBasedAlgorithm)
}

func weightedVariance(c *Cube) float64 {
	varR, varG, varB := c.Variance()
	return float64(c.Weight()) * (varR + varG + varB)
}

func varianceBasedAlgorithm(target int, colors []ColorCount) []colorspace.Color {
	cubes := []*Cube{NewCube(colors)}

	for len(cubes) < target {
		maxIdx := -1
		maxVar := -1.0
		for i, cube := range cubes {
			if !cube.Splittable() {
				continue
			}
			if v := weightedVariance(cube); v > maxVar {
				maxVar = v
				maxIdx = i
			}
		}
		if maxIdx == -1 {
			break
		}

		cube := cubes[maxIdx]
		left, right, ok := bestVarianceSplit(cube)
		if !ok {
			axis, _ := cube.LongestAxis()
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

func bestVarianceSplit(c *Cube) (left, right *Cube, ok bool) {
	baseObjective := weightedVariance(c)
	bestObjective := baseObjective
	var bestLeft, bestRight *Cube

	for axis := AxisR; axis <= AxisB; axis++ {
		seen := make(map[uint8]struct{})
		for _, e := range c.Entries {
			v := channel(e.Color, axis)
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}

			l, r := c.SplitAtValue(axis, v)
			if len(l.Entries) == 0 || len(r.Entries) == 0 {
				continue
			}
			objective := weightedVariance(l) + weightedVariance(r)
			if objective < bestObjective {
				bestObjective = objective
				bestLeft, bestRight = l, r
			}
		}
	}

	if bestLeft == nil {
		return nil, nil, false
	}
	return bestLeft, bestRight, true
}
