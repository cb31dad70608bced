package quantize

import (
	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// BinarySplitting measures a cube's splittability as the largest eigenvalue
// of its 3×3 covariance matrix. It splits by projecting every color onto the
// dominant eigenvector and partitioning at the mean projection.
type BinarySplitting struct{}

func (BinarySplitting) Name() string { return "BinarySplitting" }

func (BinarySplitting) Reduce(target int, h *Histogram) (palette.Palette, error) {
	return Base(target, h, binarySplittingAlgorithm)
}

func binarySplittingAlgorithm(target int, colors []ColorCount) []colorspace.Color {
	cubes := []*Cube{NewCube(colors)}

	for len(cubes) < target {
		maxIdx := -1
		maxEig := -1.0
		for i, cube := range cubes {
			if !cube.Splittable() {
				continue
			}
			_, eig := dominantEigenvector(cube.Covariance())
			if eig > maxEig {
				maxEig = eig
				maxIdx = i
			}
		}
		if maxIdx == -1 {
			break
		}

		cube := cubes[maxIdx]
		left, right := splitByProjection(cube)
		if left == nil || len(left.Entries) == 0 || len(right.Entries) == 0 {
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

func splitByProjection(c *Cube) (left, right *Cube) {
	vec, _ := dominantEigenvector(c.Covariance())
	mean := c.Mean()

	meanProj := vec[0]*float64(mean.R) + vec[1]*float64(mean.G) + vec[2]*float64(mean.B)

	var l, r []ColorCount
	for _, e := range c.Entries {
		proj := vec[0]*float64(e.Color.R) + vec[1]*float64(e.Color.G) + vec[2]*float64(e.Color.B)
		if proj <= meanProj {
			l = append(l, e)
		} else {
			r = append(r, e)
		}
	}
	return &Cube{Entries: l}, &Cube{Entries: r}
}
