package quantize

import (
	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// Wu down-samples to a 32×32×32 histogram (top 5 bits per channel),
// repeatedly splits the cube with the largest
// (rMax−rMin)(gMax−gMin)(bMax−bMin) product at the midpoint of its longest
// axis, and represent each final cube by its count-weighted mean shifted
// left by 3 bits to return to 8-bit space.
type Wu struct{}

func (Wu) Name() string { return "Wu" }

func (Wu) Reduce(target int, h *Histogram) (palette.Palette, error) {
	return Base(target, h, wuAlgorithm)
}

func wuAlgorithm(target int, colors []ColorCount) []colorspace.Color {
	// Down-sample into the reduced 5-bit-per-channel space.
	reduced := make(map[uint32]*ColorCount, len(colors))
	order := make([]uint32, 0, len(colors))
	for _, cc := range colors {
		rc := colorspace.NewRGB(cc.Color.R>>3, cc.Color.G>>3, cc.Color.B>>3)
		key := rc.ARGB()
		e, ok := reduced[key]
		if !ok {
			e = &ColorCount{Color: rc}
			reduced[key] = e
			order = append(order, key)
		}
		e.Count += cc.Count
	}
	reducedColors := make([]ColorCount, len(order))
	for i, key := range order {
		reducedColors[i] = *reduced[key]
	}

	cubes := []*Cube{NewCube(reducedColors)}
	for len(cubes) < target {
		maxIdx := -1
		maxVol := -1
		for i, cube := range cubes {
			if !cube.Splittable() {
				continue
			}
			minC, maxC := cube.Bounds()
			vol := int(maxC[0]-minC[0]) * int(maxC[1]-minC[1]) * int(maxC[2]-minC[2])
			if vol > maxVol {
				maxVol = vol
				maxIdx = i
			}
		}
		if maxIdx == -1 {
			break
		}

		cube := cubes[maxIdx]
		axis, _ := cube.LongestAxis()
		minC, maxC := cube.Bounds()
		mid := (uint16(minC[axis]) + uint16(maxC[axis])) / 2
		left, right := cube.SplitAtValue(axis, uint8(mid))
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
		mean := cube.Mean()
		out[i] = colorspace.NewRGB(clampShift(mean.R), clampShift(mean.G), clampShift(mean.B))
	}
	return out
}

func clampShift(v uint8) uint8 {
	shifted := int(v) << 3
	if shifted > 255 {
		return 255
	}
	return uint8(shifted)
}
