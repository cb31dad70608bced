package quantize

import (
	"math"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// PcaWrapper wraps a base quantizer, rotating the color cloud into its
// principal-component axes before quantizing and back afterward. Colors with
// a larger spread along a skewed diagonal (common in natural photos) split
// more faithfully when the base quantizer's axis-aligned cuts operate on the
// decorrelated space instead of raw RGB.
type PcaWrapper struct {
	Base Quantizer
}

func (w PcaWrapper) Name() string { return "Pca+" + w.Base.Name() }

func (w PcaWrapper) Reduce(target int, h *Histogram) (palette.Palette, error) {
	colors := h.ColorCounts()
	if len(colors) == 0 {
		return Base(target, h, func(int, []ColorCount) []colorspace.Color { return nil })
	}

	mean, eigvecs := pcaBasis(colors)

	type axisRange struct{ min, max float64 }
	ranges := [3]axisRange{{math.MaxFloat64, -math.MaxFloat64}, {math.MaxFloat64, -math.MaxFloat64}, {math.MaxFloat64, -math.MaxFloat64}}

	project := func(c colorspace.Color) [3]float64 {
		v := [3]float64{float64(c.R) - mean[0], float64(c.G) - mean[1], float64(c.B) - mean[2]}
		var p [3]float64
		for k := 0; k < 3; k++ {
			p[k] = eigvecs[0][k]*v[0] + eigvecs[1][k]*v[1] + eigvecs[2][k]*v[2]
		}
		return p
	}

	projections := make([][3]float64, len(colors))
	for i, cc := range colors {
		p := project(cc.Color)
		projections[i] = p
		for k := 0; k < 3; k++ {
			if p[k] < ranges[k].min {
				ranges[k].min = p[k]
			}
			if p[k] > ranges[k].max {
				ranges[k].max = p[k]
			}
		}
	}
	for k := 0; k < 3; k++ {
		if ranges[k].min == ranges[k].max {
			ranges[k].min, ranges[k].max = 0, 1
		}
	}

	rescale := func(p [3]float64) colorspace.Color {
		scaled := [3]float64{}
		for k := 0; k < 3; k++ {
			scaled[k] = (p[k] - ranges[k].min) / (ranges[k].max - ranges[k].min) * 255
		}
		return colorspace.NewRGB(clampByte(scaled[0]), clampByte(scaled[1]), clampByte(scaled[2]))
	}

	transformed := make([]ColorCount, len(colors))
	for i, cc := range colors {
		transformed[i] = ColorCount{Color: rescale(projections[i]), Count: cc.Count}
	}

	transformedHist := FromColorCounts(transformed)
	transformedPalette, err := w.Base.Reduce(target, transformedHist)
	if err != nil {
		return nil, err
	}

	inverse := func(c colorspace.Color) colorspace.Color {
		var p [3]float64
		p[0] = float64(c.R)/255*(ranges[0].max-ranges[0].min) + ranges[0].min
		p[1] = float64(c.G)/255*(ranges[1].max-ranges[1].min) + ranges[1].min
		p[2] = float64(c.B)/255*(ranges[2].max-ranges[2].min) + ranges[2].min

		var v [3]float64
		for k := 0; k < 3; k++ {
			v[k] = eigvecs[k][0]*p[0] + eigvecs[k][1]*p[1] + eigvecs[k][2]*p[2]
		}
		return colorspace.NewRGB(
			clampByte(v[0]+mean[0]),
			clampByte(v[1]+mean[1]),
			clampByte(v[2]+mean[2]),
		)
	}

	out := make(palette.Palette, len(transformedPalette))
	for i, c := range transformedPalette {
		out[i] = inverse(c)
	}
	return out, nil
}

// pcaBasis returns the weighted mean color and the 3×3 matrix of
// eigenvectors (columns) of the color cloud's covariance.
func pcaBasis(colors []ColorCount) (mean [3]float64, eigvecs [3][3]float64) {
	cube := NewCube(colors)
	m := cube.Mean()
	mean = [3]float64{float64(m.R), float64(m.G), float64(m.B)}

	cov := cube.Covariance()
	_, vectors := jacobiEigen(cov)
	return mean, vectors
}
