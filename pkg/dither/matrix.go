package dither

import (
	"image"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// kernelTap is one error-diffusion target relative to the pixel just
// quantized: dx, dy offset and share of the error (weight/Divisor).
type kernelTap struct {
	dx, dy int
	weight float64
}

// Kernel is a named error-diffusion matrix. Taps are expressed relative to
// the source pixel scanned left-to-right, top-to-bottom; dy must be >= 0,
// and taps with dy == 0 must have dx > 0, since only not-yet-visited
// pixels can receive diffused error.
type Kernel struct {
	Name    string
	Taps    []kernelTap
	Divisor float64
}

func tap(dx, dy int, weight float64) kernelTap { return kernelTap{dx, dy, weight} }

var (
	FloydSteinberg = Kernel{
		Name:    "FloydSteinberg",
		Divisor: 16,
		Taps:    []kernelTap{tap(1, 0, 7), tap(-1, 1, 3), tap(0, 1, 5), tap(1, 1, 1)},
	}
	Simple = Kernel{
		Name:    "Simple",
		Divisor: 2,
		Taps:    []kernelTap{tap(1, 0, 1), tap(0, 1, 1)},
	}
	JarvisJudiceNinke = Kernel{
		Name:    "JarvisJudiceNinke",
		Divisor: 48,
		Taps: []kernelTap{
			tap(1, 0, 7), tap(2, 0, 5),
			tap(-2, 1, 3), tap(-1, 1, 5), tap(0, 1, 7), tap(1, 1, 5), tap(2, 1, 3),
			tap(-2, 2, 1), tap(-1, 2, 3), tap(0, 2, 5), tap(1, 2, 3), tap(2, 2, 1),
		},
	}
	Stucki = Kernel{
		Name:    "Stucki",
		Divisor: 42,
		Taps: []kernelTap{
			tap(1, 0, 8), tap(2, 0, 4),
			tap(-2, 1, 2), tap(-1, 1, 4), tap(0, 1, 8), tap(1, 1, 4), tap(2, 1, 2),
			tap(-2, 2, 1), tap(-1, 2, 2), tap(0, 2, 4), tap(1, 2, 2), tap(2, 2, 1),
		},
	}
	Atkinson = Kernel{
		Name:    "Atkinson",
		Divisor: 8,
		Taps: []kernelTap{
			tap(1, 0, 1), tap(2, 0, 1),
			tap(-1, 1, 1), tap(0, 1, 1), tap(1, 1, 1),
			tap(0, 2, 1),
		},
	}
	Burkes = Kernel{
		Name:    "Burkes",
		Divisor: 32,
		Taps: []kernelTap{
			tap(1, 0, 8), tap(2, 0, 4),
			tap(-2, 1, 2), tap(-1, 1, 4), tap(0, 1, 8), tap(1, 1, 4), tap(2, 1, 2),
		},
	}
	Sierra = Kernel{
		Name:    "Sierra",
		Divisor: 32,
		Taps: []kernelTap{
			tap(1, 0, 5), tap(2, 0, 3),
			tap(-2, 1, 2), tap(-1, 1, 4), tap(0, 1, 5), tap(1, 1, 4), tap(2, 1, 2),
			tap(-1, 2, 2), tap(0, 2, 3), tap(1, 2, 2),
		},
	}
	TwoRowSierra = Kernel{
		Name:    "TwoRowSierra",
		Divisor: 16,
		Taps: []kernelTap{
			tap(1, 0, 4), tap(2, 0, 3),
			tap(-2, 1, 1), tap(-1, 1, 2), tap(0, 1, 3), tap(1, 1, 2), tap(2, 1, 1),
		},
	}
	SierraLite = Kernel{
		Name:    "SierraLite",
		Divisor: 4,
		Taps:    []kernelTap{tap(1, 0, 2), tap(-1, 1, 1), tap(0, 1, 1)},
	}
)

// MatrixBasedDitherer diffuses the quantization error of each pixel to its
// not-yet-visited neighbors according to Kernel, the generic engine behind
// Floyd-Steinberg and its relatives.
type MatrixBasedDitherer struct {
	Kernel Kernel
}

func (d MatrixBasedDitherer) Name() string { return d.Kernel.Name }

func (d MatrixBasedDitherer) Dither(img image.Image, pal *palette.Wrapper) *IndexedImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewIndexedImage(w, h, pal.Palette())

	errR := make([]float64, w*h)
	errG := make([]float64, w*h)
	errB := make([]float64, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			src := readColor(img, bounds, x, y)

			adjusted := colorspace.New(
				clamp255(float64(src.R)+errR[idx]),
				clamp255(float64(src.G)+errG[idx]),
				clamp255(float64(src.B)+errB[idx]),
				src.A,
			)

			if src.A == 0 {
				out.Set(x, y, 0)
				continue
			}

			nearestIdx := pal.Nearest(adjusted)
			out.Set(x, y, uint8(nearestIdx))
			matched := pal.Palette()[nearestIdx]

			dr := float64(adjusted.R) - float64(matched.R)
			dg := float64(adjusted.G) - float64(matched.G)
			db := float64(adjusted.B) - float64(matched.B)

			for _, t := range d.Kernel.Taps {
				nx, ny := x+t.dx, y+t.dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				share := t.weight / d.Kernel.Divisor
				nidx := ny*w + nx
				errR[nidx] += dr * share
				errG[nidx] += dg * share
				errB[nidx] += db * share
			}
		}
	}
	return out
}
