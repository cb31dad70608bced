package dither

import (
	"image"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// bayer2 is the base 2×2 Bayer threshold matrix.
var bayer2 = [][]int{
	{0, 2},
	{3, 1},
}

// expandBayer builds a 2n×2n matrix from an n×n one following the standard
// recursive Bayer construction: with M the n×n base, the four n×n quadrants
// are [[4M, 4M+2], [4M+3, 4M+1]].
func expandBayer(base [][]int) [][]int {
	n := len(base)
	out := make([][]int, n*2)
	for i := range out {
		out[i] = make([]int, n*2)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := base[y][x] * 4
			out[y][x] = c
			out[y][x+n] = c + 2
			out[y+n][x] = c + 3
			out[y+n][x+n] = c + 1
		}
	}
	return out
}

var (
	bayer4 = expandBayer(bayer2)
	bayer8 = expandBayer(bayer4)
)

// OrderedDitherer biases each channel by a fixed Bayer matrix cell before
// nearest-color matching, giving a reproducible crosshatch pattern with no
// dependency between pixels.
type OrderedDitherer struct {
	// Matrix is the threshold matrix (values 0..size²-1); size must be a
	// power of two. Use NewBayerDitherer to build one of the standard sizes.
	Matrix [][]int
	// Scale controls dither strength; zero selects 255/8, a reasonable
	// default for an 8-level effective palette cube edge.
	Scale float64
	size  int
}

// NewBayerDitherer builds an OrderedDitherer over the n×n Bayer matrix,
// where n is 2, 4, or 8.
func NewBayerDitherer(n int) OrderedDitherer {
	switch n {
	case 2:
		return OrderedDitherer{Matrix: bayer2, size: 2}
	case 4:
		return OrderedDitherer{Matrix: bayer4, size: 4}
	case 8:
		return OrderedDitherer{Matrix: bayer8, size: 8}
	default:
		panic(colorspace.ErrInvalidArgument)
	}
}

func (d OrderedDitherer) Name() string {
	switch d.size {
	case 2:
		return "Ordered/Bayer2x2"
	case 4:
		return "Ordered/Bayer4x4"
	default:
		return "Ordered/Bayer8x8"
	}
}

func (d OrderedDitherer) Dither(img image.Image, pal *palette.Wrapper) *IndexedImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewIndexedImage(w, h, pal.Palette())

	n := d.size
	cells := float64(n * n)
	scale := d.Scale
	if scale == 0 {
		scale = 255.0 / 8
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := readColor(img, bounds, x, y)
			if src.A == 0 {
				out.Set(x, y, 0)
				continue
			}

			bias := (float64(d.Matrix[y%n][x%n])/cells - 0.5) * scale

			adjusted := colorspace.New(
				clamp255(float64(src.R)+bias),
				clamp255(float64(src.G)+bias),
				clamp255(float64(src.B)+bias),
				src.A,
			)
			out.Set(x, y, uint8(pal.Nearest(adjusted)))
		}
	}
	return out
}
