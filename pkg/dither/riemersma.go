package dither

import (
	"image"
	"math"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// RiemersmaDitherer walks the image along a Hilbert space-filling curve
// instead of raster order, carrying a short, exponentially-decaying history
// of recent quantization error forward along the curve. Locality along the
// curve approximates locality in the image, so error still diffuses to
// nearby pixels even though the visiting order is not row-major.
type RiemersmaDitherer struct {
	// HistorySize is the length of the decaying error queue; zero selects 16.
	HistorySize int
}

func (RiemersmaDitherer) Name() string { return "Riemersma" }

func (d RiemersmaDitherer) Dither(img image.Image, pal *palette.Wrapper) *IndexedImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewIndexedImage(w, h, pal.Palette())
	if w == 0 || h == 0 {
		return out
	}

	historySize := d.HistorySize
	if historySize <= 0 {
		historySize = 16
	}
	weights := decayWeights(historySize)

	historyR := make([]float64, historySize)
	historyG := make([]float64, historySize)
	historyB := make([]float64, historySize)
	pos := 0

	for _, p := range hilbertPath(w, h) {
		x, y := p.X, p.Y
		src := readColor(img, bounds, x, y)
		if src.A == 0 {
			out.Set(x, y, 0)
			continue
		}

		var accR, accG, accB float64
		for i := 0; i < historySize; i++ {
			j := (pos - 1 - i + historySize*2) % historySize
			accR += historyR[j] * weights[i]
			accG += historyG[j] * weights[i]
			accB += historyB[j] * weights[i]
		}

		adjusted := colorspace.New(
			clamp255(float64(src.R)+accR),
			clamp255(float64(src.G)+accG),
			clamp255(float64(src.B)+accB),
			src.A,
		)

		idx := pal.Nearest(adjusted)
		out.Set(x, y, uint8(idx))
		matched := pal.Palette()[idx]

		historyR[pos] = float64(adjusted.R) - float64(matched.R)
		historyG[pos] = float64(adjusted.G) - float64(matched.G)
		historyB[pos] = float64(adjusted.B) - float64(matched.B)
		pos = (pos + 1) % historySize
	}
	return out
}

// decayWeights returns n weights starting near 1 and decaying geometrically
// so the oldest entry contributes roughly 1/16th of the newest.
func decayWeights(n int) []float64 {
	ratio := math.Pow(1.0/16, 1.0/float64(n))
	out := make([]float64, n)
	w := 1.0
	for i := range out {
		out[i] = w
		w *= ratio
	}
	return out
}

// hilbertPath returns every point of a w×h grid in Hilbert-curve order, by
// walking the smallest enclosing power-of-two Hilbert curve and dropping
// points outside the grid.
func hilbertPath(w, h int) []image.Point {
	side := 1
	for side < w || side < h {
		side *= 2
	}

	out := make([]image.Point, 0, w*h)
	total := side * side
	for d := 0; d < total; d++ {
		x, y := hilbertD2XY(side, d)
		if x < w && y < h {
			out = append(out, image.Point{X: x, Y: y})
		}
	}
	return out
}

// hilbertD2XY converts a distance along a Hilbert curve of the given side
// (a power of two) into (x, y) coordinates.
func hilbertD2XY(side, d int) (x, y int) {
	t := d
	for s := 1; s < side; s *= 2 {
		rx := 1 & (t / 2)
		ry := 1 & (t ^ rx)
		x, y = hilbertRotate(s, x, y, rx, ry)
		x += s * rx
		y += s * ry
		t /= 4
	}
	return x, y
}

func hilbertRotate(s, x, y, rx, ry int) (int, int) {
	if ry == 0 {
		if rx == 1 {
			x = s - 1 - x
			y = s - 1 - y
		}
		return y, x
	}
	return x, y
}
