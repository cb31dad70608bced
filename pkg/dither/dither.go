// Package dither converts a truecolor image into an indexed bitmap against a
// fixed palette, trading exact per-pixel color for the illusion of a wider
// range via error diffusion, ordered thresholds, noise, or pattern search.
package dither

import (
	"image"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// IndexedImage is a rectangular grid of palette indices, row-major from the
// top-left corner.
type IndexedImage struct {
	Width, Height int
	Pix           []uint8
	Palette       palette.Palette
}

// NewIndexedImage allocates a zeroed w×h indexed image over pal.
func NewIndexedImage(w, h int, pal palette.Palette) *IndexedImage {
	return &IndexedImage{Width: w, Height: h, Pix: make([]uint8, w*h), Palette: pal}
}

// At returns the palette index at (x, y).
func (m *IndexedImage) At(x, y int) uint8 { return m.Pix[y*m.Width+x] }

// Set stores idx at (x, y).
func (m *IndexedImage) Set(x, y int, idx uint8) { m.Pix[y*m.Width+x] = idx }

// Color returns the palette color at (x, y).
func (m *IndexedImage) Color(x, y int) colorspace.Color { return m.Palette[m.At(x, y)] }

// Ditherer reduces a truecolor image to an IndexedImage against a fixed
// palette. Implementations must be safe to reuse across images; none hold
// per-call state beyond a local working buffer.
type Ditherer interface {
	Name() string
	Dither(img image.Image, pal *palette.Wrapper) *IndexedImage
}

// NoDither maps every pixel to its nearest palette entry independently, with
// no error propagation between pixels.
type NoDither struct{}

func (NoDither) Name() string { return "NoDither" }

func (NoDither) Dither(img image.Image, pal *palette.Wrapper) *IndexedImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewIndexedImage(w, h, pal.Palette())

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := readColor(img, bounds, x, y)
			out.Set(x, y, uint8(pal.Nearest(c)))
		}
	}
	return out
}

func readColor(img image.Image, bounds image.Rectangle, x, y int) colorspace.Color {
	r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
	return colorspace.New(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
