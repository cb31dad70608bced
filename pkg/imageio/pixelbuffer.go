package imageio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// PixelBuffer wraps a caller-owned, already-decoded ARGB byte slice (e.g.
// one frame handed over by a video demuxer) as an image.Image without
// copying. Pix is laid out row-major as 4 bytes per pixel in A, R, G, B
// order, with Stride bytes between the start of consecutive rows.
type PixelBuffer struct {
	Pix           []byte
	Stride        int
	Width, Height int
}

// NewPixelBuffer validates dimensions and stride against len(pix) and
// returns a PixelBuffer backed directly by pix (no copy).
func NewPixelBuffer(pix []byte, stride, width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imageio: non-positive dimensions %dx%d: %w", width, height, colorspace.ErrInvalidArgument)
	}
	if stride < width*4 {
		return nil, fmt.Errorf("imageio: stride %d too small for width %d: %w", stride, width, colorspace.ErrInvalidArgument)
	}
	if len(pix) < stride*(height-1)+width*4 {
		return nil, fmt.Errorf("imageio: pixel slice too short for %dx%d at stride %d: %w", width, height, stride, colorspace.ErrMalformedInput)
	}
	return &PixelBuffer{Pix: pix, Stride: stride, Width: width, Height: height}, nil
}

func (p *PixelBuffer) ColorModel() color.Model { return color.NRGBAModel }

func (p *PixelBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

// At reads the ARGB quadruplet at (x, y) and returns it as color.NRGBA.
func (p *PixelBuffer) At(x, y int) color.Color {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return color.NRGBA{}
	}
	i := y*p.Stride + x*4
	a, r, g, b := p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3]
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Set writes an ARGB quadruplet at (x, y), converting c to non-premultiplied
// NRGBA first so that At reads the same color back.
func (p *PixelBuffer) Set(x, y int, c color.Color) {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := y*p.Stride + x*4
	p.Pix[i] = n.A
	p.Pix[i+1] = n.R
	p.Pix[i+2] = n.G
	p.Pix[i+3] = n.B
}
