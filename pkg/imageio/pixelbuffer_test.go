package imageio

import (
	"errors"
	"image/color"
	"testing"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

func TestNewPixelBufferRejectsShortSlice(t *testing.T) {
	_, err := NewPixelBuffer(make([]byte, 4), 8, 4, 4)
	if !errors.Is(err, colorspace.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestNewPixelBufferRejectsBadDimensions(t *testing.T) {
	_, err := NewPixelBuffer(make([]byte, 100), 16, 0, 4)
	if !errors.Is(err, colorspace.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPixelBufferSetAndAtRoundTrip(t *testing.T) {
	w, h := 3, 2
	stride := w * 4
	pix := make([]byte, stride*h)
	pb, err := NewPixelBuffer(pix, stride, w, h)
	if err != nil {
		t.Fatalf("NewPixelBuffer: %v", err)
	}

	pb.Set(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	c := pb.At(1, 1).(color.NRGBA)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Fatalf("At(1,1) = %+v, want R10 G20 B30 A255", c)
	}

	if pb.Bounds().Dx() != w || pb.Bounds().Dy() != h {
		t.Fatalf("Bounds() = %v, want %dx%d", pb.Bounds(), w, h)
	}
}

func TestPixelBufferOutOfBoundsIsNoop(t *testing.T) {
	pb, err := NewPixelBuffer(make([]byte, 16), 8, 2, 2)
	if err != nil {
		t.Fatalf("NewPixelBuffer: %v", err)
	}
	pb.Set(5, 5, color.NRGBA{R: 255, A: 255})
	c := pb.At(5, 5).(color.NRGBA)
	if c != (color.NRGBA{}) {
		t.Fatalf("At out of bounds = %+v, want zero value", c)
	}
}
