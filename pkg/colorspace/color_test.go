package colorspace

import (
	"errors"
	"testing"
)

func TestFromHexRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    Color
		wantErr bool
	}{
		{"six digit with hash", "#FF8000", NewRGB(255, 128, 0), false},
		{"six digit without hash", "00FF00", NewRGB(0, 255, 0), false},
		{"eight digit with alpha", "#112233AA", Color{R: 0x11, G: 0x22, B: 0x33, A: 0xAA}, false},
		{"too short", "#FFF", Color{}, true},
		{"non-hex characters", "#GGGGGG", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHex(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromHex(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Fatalf("FromHex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestHexRendersUppercase(t *testing.T) {
	c := Color{R: 0xAB, G: 0xCD, B: 0xEF, A: 0x12}
	if got := c.Hex(); got != "#ABCDEF12" {
		t.Fatalf("Hex() = %q, want #ABCDEF12", got)
	}
	if got := c.HexRGB(); got != "#ABCDEF" {
		t.Fatalf("HexRGB() = %q, want #ABCDEF", got)
	}
}

func TestARGBPacksChannelsInOrder(t *testing.T) {
	c := Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}
	want := uint32(0x44112233)
	if got := c.ARGB(); got != want {
		t.Fatalf("ARGB() = %#x, want %#x", got, want)
	}
}

func TestLabRoundTripsThroughFromLab(t *testing.T) {
	orig := NewRGB(120, 40, 200)
	l, a, b := orig.Lab()
	back := FromLab(l, a, b, orig.A)

	const tol = 2
	if absDiff(int(orig.R), int(back.R)) > tol || absDiff(int(orig.G), int(back.G)) > tol || absDiff(int(orig.B), int(back.B)) > tol {
		t.Fatalf("Lab round trip: got %+v, want close to %+v", back, orig)
	}
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

func TestLuminanceOrdersBlackBelowWhite(t *testing.T) {
	black := NewRGB(0, 0, 0)
	white := NewRGB(255, 255, 255)
	if black.Luminance() >= white.Luminance() {
		t.Fatalf("Luminance(black) = %v, Luminance(white) = %v, want black < white", black.Luminance(), white.Luminance())
	}
}

func TestYuvAndYCbCrAgreeOnLuma(t *testing.T) {
	c := NewRGB(10, 200, 90)
	yYuv, _, _ := c.Yuv()
	yYCbCr, _, _ := c.YCbCr()
	if absDiffFloat(yYuv, yYCbCr) > 0.001 {
		t.Fatalf("Y'UV luma %v and Y'CbCr luma %v should agree (both BT.601)", yYuv, yYCbCr)
	}
}

func absDiffFloat(a, b float64) float64 {
	if a < b {
		return b - a
	}
	return a - b
}
