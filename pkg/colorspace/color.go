// Package colorspace provides the Color value type, perceptual color-space
// conversions (Lab, YUV, YCbCr), and the distance-metric family used
// throughout quantization and dithering.
package colorspace

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit sRGB tuple with an alpha channel. Every pixel, palette
// entry, and histogram key in this module is a Color.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

var hexColorPattern = regexp.MustCompile(`^#?([A-Fa-f0-9]{6}|[A-Fa-f0-9]{8})$`)

// New creates a Color from explicit RGBA channels.
func New(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NewRGB creates a fully opaque Color.
func NewRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Transparent is the sentinel color used for index 0 of layerer sub-frames.
var Transparent = Color{}

// FromHex parses "#RRGGBB" or "#RRGGBBAA" (the "#" is optional).
func FromHex(hex string) (Color, error) {
	trimmed := strings.TrimPrefix(hex, "#")
	if !hexColorPattern.MatchString("#" + trimmed) {
		return Color{}, fmt.Errorf("colorspace: invalid hex color %q: %w", hex, ErrInvalidArgument)
	}

	r, _ := strconv.ParseUint(trimmed[0:2], 16, 8)
	g, _ := strconv.ParseUint(trimmed[2:4], 16, 8)
	b, _ := strconv.ParseUint(trimmed[4:6], 16, 8)

	c := Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
	if len(trimmed) == 8 {
		a, _ := strconv.ParseUint(trimmed[6:8], 16, 8)
		c.A = uint8(a)
	}
	return c, nil
}

// Hex renders the color as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// HexRGB renders the color as "#RRGGBB", ignoring alpha.
func (c Color) HexRGB() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ARGB packs the color into a single uint32 key suitable for histogram maps
// and duplicate detection.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Lab converts to CIE L*a*b* using the D65 reference white via the standard
// sRGB companding function (threshold 0.04045 / 0.0031308), delegated to
// go-colorful's implementation.
func (c Color) Lab() (l, a, b float64) {
	return c.colorful().Lab()
}

// FromLab builds a Color from CIE L*a*b* coordinates, clamping the resulting
// sRGB channels into range.
func FromLab(l, a, b float64, alpha uint8) Color {
	cc := colorful.Lab(l, a, b).Clamped()
	r, g, bl := cc.RGB255()
	return Color{R: r, G: g, B: bl, A: alpha}
}

// Yuv converts to BT.601 Y'UV.
func (c Color) Yuv() (y, u, v float64) {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	y = 0.299*r + 0.587*g + 0.114*b
	u = -0.14713*r - 0.28886*g + 0.436*b
	v = 0.615*r - 0.51499*g - 0.10001*b
	return
}

// YCbCr converts to BT.601 Y'CbCr with 8-bit digital offsets.
func (c Color) YCbCr() (y, cb, cr float64) {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	y = 0.299*r + 0.587*g + 0.114*b
	cb = 128 - 0.168736*r - 0.331264*g + 0.5*b
	cr = 128 + 0.5*r - 0.418688*g - 0.081312*b
	return
}

// Luminance returns the perceptual lightness (HSL "L", 0-1) used by the
// layerer's HighLuminanceFirst/LowLuminanceFirst color orderings.
func (c Color) Luminance() float64 {
	_, _, l := c.colorful().Hsl()
	return l
}
