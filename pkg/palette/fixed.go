package palette

import "github.com/kieranjs/hicolorgif/pkg/colorspace"

// Ega16 is the 16-color EGA palette.
var Ega16 = Palette{
	colorspace.NewRGB(0, 0, 0), colorspace.NewRGB(0, 0, 170), colorspace.NewRGB(0, 170, 0), colorspace.NewRGB(0, 170, 170),
	colorspace.NewRGB(170, 0, 0), colorspace.NewRGB(170, 0, 170), colorspace.NewRGB(170, 85, 0), colorspace.NewRGB(170, 170, 170),
	colorspace.NewRGB(85, 85, 85), colorspace.NewRGB(85, 85, 255), colorspace.NewRGB(85, 255, 85), colorspace.NewRGB(85, 255, 255),
	colorspace.NewRGB(255, 85, 85), colorspace.NewRGB(255, 85, 255), colorspace.NewRGB(255, 255, 85), colorspace.NewRGB(255, 255, 255),
}

var webSafeSteps = [6]uint8{0, 51, 102, 153, 204, 255}

// WebSafe is the 216-color (6³) web-safe palette.
var WebSafe = buildWebSafe()

func buildWebSafe() Palette {
	p := make(Palette, 0, 216)
	for _, r := range webSafeSteps {
		for _, g := range webSafeSteps {
			for _, b := range webSafeSteps {
				p = append(p, colorspace.NewRGB(r, g, b))
			}
		}
	}
	return p
}

var macRGSteps = [8]uint8{0, 36, 73, 109, 146, 182, 219, 255}
var macBSteps = [4]uint8{0, 85, 170, 255}

// Mac8Bit is the 256-color (8×8×4) classic Mac OS palette.
var Mac8Bit = buildMac8Bit()

func buildMac8Bit() Palette {
	p := make(Palette, 0, 256)
	for _, r := range macRGSteps {
		for _, g := range macRGSteps {
			for _, b := range macBSteps {
				p = append(p, colorspace.NewRGB(r, g, b))
			}
		}
	}
	return p
}

// Vga256 is Ega16 ∪ WebSafe ∪ 24 grays (v = 8 + 10·i), deduplicated.
var Vga256 = buildVga256()

func buildVga256() Palette {
	combined := make([]colorspace.Color, 0, 16+216+24)
	combined = append(combined, Ega16...)
	combined = append(combined, WebSafe...)
	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		combined = append(combined, colorspace.NewRGB(v, v, v))
	}
	return Dedup(combined)
}

// Quantize returns the first target entries of a fixed palette.
func Quantize(fixed Palette, target int) Palette {
	if target >= len(fixed) {
		return fixed
	}
	return fixed[:target]
}
