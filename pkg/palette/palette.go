// Package palette defines the bounded-size Palette type, the nearest-color
// search wrapper used by quantizers and ditherers, and a set of fixed
// reference palettes.
package palette

import (
	"math"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// Palette is an ordered sequence of up to 256 colors. When produced by the
// hi-color layerer, index 0 is reserved for transparent and entries [1, N]
// hold content colors.
type Palette []colorspace.Color

// Dedup removes duplicate ARGB entries, keeping the first occurrence of each
// and preserving relative order.
func Dedup(colors []colorspace.Color) []colorspace.Color {
	seen := make(map[uint32]struct{}, len(colors))
	out := make([]colorspace.Color, 0, len(colors))
	for _, c := range colors {
		key := c.ARGB()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// hueWheel holds the seven base hues used by the padding fallback, sampled
// at full saturation and value.
var hueWheel = [7]colorspace.Color{
	colorspace.NewRGB(255, 0, 0),   // red
	colorspace.NewRGB(255, 128, 0), // orange
	colorspace.NewRGB(255, 255, 0), // yellow
	colorspace.NewRGB(0, 255, 0),   // green
	colorspace.NewRGB(0, 0, 255),   // blue
	colorspace.NewRGB(75, 0, 130),  // indigo
	colorspace.NewRGB(148, 0, 211), // violet
}

var shadeFactors = [5]float64{1.0, 0.75, 0.5, 0.25, 0.1}

func shade(c colorspace.Color, factor float64) colorspace.Color {
	return colorspace.NewRGB(
		uint8(math.Round(float64(c.R)*factor)),
		uint8(math.Round(float64(c.G)*factor)),
		uint8(math.Round(float64(c.B)*factor)),
	)
}

// Pad extends colors (assumed already deduplicated) up to target entries
// using a fixed fallback sequence: black, white, transparent
// (skipping any already present), the 7-hue wheel crossed with 5 shade
// factors, and finally a pseudorandom generator. It panics with
// colorspace.ErrInternalInvariant if the candidate sequence is exhausted
// before reaching target, since that indicates a bug in the fallback
// sequence rather than a recoverable condition.
func Pad(colors []colorspace.Color, target int) []colorspace.Color {
	if len(colors) >= target {
		return colors[:target]
	}

	present := make(map[uint32]struct{}, target)
	for _, c := range colors {
		present[c.ARGB()] = struct{}{}
	}

	out := make([]colorspace.Color, len(colors), target)
	copy(out, colors)

	add := func(c colorspace.Color) bool {
		if len(out) >= target {
			return true
		}
		if _, ok := present[c.ARGB()]; ok {
			return false
		}
		present[c.ARGB()] = struct{}{}
		out = append(out, c)
		return len(out) >= target
	}

	candidates := make([]colorspace.Color, 0, 3+len(hueWheel)*len(shadeFactors))
	candidates = append(candidates,
		colorspace.NewRGB(0, 0, 0),
		colorspace.NewRGB(255, 255, 255),
		colorspace.Transparent,
	)
	for _, hue := range hueWheel {
		for _, factor := range shadeFactors {
			candidates = append(candidates, shade(hue, factor))
		}
	}

	for _, c := range candidates {
		if add(c) {
			return out
		}
	}

	for i := 0; len(out) < target; i++ {
		c := colorspace.NewRGB(uint8((37*i)%256), uint8((73*i)%256), uint8((109*i)%256))
		if add(c) {
			return out
		}
		if i > target*4+256 {
			// The pseudorandom sequence cycles with period 256; this bound
			// is generous enough that reaching it means target exceeds 256
			// distinct colors, which callers must never request.
			panic(colorspace.ErrInternalInvariant)
		}
	}
	return out
}
