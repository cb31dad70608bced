package quantize

import (
	"fmt"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// Quantizer reduces an arbitrarily large color set to a bounded palette.
// Reduce(target, h) always returns a palette of exactly target entries (once
// target is in [2, 256]); see Base for the shared normalization contract.
type Quantizer interface {
	Reduce(target int, h *Histogram) (palette.Palette, error)
	Name() string
}

// Algorithm is the reducible core of a quantizer: given a deduplicated
// histogram with more distinct colors than target, produce a palette.
// Base wraps an Algorithm with the normalization rules common to every
// quantizer.
type Algorithm func(target int, colors []ColorCount) []colorspace.Color

// Base applies the normalization rules shared by every quantizer around
// algo:
//
//  1. target == 0 returns an empty palette.
//  2. target == 1 returns the first color of the input, or transparent if
//     the input is empty.
//  3. The histogram is deduplicated by ARGB before anything else runs.
//  4. If the number of distinct colors is <= target, they are used verbatim
//     (algo is not invoked).
//  5. If algo's output has fewer than target distinct colors, it is padded
//     per palette.Pad.
func Base(target int, h *Histogram, algo Algorithm) (palette.Palette, error) {
	if target < 0 {
		return nil, fmt.Errorf("quantize: target must be >= 0, got %d: %w", target, colorspace.ErrInvalidArgument)
	}
	if target > 256 {
		return nil, fmt.Errorf("quantize: target must be <= 256, got %d: %w", target, colorspace.ErrInvalidArgument)
	}
	if h == nil {
		return nil, fmt.Errorf("quantize: nil histogram: %w", colorspace.ErrInvalidArgument)
	}

	if target == 0 {
		return palette.Palette{}, nil
	}

	counts := h.ColorCounts()

	if target == 1 {
		if len(counts) == 0 {
			return palette.Palette{colorspace.Transparent}, nil
		}
		return palette.Palette{counts[0].Color}, nil
	}

	dedup := dedupCounts(counts)

	if len(dedup) <= target {
		colors := make([]colorspace.Color, len(dedup))
		for i, cc := range dedup {
			colors[i] = cc.Color
		}
		return palette.Palette(palette.Pad(colors, target)), nil
	}

	result := algo(target, dedup)
	result = palette.Dedup(result)
	return palette.Palette(palette.Pad(result, target)), nil
}

func dedupCounts(counts []ColorCount) []ColorCount {
	seen := make(map[uint32]int, len(counts))
	out := make([]ColorCount, 0, len(counts))
	for _, cc := range counts {
		key := cc.Color.ARGB()
		if idx, ok := seen[key]; ok {
			out[idx].Count += cc.Count
			continue
		}
		seen[key] = len(out)
		out = append(out, cc)
	}
	return out
}
