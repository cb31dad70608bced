package dither

import (
	"image"
	"sort"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// KnollDitherer approximates each pixel's color by selecting, per pixel,
// among its few nearest palette candidates, weighted inversely by distance
// and chosen deterministically from an 8×8 Bayer threshold so that over a
// small neighborhood the candidates' proportions reconstruct the original
// color. Unlike error diffusion, no state carries between pixels.
type KnollDitherer struct {
	// CandidateCount bounds how many nearest palette entries compete for
	// each pixel. Zero selects 4.
	CandidateCount int
}

func (KnollDitherer) Name() string { return "Knoll" }

type knollCandidate struct {
	index int
	dist  int
}

func (d KnollDitherer) Dither(img image.Image, pal *palette.Wrapper) *IndexedImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewIndexedImage(w, h, pal.Palette())

	count := d.CandidateCount
	if count <= 0 {
		count = 4
	}
	entries := pal.Palette()
	if count > len(entries) {
		count = len(entries)
	}
	metric := pal.Metric()
	if metric == nil {
		metric = colorspace.CompuPhase
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := readColor(img, bounds, x, y)
			if src.A == 0 {
				out.Set(x, y, 0)
				continue
			}

			candidates := make([]knollCandidate, len(entries))
			for i, c := range entries {
				candidates[i] = knollCandidate{index: i, dist: metric.Distance(src, c)}
			}
			sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
			candidates = candidates[:count]

			weights := make([]float64, count)
			var total float64
			for i, c := range candidates {
				weights[i] = 1.0 / float64(c.dist+1)
				total += weights[i]
			}

			threshold := (float64(bayer8[y%8][x%8]) + 0.5) / 64 * total

			chosen := candidates[len(candidates)-1].index
			var cum float64
			for i, wgt := range weights {
				cum += wgt
				if threshold <= cum {
					chosen = candidates[i].index
					break
				}
			}
			out.Set(x, y, uint8(chosen))
		}
	}
	return out
}
