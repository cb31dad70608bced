// Package quantize implements a family of color quantizers: octree merging,
// median-cut, Wu's down-sampled box splitting, variance-based and variance-cut
// splitting, binary splitting via eigen-decomposition, the ADU
// competitive-learning quantizer, and the PCA/ant-refinement wrappers.
package quantize

import (
	"image"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// ColorCount pairs a color with how many source pixels carried it.
type ColorCount struct {
	Color colorspace.Color
	Count uint32
}

// Histogram maps each distinct source color to its pixel count and the
// positions it occupies, built in one pass over the source image. It is
// immutable once built.
type Histogram struct {
	order   []uint32
	entries map[uint32]*histEntry
	total   uint64
}

type histEntry struct {
	color     colorspace.Color
	count     uint32
	positions []image.Point
}

// Build constructs a Histogram from img's 32-bit ARGB interpretation.
// Transparent and opaque pixels of the same RGB both contribute a distinct
// entry since Color carries alpha.
func Build(img image.Image) *Histogram {
	bounds := img.Bounds()
	h := &Histogram{entries: make(map[uint32]*histEntry)}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			c := colorspace.New(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
			key := c.ARGB()
			e, ok := h.entries[key]
			if !ok {
				e = &histEntry{color: c}
				h.entries[key] = e
				h.order = append(h.order, key)
			}
			e.count++
			e.positions = append(e.positions, image.Point{X: x, Y: y})
			h.total++
		}
	}
	return h
}

// FromColorCounts builds a Histogram directly from distinct (color, count)
// pairs, without pixel positions, for callers quantizing a previously
// summarized color population (e.g. a wrapped quantizer operating on a
// transformed color space).
func FromColorCounts(colors []ColorCount) *Histogram {
	h := &Histogram{entries: make(map[uint32]*histEntry, len(colors))}
	for _, cc := range colors {
		key := cc.Color.ARGB()
		if e, ok := h.entries[key]; ok {
			e.count += cc.Count
			h.total += uint64(cc.Count)
			continue
		}
		h.entries[key] = &histEntry{color: cc.Color, count: cc.Count}
		h.order = append(h.order, key)
		h.total += uint64(cc.Count)
	}
	return h
}

// Len returns the number of distinct colors.
func (h *Histogram) Len() int { return len(h.order) }

// TotalCount returns Σ count, which must equal width·height.
func (h *Histogram) TotalCount() uint64 { return h.total }

// ColorCounts returns every distinct (color, count) pair in insertion order.
func (h *Histogram) ColorCounts() []ColorCount {
	out := make([]ColorCount, 0, len(h.order))
	for _, key := range h.order {
		e := h.entries[key]
		out = append(out, ColorCount{Color: e.color, Count: e.count})
	}
	return out
}

// Colors returns every distinct color in insertion order.
func (h *Histogram) Colors() []colorspace.Color {
	out := make([]colorspace.Color, 0, len(h.order))
	for _, key := range h.order {
		out = append(out, h.entries[key].color)
	}
	return out
}

// Positions returns the pixel positions carrying c, or nil if c is not
// present in the histogram.
func (h *Histogram) Positions(c colorspace.Color) []image.Point {
	e, ok := h.entries[c.ARGB()]
	if !ok {
		return nil
	}
	return e.positions
}
