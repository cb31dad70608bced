package palette

import (
	"sync"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// Wrapper wraps up to 256 palette entries and answers nearest-color queries.
// The constructor pre-fills the cache with each original palette color
// mapping to its own index (an exact hit); on miss it scans
// linearly under the configured metric, remembers the winner, and early-exits
// once it finds a color within distance 1. The cache only grows and is safe
// for concurrent lookups from multiple goroutines.
type Wrapper struct {
	entries Palette
	metric  colorspace.Metric

	mu    sync.Mutex
	cache map[uint32]int
}

// NewWrapper builds a Wrapper over entries using metric for nearest-color
// search. A nil metric defaults to colorspace.CompuPhase.
func NewWrapper(entries Palette, metric colorspace.Metric) *Wrapper {
	if metric == nil {
		metric = colorspace.CompuPhase
	}
	w := &Wrapper{
		entries: entries,
		metric:  metric,
		cache:   make(map[uint32]int, len(entries)),
	}
	for i, c := range entries {
		key := c.ARGB()
		if _, ok := w.cache[key]; !ok {
			w.cache[key] = i
		}
	}
	return w
}

// Palette returns the wrapped palette.
func (w *Wrapper) Palette() Palette { return w.entries }

// Metric returns the distance metric used for nearest-color search.
func (w *Wrapper) Metric() colorspace.Metric { return w.metric }

// Nearest returns the index of the palette entry closest to c under the
// configured metric, caching the result keyed by c's ARGB value.
func (w *Wrapper) Nearest(c colorspace.Color) int {
	key := c.ARGB()

	w.mu.Lock()
	if idx, ok := w.cache[key]; ok {
		w.mu.Unlock()
		return idx
	}
	w.mu.Unlock()

	best := 0
	bestDist := -1
	for i, p := range w.entries {
		d := w.metric.Distance(c, p)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = i
			if d <= 1 {
				break
			}
		}
	}

	w.mu.Lock()
	if idx, ok := w.cache[key]; ok {
		w.mu.Unlock()
		return idx
	}
	w.cache[key] = best
	w.mu.Unlock()
	return best
}

// NearestColor is a convenience wrapper returning the matched color itself.
func (w *Wrapper) NearestColor(c colorspace.Color) colorspace.Color {
	return w.entries[w.Nearest(c)]
}
