package palette

import (
	"testing"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

func TestWrapperExactHitsReturnOriginalIndex(t *testing.T) {
	p := Palette{colorspace.NewRGB(255, 0, 0), colorspace.NewRGB(0, 255, 0), colorspace.NewRGB(0, 0, 255)}
	w := NewWrapper(p, colorspace.Euclidean)

	for i, c := range p {
		if got := w.Nearest(c); got != i {
			t.Errorf("Nearest(%v) = %d, want %d", c, got, i)
		}
	}
}

func TestWrapperFindsClosestEntry(t *testing.T) {
	p := Palette{colorspace.NewRGB(0, 0, 0), colorspace.NewRGB(100, 100, 100), colorspace.NewRGB(255, 255, 255)}
	w := NewWrapper(p, colorspace.Euclidean)

	got := w.Nearest(colorspace.NewRGB(90, 90, 90))
	if got != 1 {
		t.Fatalf("Nearest(gray-90) = %d, want 1 (mid-gray entry)", got)
	}
}

func TestWrapperCachesMisses(t *testing.T) {
	p := Palette{colorspace.NewRGB(0, 0, 0), colorspace.NewRGB(255, 255, 255)}
	w := NewWrapper(p, colorspace.Euclidean)

	query := colorspace.NewRGB(10, 10, 10)
	first := w.Nearest(query)
	second := w.Nearest(query)
	if first != second {
		t.Fatalf("Nearest is not stable across calls: %d then %d", first, second)
	}
}

func TestNearestColorReturnsThePaletteEntry(t *testing.T) {
	p := Palette{colorspace.NewRGB(1, 2, 3), colorspace.NewRGB(250, 251, 252)}
	w := NewWrapper(p, colorspace.Euclidean)

	got := w.NearestColor(colorspace.NewRGB(0, 0, 0))
	if got != p[0] {
		t.Fatalf("NearestColor = %v, want %v", got, p[0])
	}
}

func TestNewWrapperDefaultsMetricWhenNil(t *testing.T) {
	p := Palette{colorspace.NewRGB(0, 0, 0), colorspace.NewRGB(255, 255, 255)}
	w := NewWrapper(p, nil)
	if w.Metric() == nil {
		t.Fatalf("expected a non-nil default metric")
	}
	if w.Metric().Name() != colorspace.CompuPhase.Name() {
		t.Fatalf("default metric = %s, want %s", w.Metric().Name(), colorspace.CompuPhase.Name())
	}
}
