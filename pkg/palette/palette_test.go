package palette

import (
	"testing"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	red := colorspace.NewRGB(255, 0, 0)
	green := colorspace.NewRGB(0, 255, 0)
	in := []colorspace.Color{red, green, red, red}
	got := Dedup(in)
	if len(got) != 2 {
		t.Fatalf("len(Dedup) = %d, want 2", len(got))
	}
	if got[0] != red || got[1] != green {
		t.Fatalf("Dedup = %v, want [red, green] preserving first-seen order", got)
	}
}

func TestPadReturnsExactlyTargetEntries(t *testing.T) {
	in := []colorspace.Color{colorspace.NewRGB(10, 20, 30)}
	out := Pad(in, 20)
	if len(out) != 20 {
		t.Fatalf("len(Pad) = %d, want 20", len(out))
	}
	seen := make(map[uint32]bool)
	for _, c := range out {
		key := c.ARGB()
		if seen[key] {
			t.Fatalf("Pad produced a duplicate entry %v", c)
		}
		seen[key] = true
	}
}

func TestPadTruncatesWhenAlreadyOverTarget(t *testing.T) {
	in := []colorspace.Color{
		colorspace.NewRGB(1, 1, 1),
		colorspace.NewRGB(2, 2, 2),
		colorspace.NewRGB(3, 3, 3),
	}
	out := Pad(in, 2)
	if len(out) != 2 {
		t.Fatalf("len(Pad) = %d, want 2", len(out))
	}
	if out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("Pad truncation changed order: got %v", out)
	}
}

func TestPadPreservesOriginalEntries(t *testing.T) {
	orig := colorspace.NewRGB(77, 88, 99)
	out := Pad([]colorspace.Color{orig}, 10)
	if out[0] != orig {
		t.Fatalf("Pad changed the original entry: got %v, want %v", out[0], orig)
	}
}

func TestFixedPalettesHaveExpectedSizes(t *testing.T) {
	if len(Ega16) != 16 {
		t.Errorf("len(Ega16) = %d, want 16", len(Ega16))
	}
	if len(WebSafe) != 216 {
		t.Errorf("len(WebSafe) = %d, want 216", len(WebSafe))
	}
	if len(Mac8Bit) != 256 {
		t.Errorf("len(Mac8Bit) = %d, want 256", len(Mac8Bit))
	}
	if len(Vga256) == 0 || len(Vga256) > 256 {
		t.Errorf("len(Vga256) = %d, want a nonzero value <= 256", len(Vga256))
	}
}

func TestQuantizeFixedTruncatesOrReturnsWhole(t *testing.T) {
	got := Quantize(Ega16, 8)
	if len(got) != 8 {
		t.Fatalf("Quantize(Ega16, 8) returned %d entries, want 8", len(got))
	}
	got = Quantize(Ega16, 100)
	if len(got) != len(Ega16) {
		t.Fatalf("Quantize(Ega16, 100) returned %d entries, want %d (whole palette)", len(got), len(Ega16))
	}
}
