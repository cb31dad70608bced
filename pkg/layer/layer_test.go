package layer

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/dither"
	"github.com/kieranjs/hicolorgif/pkg/quantize"
)

func manyColorImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(i * 7), G: uint8(i * 13), B: uint8(i * 19), A: 255})
			i++
		}
	}
	return img
}

func TestBuildRejectsEmptyHistogram(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	h := quantize.FromColorCounts(nil)
	_, err := Build(img, h, Config{})
	if err == nil {
		t.Fatalf("expected an error for an empty histogram")
	}
}

func TestBuildSplitsManyColorsAcrossFrames(t *testing.T) {
	img := manyColorImage(20, 20) // 256 distinct colors: the channel formulas repeat every 256 pixels
	h := quantize.Build(img)

	frames, err := Build(img, h, Config{MaximumColorsPerSubImage: 100})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(frames) < 3 {
		t.Fatalf("got %d frames for 256 colors at 100/frame, want at least 3", len(frames))
	}
	for _, f := range frames {
		if len(f.Image.Palette) > 101 {
			t.Errorf("frame palette has %d entries, want <= 101 (100 content + transparent)", len(f.Image.Palette))
		}
	}
}

func TestBuildSingleFrameWhenColorsFitOneWindow(t *testing.T) {
	img := manyColorImage(4, 4) // 16 distinct colors
	h := quantize.Build(img)

	frames, err := Build(img, h, Config{MaximumColorsPerSubImage: 255})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
}

func TestBuildEmitsBackgroundFrameFirstWhenConfigured(t *testing.T) {
	img := manyColorImage(10, 10)
	h := quantize.Build(img)

	frames, err := Build(img, h, Config{
		MaximumColorsPerSubImage:     50,
		FirstSubImageInitsBackground: true,
		Quantizer:                    quantize.Wu{},
		Ditherer:                     dither.NoDither{},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(frames) < 2 {
		t.Fatalf("got %d frames, want at least 2 (background + sparse)", len(frames))
	}
	bg := frames[0]
	if bg.Image.Width != img.Bounds().Dx() || bg.Image.Height != img.Bounds().Dy() {
		t.Fatalf("background frame is %dx%d, want full canvas %dx%d", bg.Image.Width, bg.Image.Height, img.Bounds().Dx(), img.Bounds().Dy())
	}
	if !bg.UseLocalColorTable {
		t.Fatalf("background frame should use a local color table")
	}
	for i, f := range frames[1:] {
		if len(f.Image.Palette) > 51 {
			t.Errorf("sparse frame %d has %d palette entries, want <= 51 (50 content + transparent)", i, len(f.Image.Palette))
		}
	}
}

func TestBuildSparseFramesUseLocalColorTable(t *testing.T) {
	img := manyColorImage(8, 8)
	h := quantize.Build(img)

	frames, err := Build(img, h, Config{MaximumColorsPerSubImage: 10})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, f := range frames {
		if !f.UseLocalColorTable {
			t.Errorf("frame %d does not use a local color table", i)
		}
		if f.TransparentColorIndex == nil || *f.TransparentColorIndex != 0 {
			t.Errorf("frame %d transparent index = %v, want pointer to 0", i, f.TransparentColorIndex)
		}
	}
}

func TestBuildRespectsTotalFrameDurationAndExtendsLastFrame(t *testing.T) {
	img := manyColorImage(6, 6)
	h := quantize.Build(img)

	cfg := Config{
		MaximumColorsPerSubImage: 4,
		MinimumSubImageDuration:  10 * time.Millisecond,
		TotalFrameDuration:       50 * time.Millisecond,
	}
	frames, err := Build(img, h, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var total time.Duration
	for _, f := range frames {
		total += f.Duration
	}
	if total < cfg.TotalFrameDuration {
		t.Fatalf("total frame duration %v is less than requested %v", total, cfg.TotalFrameDuration)
	}
}

func TestPartitionNeverExceedsMaxPerFrame(t *testing.T) {
	colors := make([]quantize.ColorCount, 37)
	for i := range colors {
		colors[i] = quantize.ColorCount{Color: colorspace.NewRGB(uint8(i), 0, 0), Count: 1}
	}
	windows := partition(colors, 5, 10)
	total := 0
	for _, w := range windows {
		if len(w) > 10 {
			t.Errorf("window has %d colors, want <= 10", len(w))
		}
		total += len(w)
	}
	if total != len(colors) {
		t.Fatalf("partition dropped colors: got %d total, want %d", total, len(colors))
	}
}

func TestOrderColorsMostAndLeastUsedAreReverses(t *testing.T) {
	colors := []quantize.ColorCount{
		{Color: colorspace.NewRGB(1, 0, 0), Count: 5},
		{Color: colorspace.NewRGB(2, 0, 0), Count: 1},
		{Color: colorspace.NewRGB(3, 0, 0), Count: 9},
	}
	hist := quantize.FromColorCounts(colors)
	bounds := image.Rect(0, 0, 1, 1)

	most := orderColors(colors, MostUsedFirst, hist, bounds)
	least := orderColors(colors, LeastUsedFirst, hist, bounds)

	if most[0].Count != 9 || most[len(most)-1].Count != 1 {
		t.Fatalf("MostUsedFirst order = %v, want descending by count", most)
	}
	if least[0].Count != 1 || least[len(least)-1].Count != 9 {
		t.Fatalf("LeastUsedFirst order = %v, want ascending by count", least)
	}
}
