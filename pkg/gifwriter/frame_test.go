package gifwriter

import (
	"image"
	"testing"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/dither"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

func makeIndexed(w, h int, set map[image.Point]uint8) *dither.IndexedImage {
	pal := palette.Palette{colorspace.Transparent, colorspace.NewRGB(255, 0, 0)}
	img := dither.NewIndexedImage(w, h, pal)
	for p, idx := range set {
		img.Set(p.X, p.Y, idx)
	}
	return img
}

func TestDirtyRectFindsTightBoundingBox(t *testing.T) {
	img := makeIndexed(20, 20, map[image.Point]uint8{
		{X: 5, Y: 3}:  1,
		{X: 8, Y: 10}: 1,
		{X: 5, Y: 10}: 1,
	})

	rect, ok := dirtyRect(img, 0)
	if !ok {
		t.Fatalf("expected a dirty rect")
	}
	want := image.Rect(5, 3, 9, 11)
	if rect != want {
		t.Fatalf("rect = %v, want %v", rect, want)
	}
}

func TestDirtyRectAllBackground(t *testing.T) {
	img := makeIndexed(10, 10, nil)
	_, ok := dirtyRect(img, 0)
	if ok {
		t.Fatalf("expected no dirty rect for an all-background frame")
	}
}

func TestDirtyRectSinglePixel(t *testing.T) {
	img := makeIndexed(10, 10, map[image.Point]uint8{{X: 4, Y: 4}: 1})
	rect, ok := dirtyRect(img, 0)
	if !ok {
		t.Fatalf("expected a dirty rect")
	}
	if rect != image.Rect(4, 4, 5, 5) {
		t.Fatalf("rect = %v, want a single-pixel rect at (4,4)", rect)
	}
}

func TestCropPixelsRowMajor(t *testing.T) {
	img := makeIndexed(4, 4, map[image.Point]uint8{
		{X: 1, Y: 1}: 1,
		{X: 2, Y: 1}: 1,
	})
	got := cropPixels(img, image.Rect(1, 1, 3, 2))
	want := []byte{1, 1}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}
