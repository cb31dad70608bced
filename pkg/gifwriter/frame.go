package gifwriter

import (
	"image"
	"sync"

	"github.com/kieranjs/hicolorgif/pkg/dither"
)

// dirtyRect finds the minimum axis-aligned rectangle containing every pixel
// of img that is not background, scanning the four extents concurrently
// since each reads the same buffer without mutation. The second return
// value is false when every pixel is background.
func dirtyRect(img *dither.IndexedImage, background uint8) (image.Rectangle, bool) {
	var (
		minY, maxY, minX, maxX     int
		foundY, foundMaxY          bool
		foundX, foundMaxX          bool
		wg                         sync.WaitGroup
	)

	wg.Add(4)
	go func() { defer wg.Done(); minY, foundY = scanMinY(img, background) }()
	go func() { defer wg.Done(); maxY, foundMaxY = scanMaxY(img, background) }()
	go func() { defer wg.Done(); minX, foundX = scanMinX(img, background) }()
	go func() { defer wg.Done(); maxX, foundMaxX = scanMaxX(img, background) }()
	wg.Wait()

	if !foundY || !foundMaxY || !foundX || !foundMaxX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func scanMinY(img *dither.IndexedImage, bg uint8) (int, bool) {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.At(x, y) != bg {
				return y, true
			}
		}
	}
	return 0, false
}

func scanMaxY(img *dither.IndexedImage, bg uint8) (int, bool) {
	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			if img.At(x, y) != bg {
				return y, true
			}
		}
	}
	return 0, false
}

func scanMinX(img *dither.IndexedImage, bg uint8) (int, bool) {
	for x := 0; x < img.Width; x++ {
		for y := 0; y < img.Height; y++ {
			if img.At(x, y) != bg {
				return x, true
			}
		}
	}
	return 0, false
}

func scanMaxX(img *dither.IndexedImage, bg uint8) (int, bool) {
	for x := img.Width - 1; x >= 0; x-- {
		for y := 0; y < img.Height; y++ {
			if img.At(x, y) != bg {
				return x, true
			}
		}
	}
	return 0, false
}

// cropPixels extracts rect's pixels from img in row-major order.
func cropPixels(img *dither.IndexedImage, rect image.Rectangle) []byte {
	out := make([]byte, 0, rect.Dx()*rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out = append(out, img.At(x, y))
		}
	}
	return out
}
