// Package imageio loads truecolor source bitmaps into the random-access
// image.Image contract the rest of the toolkit builds on, with optional
// downsampling for oversized inputs.
package imageio

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// Load opens path and decodes it as an image. PNG is tried first since it's
// the expected format for truecolor sources; on failure the decode falls
// back to the registered format sniffers (JPEG, GIF) via image.Decode.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, joinIO(err))
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return nil, fmt.Errorf("imageio: seek %s: %w", path, joinIO(seekErr))
		}
		img, _, err = image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
		}
	}
	return img, nil
}

// DownsampleToFit returns img unchanged if it already fits within maxW x
// maxH, otherwise returns a bilinear-resized copy that does, preserving
// aspect ratio.
func DownsampleToFit(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := float64(maxW) / float64(w)
	if hScale := float64(maxH) / float64(h); hScale < scale {
		scale = hScale
	}
	newW := uint(float64(w) * scale)
	newH := uint(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return resize.Resize(newW, newH, img, resize.Bilinear)
}

func joinIO(err error) error {
	return fmt.Errorf("%v: %w", err, colorspace.ErrIOFailure)
}
