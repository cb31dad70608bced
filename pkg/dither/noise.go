package dither

import (
	"image"
	"math/rand"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// NoiseSpectrum selects the frequency character of NoiseDitherer's threshold
// field.
type NoiseSpectrum int

const (
	// WhiteNoise is uncorrelated per-pixel noise.
	WhiteNoise NoiseSpectrum = iota
	// BlueNoise favors high frequencies: noise minus its local average.
	BlueNoise
	// BrownNoise favors low frequencies: a per-row running integral of white
	// noise, producing long, smooth excursions.
	BrownNoise
)

// noiseSeed is fixed so repeated runs over the same image produce bit-
// identical output.
const noiseSeed = 42

// NoiseDitherer perturbs each pixel by a noise field of the chosen spectrum
// before nearest-color matching, in place of a structured error-diffusion or
// threshold pattern.
type NoiseDitherer struct {
	Spectrum NoiseSpectrum
	// Amplitude scales the noise field; zero selects 32.
	Amplitude float64
}

func (d NoiseDitherer) Name() string {
	switch d.Spectrum {
	case BlueNoise:
		return "Noise/Blue"
	case BrownNoise:
		return "Noise/Brown"
	default:
		return "Noise/White"
	}
}

func (d NoiseDitherer) Dither(img image.Image, pal *palette.Wrapper) *IndexedImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewIndexedImage(w, h, pal.Palette())

	amplitude := d.Amplitude
	if amplitude == 0 {
		amplitude = 32
	}

	field := d.buildField(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := readColor(img, bounds, x, y)
			if src.A == 0 {
				out.Set(x, y, 0)
				continue
			}

			bias := field[y*w+x] * amplitude
			adjusted := colorspace.New(
				clamp255(float64(src.R)+bias),
				clamp255(float64(src.G)+bias),
				clamp255(float64(src.B)+bias),
				src.A,
			)
			out.Set(x, y, uint8(pal.Nearest(adjusted)))
		}
	}
	return out
}

// buildField returns a w×h field of bias values roughly in [-1, 1],
// deterministic for a given size and spectrum.
func (d NoiseDitherer) buildField(w, h int) []float64 {
	rng := rand.New(rand.NewSource(noiseSeed))

	white := make([]float64, w*h)
	for i := range white {
		white[i] = rng.Float64()*2 - 1
	}

	switch d.Spectrum {
	case BlueNoise:
		return highPass(white, w, h)
	case BrownNoise:
		return integrate(white, w, h)
	default:
		return white
	}
}

// highPass subtracts each cell's 3×3 neighborhood average, emphasizing
// high-frequency content.
func highPass(field []float64, w, h int) []float64 {
	out := make([]float64, len(field))
	var lo, hi float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			var n int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					sum += field[ny*w+nx]
					n++
				}
			}
			v := field[y*w+x] - sum/float64(n)
			out[y*w+x] = v
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return normalize(out, lo, hi)
}

// integrate runs a per-row cumulative sum of field, producing long,
// low-frequency excursions.
func integrate(field []float64, w, h int) []float64 {
	out := make([]float64, len(field))
	var lo, hi float64
	for y := 0; y < h; y++ {
		var running float64
		for x := 0; x < w; x++ {
			running += field[y*w+x]
			out[y*w+x] = running
			if running < lo {
				lo = running
			}
			if running > hi {
				hi = running
			}
		}
	}
	return normalize(out, lo, hi)
}

func normalize(field []float64, lo, hi float64) []float64 {
	if hi == lo {
		return field
	}
	out := make([]float64, len(field))
	for i, v := range field {
		out[i] = ((v-lo)/(hi-lo))*2 - 1
	}
	return out
}
