// Package layer implements the hi-color layerer: it partitions a truecolor
// image's distinct colors into a sequence of sparse, 256-color-limited
// sub-frames that, played back with DoNotDispose compositing, simulate a
// color depth the GIF format cannot represent in a single frame.
package layer

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/dither"
	"github.com/kieranjs/hicolorgif/pkg/palette"
	"github.com/kieranjs/hicolorgif/pkg/quantize"
)

// Disposal mirrors the GIF disposal method of a frame.
type Disposal int

const (
	DisposalUnspecified Disposal = iota
	DisposalDoNotDispose
	DisposalRestoreToBackground
	DisposalRestoreToPrevious
)

// Frame is one sub-image of the layered sequence: an 8-bit indexed bitmap
// with its own local palette, positioned at Offset within the logical
// screen.
type Frame struct {
	Offset                image.Point
	Image                 *dither.IndexedImage
	Duration              time.Duration
	Disposal              Disposal
	TransparentColorIndex *uint8
	UseLocalColorTable    bool
}

// ColorOrdering selects how distinct colors are assigned to sub-frames.
type ColorOrdering int

const (
	MostUsedFirst ColorOrdering = iota
	LeastUsedFirst
	HighLuminanceFirst
	LowLuminanceFirst
	FromCenter
	Random
)

// randomSeed keeps the Random ordering reproducible across runs.
const randomSeed = 1

// Config controls the layerer's behavior.
type Config struct {
	// MaximumColorsPerSubImage caps how many content colors one sub-frame
	// carries (plus the reserved transparent index 0). Zero selects 255.
	MaximumColorsPerSubImage int
	// MinimumSubImageDuration is every frame's base duration. Zero selects
	// 10ms.
	MinimumSubImageDuration time.Duration
	// SubImageDurationTimeSlice is the quantum the final frame's extended
	// duration is rounded down to. Zero selects MinimumSubImageDuration.
	SubImageDurationTimeSlice time.Duration
	// TotalFrameDuration, if positive, bounds the number of sub-frames, the
	// background frame included, to floor(TotalFrameDuration /
	// MinimumSubImageDuration), with at least one sparse frame always
	// emitted, and stretches the final frame to fill any remainder. Colors
	// left over once the bounded windows are full reach the output only
	// through back-filling or the background frame.
	TotalFrameDuration time.Duration
	ColorOrdering      ColorOrdering
	// FirstSubImageInitsBackground emits a dithered, quantized full-image
	// frame first; every later frame then layers sparse content over it.
	FirstSubImageInitsBackground bool
	// UseBackFilling fills every sparse frame's unscheduled positions with
	// their nearest in-frame palette match. The last sparse frame always
	// back-fills when no background frame was emitted, regardless of this
	// flag, since otherwise those pixels would never be painted.
	UseBackFilling bool
	// Quantizer is used only to build the background frame's palette; a nil
	// value falls back to sorting colors by count and truncating.
	Quantizer quantize.Quantizer
	// Ditherer renders the background frame; a nil value selects
	// dither.NoDither.
	Ditherer dither.Ditherer
	// ColorDistanceMetric feeds the ditherer and the nearest-color search in
	// back-filling. A nil value uses each collaborator's own default.
	ColorDistanceMetric colorspace.Metric
}

func (c Config) normalize() Config {
	if c.MaximumColorsPerSubImage <= 0 {
		c.MaximumColorsPerSubImage = 255
	}
	if c.MinimumSubImageDuration <= 0 {
		c.MinimumSubImageDuration = 10 * time.Millisecond
	}
	if c.SubImageDurationTimeSlice <= 0 {
		c.SubImageDurationTimeSlice = c.MinimumSubImageDuration
	}
	if c.Ditherer == nil {
		c.Ditherer = dither.NoDither{}
	}
	return c
}

// Build runs the hi-color layering algorithm over img's histogram,
// producing an ordered sequence of Frames ready for the GIF writer.
func Build(img image.Image, hist *quantize.Histogram, cfg Config) ([]Frame, error) {
	cfg = cfg.normalize()

	colors := hist.ColorCounts()
	if len(colors) == 0 {
		return nil, fmt.Errorf("layer: empty histogram: %w", colorspace.ErrMalformedInput)
	}

	neededFrames := ceilDiv(len(colors), cfg.MaximumColorsPerSubImage)
	if neededFrames < 1 {
		neededFrames = 1
	}
	if cfg.TotalFrameDuration > 0 {
		limit := int(cfg.TotalFrameDuration / cfg.MinimumSubImageDuration)
		if cfg.FirstSubImageInitsBackground {
			limit--
		}
		if limit < 1 {
			limit = 1
		}
		if neededFrames > limit {
			neededFrames = limit
		}
	}

	var frames []Frame
	scheduled := make(map[uint32]bool, len(colors))

	if cfg.FirstSubImageInitsBackground {
		bg, err := buildBackgroundFrame(img, colors, cfg)
		if err != nil {
			return nil, err
		}
		bg.Duration = cfg.MinimumSubImageDuration
		bg.Disposal = DisposalDoNotDispose
		frames = append(frames, bg)
		for _, cc := range colors {
			scheduled[cc.Color.ARGB()] = true
		}
	}

	ordered := orderColors(colors, cfg.ColorOrdering, hist, img.Bounds())

	windows := partition(ordered, neededFrames, cfg.MaximumColorsPerSubImage)

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	for i, window := range windows {
		isLast := i == len(windows)-1
		frame := buildSparseFrame(hist, window, w, h)

		backfill := cfg.UseBackFilling || (isLast && !cfg.FirstSubImageInitsBackground)
		if backfill {
			remaining := unscheduledColors(colors, scheduled)
			applyBackFill(frame, hist, remaining, cfg.ColorDistanceMetric)
		}
		for _, cc := range window {
			scheduled[cc.Color.ARGB()] = true
		}

		frame.Duration = cfg.MinimumSubImageDuration
		frame.Disposal = DisposalDoNotDispose
		frames = append(frames, frame)
	}

	if cfg.TotalFrameDuration > 0 && len(frames) > 0 {
		extendLastFrame(frames, cfg)
	}

	return frames, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

func buildBackgroundFrame(img image.Image, colors []quantize.ColorCount, cfg Config) (Frame, error) {
	target := cfg.MaximumColorsPerSubImage
	var pal palette.Palette

	if cfg.Quantizer != nil {
		h := quantize.FromColorCounts(colors)
		reduced, err := cfg.Quantizer.Reduce(target, h)
		if err != nil {
			return Frame{}, err
		}
		pal = reduced
	} else {
		sorted := make([]quantize.ColorCount, len(colors))
		copy(sorted, colors)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
		if len(sorted) > target {
			sorted = sorted[:target]
		}
		pal = make(palette.Palette, len(sorted))
		for i, cc := range sorted {
			pal[i] = cc.Color
		}
	}

	fullPalette := append(palette.Palette{colorspace.Transparent}, pal...)
	wrapper := palette.NewWrapper(fullPalette, cfg.ColorDistanceMetric)
	indexed := cfg.Ditherer.Dither(img, wrapper)

	return Frame{
		Offset:             image.Point{},
		Image:              indexed,
		UseLocalColorTable: true,
	}, nil
}

func buildSparseFrame(hist *quantize.Histogram, window []quantize.ColorCount, w, h int) Frame {
	pal := make(palette.Palette, len(window)+1)
	pal[0] = colorspace.Transparent
	for i, cc := range window {
		pal[i+1] = cc.Color
	}

	indexed := dither.NewIndexedImage(w, h, pal)

	var wg sync.WaitGroup
	for i, cc := range window {
		wg.Add(1)
		go func(idx uint8, c colorspace.Color) {
			defer wg.Done()
			for _, p := range hist.Positions(c) {
				indexed.Set(p.X, p.Y, idx)
			}
		}(uint8(i+1), cc.Color)
	}
	wg.Wait()

	zero := uint8(0)
	return Frame{
		Image:                 indexed,
		TransparentColorIndex: &zero,
		UseLocalColorTable:    true,
	}
}

func unscheduledColors(colors []quantize.ColorCount, scheduled map[uint32]bool) []quantize.ColorCount {
	out := make([]quantize.ColorCount, 0, len(colors))
	for _, cc := range colors {
		if !scheduled[cc.Color.ARGB()] {
			out = append(out, cc)
		}
	}
	return out
}

func applyBackFill(frame Frame, hist *quantize.Histogram, remaining []quantize.ColorCount, metric colorspace.Metric) {
	if len(remaining) == 0 {
		return
	}
	wrapper := palette.NewWrapper(frame.Image.Palette, metric)

	var wg sync.WaitGroup
	for _, cc := range remaining {
		wg.Add(1)
		go func(c colorspace.Color) {
			defer wg.Done()
			idx := uint8(wrapper.Nearest(c))
			for _, p := range hist.Positions(c) {
				if frame.Image.At(p.X, p.Y) == 0 {
					frame.Image.Set(p.X, p.Y, idx)
				}
			}
		}(cc.Color)
	}
	wg.Wait()
}

func extendLastFrame(frames []Frame, cfg Config) {
	var total time.Duration
	for _, f := range frames {
		total += f.Duration
	}
	remaining := cfg.TotalFrameDuration - total
	if remaining <= 0 {
		return
	}
	slice := cfg.SubImageDurationTimeSlice
	extra := (remaining / slice) * slice
	frames[len(frames)-1].Duration += extra
}

func orderColors(colors []quantize.ColorCount, ordering ColorOrdering, hist *quantize.Histogram, bounds image.Rectangle) []quantize.ColorCount {
	out := make([]quantize.ColorCount, len(colors))
	copy(out, colors)

	switch ordering {
	case MostUsedFirst:
		sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	case LeastUsedFirst:
		sort.Slice(out, func(i, j int) bool { return out[i].Count < out[j].Count })
	case HighLuminanceFirst:
		sort.Slice(out, func(i, j int) bool { return out[i].Color.Luminance() > out[j].Color.Luminance() })
	case LowLuminanceFirst:
		sort.Slice(out, func(i, j int) bool { return out[i].Color.Luminance() < out[j].Color.Luminance() })
	case Random:
		rng := rand.New(rand.NewSource(randomSeed))
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	case FromCenter:
		cx := float64(bounds.Min.X+bounds.Max.X) / 2
		cy := float64(bounds.Min.Y+bounds.Max.Y) / 2
		dist := make(map[uint32]float64, len(out))
		for _, cc := range out {
			best := math.MaxFloat64
			for _, p := range hist.Positions(cc.Color) {
				dx := float64(p.X) - cx
				dy := float64(p.Y) - cy
				if d := dx*dx + dy*dy; d < best {
					best = d
				}
			}
			dist[cc.Color.ARGB()] = best
		}
		sort.Slice(out, func(i, j int) bool { return dist[out[i].Color.ARGB()] < dist[out[j].Color.ARGB()] })
	}
	return out
}

func partition(colors []quantize.ColorCount, frameCount, maxPerFrame int) [][]quantize.ColorCount {
	windows := make([][]quantize.ColorCount, 0, frameCount)
	for i := 0; i < len(colors); i += maxPerFrame {
		end := i + maxPerFrame
		if end > len(colors) {
			end = len(colors)
		}
		windows = append(windows, colors[i:end])
		if len(windows) == frameCount {
			break
		}
	}
	return windows
}
