// Package driver wires the color-space, quantize, dither, layer, and
// gifwriter packages together into a single end-to-end conversion: one or
// more truecolor source frames in, one byte-exact hi-color GIF out.
package driver

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/config"
	"github.com/kieranjs/hicolorgif/pkg/dither"
	"github.com/kieranjs/hicolorgif/pkg/gifwriter"
	"github.com/kieranjs/hicolorgif/pkg/layer"
	"github.com/kieranjs/hicolorgif/pkg/quantize"
)

// Input is one truecolor source frame and the wall-clock duration it should
// occupy in the output animation. A single-image conversion supplies one
// Input; a video-frame conversion supplies one per sampled frame.
type Input struct {
	Image    image.Image
	Duration time.Duration
}

// Driver runs conversions under a fixed Config and logger.
type Driver struct {
	cfg    config.Config
	logger core.Logger

	quantizer quantize.Quantizer
	ditherer  dither.Ditherer
	metric    colorspace.Metric
	ordering  layer.ColorOrdering
	mode      gifwriter.Mode
}

// New resolves cfg's string fields into concrete collaborators and returns
// a Driver ready to run Convert. It fails fast on any name cfg.Validate
// didn't already catch.
func New(cfg config.Config, logger core.Logger) (*Driver, error) {
	q, err := quantizerFor(cfg.Quantizer)
	if err != nil {
		return nil, err
	}
	d, err := dithererFor(cfg.Ditherer)
	if err != nil {
		return nil, err
	}
	m, err := metricFor(cfg.ColorDistanceMetric)
	if err != nil {
		return nil, err
	}
	o, err := orderingFor(cfg.ColorOrdering)
	if err != nil {
		return nil, err
	}

	mode := gifwriter.Compressed
	if cfg.GifMode == "degenerate" {
		mode = gifwriter.Degenerate
	}

	if logger == nil {
		logger = mtlog.New()
	}

	return &Driver{
		cfg:       cfg,
		logger:    logger,
		quantizer: q,
		ditherer:  d,
		metric:    m,
		ordering:  o,
		mode:      mode,
	}, nil
}

// layerConfig builds the per-input layer.Config this Driver's resolved
// collaborators imply.
func (drv *Driver) layerConfig() layer.Config {
	return layer.Config{
		MaximumColorsPerSubImage:     drv.cfg.MaximumColorsPerSubImage,
		MinimumSubImageDuration:      drv.cfg.MinimumSubImageDuration,
		TotalFrameDuration:           drv.cfg.TotalFrameDuration,
		ColorOrdering:                drv.ordering,
		FirstSubImageInitsBackground: drv.cfg.FirstSubImageInitsBackground,
		UseBackFilling:               drv.cfg.UseBackFilling,
		Quantizer:                    drv.quantizer,
		Ditherer:                     drv.ditherer,
		ColorDistanceMetric:          drv.metric,
	}
}

// Convert lays out every input's sub-frames in order and writes them as a
// single animated GIF to finalPath, using the start-WIP/commit protocol: an
// error or a cancelled ctx leaves finalPath untouched.
func (drv *Driver) Convert(ctx context.Context, inputs []Input, finalPath string) (err error) {
	if len(inputs) == 0 {
		return fmt.Errorf("driver: no input frames: %w", colorspace.ErrInvalidArgument)
	}

	requestID := uuid.New().String()[:8]
	ctx = mtlog.PushProperty(ctx, "RequestID", requestID)
	opLogger := drv.logger.WithContext(ctx)

	start := time.Now()
	opLogger.InfoContext(ctx, "Conversion started with {FrameCount} input frame(s)", len(inputs))

	wip, err := CreateWorkInProgressFile(finalPath)
	if err != nil {
		opLogger.ErrorContext(ctx, "Failed to open WIP file: {Error}", err)
		return err
	}
	defer func() {
		if err != nil {
			if abortErr := wip.Abort(); abortErr != nil {
				opLogger.ErrorContext(ctx, "Failed to clean up WIP file after error: {Error}", abortErr)
			}
		}
	}()

	bounds := inputs[0].Image.Bounds()
	var loopCount *uint16
	if drv.cfg.LoopForever {
		zero := uint16(0)
		loopCount = &zero
	}

	gw, err := gifwriter.NewWriter(wip, bounds.Dx(), bounds.Dy(), nil, loopCount, drv.mode)
	if err != nil {
		opLogger.ErrorContext(ctx, "Failed to create GIF writer: {Error}", err)
		return err
	}
	if err = gw.WriteHeader(); err != nil {
		opLogger.ErrorContext(ctx, "Failed to write GIF header: {Error}", err)
		return err
	}

	lcfg := drv.layerConfig()
	frameCount := 0

	for i, in := range inputs {
		if err = ctx.Err(); err != nil {
			opLogger.WarnContext(ctx, "Conversion cancelled before input {Index}", i)
			return err
		}

		hist := quantize.Build(in.Image)
		icfg := lcfg
		if in.Duration > 0 {
			icfg.TotalFrameDuration = in.Duration
		}
		frames, ferr := layer.Build(in.Image, hist, icfg)
		if ferr != nil {
			err = fmt.Errorf("driver: layering input %d: %w", i, ferr)
			opLogger.ErrorContext(ctx, "Failed to layer input {Index}: {Error}", i, ferr)
			return err
		}

		for _, f := range frames {
			if err = ctx.Err(); err != nil {
				opLogger.WarnContext(ctx, "Conversion cancelled mid-input {Index}", i)
				return err
			}
			if err = gw.WriteFrame(f); err != nil {
				opLogger.ErrorContext(ctx, "Failed to write frame: {Error}", err)
				return err
			}
			frameCount++
		}
	}

	if err = gw.Close(); err != nil {
		opLogger.ErrorContext(ctx, "Failed to close GIF writer: {Error}", err)
		return err
	}
	if err = wip.Commit(); err != nil {
		opLogger.ErrorContext(ctx, "Failed to commit output file: {Error}", err)
		return err
	}

	opLogger.InfoContext(ctx, "Conversion completed in {Duration}, wrote {SubFrameCount} sub-frames", time.Since(start), frameCount)
	return nil
}
