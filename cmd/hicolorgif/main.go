package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"

	"github.com/kieranjs/hicolorgif/pkg/config"
	"github.com/kieranjs/hicolorgif/pkg/driver"
	"github.com/kieranjs/hicolorgif/pkg/imageio"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
		inputPath   = flag.String("in", "", "Source image path (PNG/JPEG)")
		outputPath  = flag.String("out", "", "Destination GIF path")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("hicolorgif version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nPlease create a config file at ~/.config/hicolorgif/config.json:\n")
		fmt.Fprintf(os.Stderr, "{\n")
		fmt.Fprintf(os.Stderr, "  \"quantizer\": \"wu\",\n")
		fmt.Fprintf(os.Stderr, "  \"ditherer\": \"floyd-steinberg\",\n")
		fmt.Fprintf(os.Stderr, "  \"gif_mode\": \"compressed\",\n")
		fmt.Fprintf(os.Stderr, "  \"log_level\": \"info\"\n")
		fmt.Fprintf(os.Stderr, "}\n")
		os.Exit(1)
	}

	if *debugMode {
		cfg.LogLevel = "debug"
	}

	logger := createLogger(cfg.LogLevel)
	logger.Information("Starting hicolorgif version {Version} (built {BuildTime})", Version, BuildTime)
	logger.Debug("Configuration loaded: {@Config}", cfg)

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: hicolorgif -in <source.png> -out <dest.gif>")
		os.Exit(1)
	}

	drv, err := driver.New(*cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build driver: {Error}", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Information("Received shutdown signal")
		cancel()
	}()

	if err := run(ctx, drv, logger, *inputPath, *outputPath); err != nil {
		logger.Error("Conversion failed: {Error}", err)
		os.Exit(1)
	}

	logger.Information("Conversion complete: {OutputPath}", *outputPath)
}

// run loads the source image and hands it to drv as a single-frame
// conversion. Multi-frame (video) inputs are assembled by an external
// collaborator that calls driver.Driver.Convert directly with its own
// []driver.Input.
func run(ctx context.Context, drv *driver.Driver, logger core.Logger, inputPath, outputPath string) error {
	img, err := imageio.Load(inputPath)
	if err != nil {
		return fmt.Errorf("hicolorgif: load %s: %w", inputPath, err)
	}
	logger.Information("Loaded {Width}x{Height} source image from {Path}",
		img.Bounds().Dx(), img.Bounds().Dy(), inputPath)

	inputs := []driver.Input{{Image: img, Duration: 0}}
	return drv.Convert(ctx, inputs, outputPath)
}

// createLogger creates a configured logger instance.
func createLogger(logLevel string) core.Logger {
	sink := sinks.NewConsoleSink()

	var opts []mtlog.Option
	opts = append(opts, mtlog.WithSink(sink))

	switch logLevel {
	case "debug":
		opts = append(opts, mtlog.WithMinimumLevel(core.DebugLevel))
	case "info":
		opts = append(opts, mtlog.WithMinimumLevel(core.InformationLevel))
	case "warn":
		opts = append(opts, mtlog.WithMinimumLevel(core.WarningLevel))
	case "error":
		opts = append(opts, mtlog.WithMinimumLevel(core.ErrorLevel))
	default:
		opts = append(opts, mtlog.WithMinimumLevel(core.InformationLevel))
	}

	return mtlog.New(opts...)
}
