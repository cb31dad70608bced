// Package config provides configuration management for the hicolorgif
// encoder.
//
// Configuration is loaded exclusively from a JSON file at
// ~/.config/hicolorgif/config.json. No environment variables or
// auto-discovery mechanisms are used - all values are either explicitly
// configured or take the documented default.
//
// Example config file:
//
//	{
//	  "quantizer": "wu",
//	  "ditherer": "floyd-steinberg",
//	  "color_distance_metric": "euclidean",
//	  "color_ordering": "most-used-first",
//	  "maximum_colors_per_sub_image": 255,
//	  "minimum_sub_image_duration_ms": 10,
//	  "total_frame_duration_ms": 0,
//	  "first_sub_image_inits_background": true,
//	  "use_back_filling": true,
//	  "gif_mode": "compressed",
//	  "loop_forever": true,
//	  "worker_count": 0,
//	  "temp_dir": "",
//	  "timeout": 300,
//	  "log_level": "info",
//	  "log_file": ""
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the hicolorgif encoder configuration. Every field defaults
// sensibly when absent from the config file; Load always returns a
// validated Config.
type Config struct {
	// Quantizer names the palette-reduction algorithm used to build the
	// optional background frame's palette. One of: octree, median-cut, wu,
	// variance, variance-cut, binary-splitting, adu, wu-ant,
	// binary-splitting-ant, bsitatcq.
	Quantizer string `json:"quantizer"`

	// Ditherer names the error-diffusion or threshold algorithm used to
	// render the background frame. One of: none, floyd-steinberg, simple,
	// jarvis-judice-ninke, stucki, atkinson, burkes, sierra,
	// two-row-sierra, sierra-lite, bayer-2x2, bayer-4x4, bayer-8x8,
	// white-noise, blue-noise, brown-noise, riemersma, knoll.
	Ditherer string `json:"ditherer"`

	// ColorDistanceMetric names the metric used for nearest-color search
	// in dithering and back-filling.
	ColorDistanceMetric string `json:"color_distance_metric"`

	// ColorOrdering names how distinct colors are assigned to sub-frames.
	// One of: most-used-first, least-used-first, high-luminance-first,
	// low-luminance-first, from-center, random.
	ColorOrdering string `json:"color_ordering"`

	// MaximumColorsPerSubImage caps how many content colors one sub-frame
	// carries.
	MaximumColorsPerSubImage int `json:"maximum_colors_per_sub_image"`

	// MinimumSubImageDuration is every sub-frame's base playback duration.
	MinimumSubImageDuration time.Duration `json:"-"`

	// TotalFrameDuration, if positive, bounds the total sub-frame count and
	// stretches the final frame to fill the remainder.
	TotalFrameDuration time.Duration `json:"-"`

	// FirstSubImageInitsBackground emits a dithered, quantized full-image
	// frame before the sparse color layers.
	FirstSubImageInitsBackground bool `json:"first_sub_image_inits_background"`

	// UseBackFilling fills every sparse frame's unscheduled positions with
	// their nearest in-frame palette match.
	UseBackFilling bool `json:"use_back_filling"`

	// GifMode selects the LZW image-data encoder: "compressed" for the
	// real trie-based encoder, "degenerate" for literal 9-bit codes.
	GifMode string `json:"gif_mode"`

	// LoopForever emits the NETSCAPE2.0 loop extension with an infinite
	// loop count. When false, the output plays once.
	LoopForever bool `json:"loop_forever"`

	// WorkerCount bounds the sub-frame construction worker pool. Zero
	// selects runtime.NumCPU().
	WorkerCount int `json:"worker_count"`

	// TempDir holds work-in-progress output files before they are
	// committed to their final path. Defaults to the OS temp dir plus
	// "hicolorgif".
	TempDir string `json:"temp_dir"`

	// Timeout bounds a single conversion's wall-clock time.
	Timeout time.Duration `json:"-"`

	// LogLevel is the logging verbosity: debug, info, warn, or error.
	LogLevel string `json:"log_level"`

	// LogFile is read from the config file, but the logger built by
	// cmd/hicolorgif does not use it: log output goes to the console sink
	// only, whatever this field holds.
	LogFile string `json:"log_file"`
}

// Default configuration values applied when fields are not specified in the
// config file.
const (
	DefaultQuantizer                = "wu"
	DefaultDitherer                 = "floyd-steinberg"
	DefaultColorDistanceMetric      = "euclidean"
	DefaultColorOrdering            = "most-used-first"
	DefaultMaximumColorsPerSubImage = 255
	DefaultMinimumSubImageDuration  = 10 * time.Millisecond
	DefaultGifMode                  = "compressed"
	DefaultTimeout                  = 5 * time.Minute
	DefaultLogLevel                 = "info"
)

// Load loads configuration from the default config file at
// ~/.config/hicolorgif/config.json, falling back to an entirely default
// configuration when the file does not exist.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, fmt.Errorf("failed to set defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// configJSON is a wire struct for unmarshaling JSON with durations
// expressed as plain integer milliseconds/seconds instead of Go's
// stringly-typed duration format.
type configJSON struct {
	Quantizer                    string `json:"quantizer"`
	Ditherer                     string `json:"ditherer"`
	ColorDistanceMetric          string `json:"color_distance_metric"`
	ColorOrdering                string `json:"color_ordering"`
	MaximumColorsPerSubImage     int    `json:"maximum_colors_per_sub_image"`
	MinimumSubImageDurationMs    int    `json:"minimum_sub_image_duration_ms"`
	TotalFrameDurationMs         int    `json:"total_frame_duration_ms"`
	FirstSubImageInitsBackground *bool  `json:"first_sub_image_inits_background"`
	UseBackFilling               *bool  `json:"use_back_filling"`
	GifMode                      string `json:"gif_mode"`
	LoopForever                  *bool  `json:"loop_forever"`
	WorkerCount                  int    `json:"worker_count"`
	TempDir                      string `json:"temp_dir"`
	TimeoutSeconds               int    `json:"timeout"`
	LogLevel                     string `json:"log_level"`
	LogFile                      string `json:"log_file"`
}

func (c *Config) loadFromFile() error {
	data, err := os.ReadFile(getConfigFilePath())
	if err != nil {
		return err
	}

	var cj configJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return fmt.Errorf("malformed config JSON: %w", err)
	}

	c.Quantizer = cj.Quantizer
	c.Ditherer = cj.Ditherer
	c.ColorDistanceMetric = cj.ColorDistanceMetric
	c.ColorOrdering = cj.ColorOrdering
	c.MaximumColorsPerSubImage = cj.MaximumColorsPerSubImage
	c.MinimumSubImageDuration = time.Duration(cj.MinimumSubImageDurationMs) * time.Millisecond
	c.TotalFrameDuration = time.Duration(cj.TotalFrameDurationMs) * time.Millisecond
	if cj.FirstSubImageInitsBackground != nil {
		c.FirstSubImageInitsBackground = *cj.FirstSubImageInitsBackground
	} else {
		c.FirstSubImageInitsBackground = true
	}
	if cj.UseBackFilling != nil {
		c.UseBackFilling = *cj.UseBackFilling
	} else {
		c.UseBackFilling = true
	}
	c.GifMode = cj.GifMode
	if cj.LoopForever != nil {
		c.LoopForever = *cj.LoopForever
	} else {
		c.LoopForever = true
	}
	c.WorkerCount = cj.WorkerCount
	c.TempDir = cj.TempDir
	c.Timeout = time.Duration(cj.TimeoutSeconds) * time.Second
	c.LogLevel = cj.LogLevel
	c.LogFile = cj.LogFile

	return nil
}

// setDefaults fills in any field left unset by the config file (or left
// unset entirely, when no config file exists).
func (c *Config) setDefaults() error {
	if c.Quantizer == "" {
		c.Quantizer = DefaultQuantizer
	}
	if c.Ditherer == "" {
		c.Ditherer = DefaultDitherer
	}
	if c.ColorDistanceMetric == "" {
		c.ColorDistanceMetric = DefaultColorDistanceMetric
	}
	if c.ColorOrdering == "" {
		c.ColorOrdering = DefaultColorOrdering
	}
	if c.MaximumColorsPerSubImage == 0 {
		c.MaximumColorsPerSubImage = DefaultMaximumColorsPerSubImage
	}
	if c.MinimumSubImageDuration == 0 {
		c.MinimumSubImageDuration = DefaultMinimumSubImageDuration
	}
	if c.GifMode == "" {
		c.GifMode = DefaultGifMode
	}
	if c.WorkerCount <= 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	if c.TempDir == "" {
		c.TempDir = filepath.Join(os.TempDir(), "hicolorgif")
	}
	if err := os.MkdirAll(c.TempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return nil
}

var validQuantizers = map[string]bool{
	"octree": true, "median-cut": true, "wu": true, "variance": true,
	"variance-cut": true, "binary-splitting": true, "adu": true,
	"wu-ant": true, "binary-splitting-ant": true, "bsitatcq": true,
}

var validDitherers = map[string]bool{
	"none": true, "floyd-steinberg": true, "simple": true,
	"jarvis-judice-ninke": true, "stucki": true, "atkinson": true,
	"burkes": true, "sierra": true, "two-row-sierra": true,
	"sierra-lite": true, "bayer-2x2": true, "bayer-4x4": true,
	"bayer-8x8": true, "white-noise": true, "blue-noise": true,
	"brown-noise": true, "riemersma": true, "knoll": true,
}

var validMetrics = map[string]bool{
	"euclidean": true, "manhattan": true, "weighted-euclidean": true,
	"weighted-manhattan": true, "weighted-yuv": true, "weighted-ycbcr": true,
	"compuphase": true, "pngquant": true, "cie94-textiles": true,
	"cie94-graphic-arts": true, "ciede2000": true,
}

var validOrderings = map[string]bool{
	"most-used-first": true, "least-used-first": true,
	"high-luminance-first": true, "low-luminance-first": true,
	"from-center": true, "random": true,
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks that every field holds a recognized value. Load calls
// this automatically; callers building a Config by hand should call it too.
func (c *Config) Validate() error {
	if !validQuantizers[c.Quantizer] {
		return fmt.Errorf("invalid quantizer: %s", c.Quantizer)
	}
	if !validDitherers[c.Ditherer] {
		return fmt.Errorf("invalid ditherer: %s", c.Ditherer)
	}
	if !validMetrics[c.ColorDistanceMetric] {
		return fmt.Errorf("invalid color_distance_metric: %s", c.ColorDistanceMetric)
	}
	if !validOrderings[c.ColorOrdering] {
		return fmt.Errorf("invalid color_ordering: %s", c.ColorOrdering)
	}
	if c.MaximumColorsPerSubImage <= 0 || c.MaximumColorsPerSubImage > 255 {
		return fmt.Errorf("maximum_colors_per_sub_image must be in (0, 255], got %d", c.MaximumColorsPerSubImage)
	}
	if c.MinimumSubImageDuration <= 0 {
		return fmt.Errorf("minimum_sub_image_duration_ms must be positive, got %v", c.MinimumSubImageDuration)
	}
	if c.GifMode != "compressed" && c.GifMode != "degenerate" {
		return fmt.Errorf("invalid gif_mode: %s", c.GifMode)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("worker_count must be positive, got %d", c.WorkerCount)
	}
	if info, err := os.Stat(c.TempDir); err != nil || !info.IsDir() {
		return fmt.Errorf("temp_dir %s is not an accessible directory", c.TempDir)
	}
	testFile := filepath.Join(c.TempDir, ".write-test")
	if err := os.WriteFile(testFile, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("temp_dir is not writable: %w", err)
	}
	os.Remove(testFile)
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// getConfigFilePath is a function variable that returns the default config
// file path. Can be overridden in tests.
var getConfigFilePath = func() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "hicolorgif", "config.json")
}
