package testutil

import (
	"testing"
	"time"

	"github.com/kieranjs/hicolorgif/pkg/config"
)

// LoadTestConfig loads the config from the standard config file, falling
// back to validated defaults over a fresh temp directory when none exists.
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load test config: %v", err)
	}
	cfg.TempDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default test config failed validation: %v", err)
	}
	return cfg
}

// NewTestConfig builds a minimal valid Config for tests that need to
// override specific fields without going through config.Load.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Quantizer:                    config.DefaultQuantizer,
		Ditherer:                     config.DefaultDitherer,
		ColorDistanceMetric:          config.DefaultColorDistanceMetric,
		ColorOrdering:                config.DefaultColorOrdering,
		MaximumColorsPerSubImage:     config.DefaultMaximumColorsPerSubImage,
		MinimumSubImageDuration:      config.DefaultMinimumSubImageDuration,
		GifMode:                      config.DefaultGifMode,
		WorkerCount:                  1,
		TempDir:                      t.TempDir(),
		Timeout:                      30 * time.Second,
		LogLevel:                     config.DefaultLogLevel,
		FirstSubImageInitsBackground: true,
		UseBackFilling:               true,
	}
}
