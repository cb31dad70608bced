package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig(tempDir string) *Config {
	return &Config{
		Quantizer:                    "wu",
		Ditherer:                     "floyd-steinberg",
		ColorDistanceMetric:          "euclidean",
		ColorOrdering:                "most-used-first",
		MaximumColorsPerSubImage:     255,
		MinimumSubImageDuration:      10 * time.Millisecond,
		GifMode:                      "compressed",
		WorkerCount:                  4,
		TempDir:                      tempDir,
		Timeout:                      30 * time.Second,
		LogLevel:                     "info",
		FirstSubImageInitsBackground: true,
		UseBackFilling:               true,
	}
}

func TestConfigValidate(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}, wantErr: false},
		{name: "unknown quantizer", mutate: func(c *Config) { c.Quantizer = "bogus" }, wantErr: true},
		{name: "unknown ditherer", mutate: func(c *Config) { c.Ditherer = "bogus" }, wantErr: true},
		{name: "unknown metric", mutate: func(c *Config) { c.ColorDistanceMetric = "bogus" }, wantErr: true},
		{name: "unknown ordering", mutate: func(c *Config) { c.ColorOrdering = "bogus" }, wantErr: true},
		{name: "zero max colors", mutate: func(c *Config) { c.MaximumColorsPerSubImage = 0 }, wantErr: true},
		{name: "max colors over 255", mutate: func(c *Config) { c.MaximumColorsPerSubImage = 300 }, wantErr: true},
		{name: "negative duration", mutate: func(c *Config) { c.MinimumSubImageDuration = -1 }, wantErr: true},
		{name: "bad gif mode", mutate: func(c *Config) { c.GifMode = "lossy" }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.WorkerCount = 0 }, wantErr: true},
		{name: "missing temp dir", mutate: func(c *Config) { c.TempDir = filepath.Join(tempDir, "nonexistent") }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -1 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(tempDir)
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	orig := getConfigFilePath
	getConfigFilePath = func() string { return filepath.Join(dir, "does-not-exist.json") }
	defer func() { getConfigFilePath = orig }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Quantizer != DefaultQuantizer {
		t.Errorf("Quantizer = %s, want %s", cfg.Quantizer, DefaultQuantizer)
	}
	if cfg.Ditherer != DefaultDitherer {
		t.Errorf("Ditherer = %s, want %s", cfg.Ditherer, DefaultDitherer)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.WorkerCount <= 0 {
		t.Errorf("WorkerCount = %d, want a positive default", cfg.WorkerCount)
	}
}

func TestLoadReadsOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	body, err := json.Marshal(map[string]any{
		"quantizer":                     "octree",
		"ditherer":                      "knoll",
		"color_distance_metric":         "ciede2000",
		"color_ordering":                "from-center",
		"maximum_colors_per_sub_image":  128,
		"minimum_sub_image_duration_ms": 20,
		"gif_mode":                      "degenerate",
		"worker_count":                  2,
		"timeout":                       60,
		"log_level":                     "debug",
	})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	orig := getConfigFilePath
	getConfigFilePath = func() string { return path }
	defer func() { getConfigFilePath = orig }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Quantizer != "octree" {
		t.Errorf("Quantizer = %s, want octree", cfg.Quantizer)
	}
	if cfg.Ditherer != "knoll" {
		t.Errorf("Ditherer = %s, want knoll", cfg.Ditherer)
	}
	if cfg.MaximumColorsPerSubImage != 128 {
		t.Errorf("MaximumColorsPerSubImage = %d, want 128", cfg.MaximumColorsPerSubImage)
	}
	if cfg.MinimumSubImageDuration != 20*time.Millisecond {
		t.Errorf("MinimumSubImageDuration = %v, want 20ms", cfg.MinimumSubImageDuration)
	}
	if cfg.GifMode != "degenerate" {
		t.Errorf("GifMode = %s, want degenerate", cfg.GifMode)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	orig := getConfigFilePath
	getConfigFilePath = func() string { return path }
	defer func() { getConfigFilePath = orig }()

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for malformed config JSON")
	}
}
