// Package testutil provides shared helpers for table-driven and integration
// tests across the toolkit's packages.
package testutil

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"testing"
)

// TempOutputDir returns a temporary directory for a test's GIF output.
func TempOutputDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// TempOutputPath returns a path for a temporary output file named name,
// rooted under a fresh per-test directory.
func TempOutputPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// DecodeImage decodes an image from r and returns the image and its format
// name, using the registered PNG/JPEG/GIF decoders.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}
