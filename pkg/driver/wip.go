package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kieranjs/hicolorgif/pkg/colorspace"
)

// WorkInProgressFile implements a start-WIP/commit protocol for the target
// GIF file: writes go to a temporary companion file in the same directory as
// the final path, so Commit's rename is an atomic same-filesystem operation.
// A convert that errors or panics before Commit leaves the final path
// untouched; Abort removes the temp file, and without Commit or Abort the
// temp file stays on disk.
type WorkInProgressFile struct {
	finalPath string
	tmp       *os.File
	committed bool
}

// CreateWorkInProgressFile opens a temp file beside finalPath and returns a
// WorkInProgressFile ready to be written to.
func CreateWorkInProgressFile(finalPath string) (*WorkInProgressFile, error) {
	dir := filepath.Dir(finalPath)
	tmp, err := os.CreateTemp(dir, ".hicolorgif-wip-*")
	if err != nil {
		return nil, fmt.Errorf("driver: create WIP file: %w", joinIO(err))
	}
	return &WorkInProgressFile{finalPath: finalPath, tmp: tmp}, nil
}

// Write satisfies io.Writer, so a WorkInProgressFile can be handed directly
// to gifwriter.NewWriter.
func (w *WorkInProgressFile) Write(p []byte) (int, error) {
	return w.tmp.Write(p)
}

// Commit closes the temp file and atomically renames it onto the final
// path. After Commit, the WorkInProgressFile must not be written to again.
func (w *WorkInProgressFile) Commit() error {
	if err := w.tmp.Close(); err != nil {
		return fmt.Errorf("driver: close WIP file: %w", joinIO(err))
	}
	if err := os.Rename(w.tmp.Name(), w.finalPath); err != nil {
		os.Remove(w.tmp.Name())
		return fmt.Errorf("driver: commit WIP file: %w", joinIO(err))
	}
	w.committed = true
	return nil
}

// Abort closes and removes the temp file, leaving the final path untouched.
// It is a no-op if Commit already succeeded.
func (w *WorkInProgressFile) Abort() error {
	if w.committed {
		return nil
	}
	w.tmp.Close()
	if err := os.Remove(w.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("driver: remove WIP file: %w", joinIO(err))
	}
	return nil
}

func joinIO(err error) error {
	return fmt.Errorf("%v: %w", err, colorspace.ErrIOFailure)
}
