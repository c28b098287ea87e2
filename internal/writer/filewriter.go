package writer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter writes records to a filesystem path atomically: output goes to
// a temporary file in the same directory that replaces Path on Commit.
type FileWriter struct {
	Path string

	tmp *os.File
	bw  *bufio.Writer
}

// Create opens a FileWriter for path.
func Create(path string) (*FileWriter, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".marckit-tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &FileWriter{Path: path, tmp: tmp, bw: bufio.NewWriter(tmp)}, nil
}

// Write buffers p for the temporary file.
func (w *FileWriter) Write(p []byte) (int, error) {
	if w.tmp == nil {
		return 0, os.ErrClosed
	}
	return w.bw.Write(p)
}

// Commit flushes, syncs and renames the temporary file over Path.
func (w *FileWriter) Commit() error {
	if w.tmp == nil {
		return os.ErrClosed
	}
	tmpPath := w.tmp.Name()
	if err := w.bw.Flush(); err != nil {
		_ = w.Abort()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := w.tmp.Sync(); err != nil {
		_ = w.Abort()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := w.tmp.Close(); err != nil {
		w.tmp = nil
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	w.tmp = nil

	if err := os.Rename(tmpPath, w.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Abort removes the temporary file and leaves Path untouched.
func (w *FileWriter) Abort() error {
	if w.tmp == nil {
		return nil
	}
	tmpPath := w.tmp.Name()
	_ = w.tmp.Close()
	w.tmp = nil
	return os.Remove(tmpPath)
}
