package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Writer stores a rendered page.
type Writer interface {
	WriteFile(path string, data []byte) error
}

// FileWriter writes pages to the local file system. Parent directories are
// created as needed and each file is replaced atomically.
type FileWriter struct{}

// WriteFile implements Writer.
func (FileWriter) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
