package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*Files)(nil)

// Files implements ports.FileSystem on the local disk.
type Files struct{}

// NewFiles creates a new Files.
func NewFiles() *Files {
	return &Files{}
}

// FindOne implements ports.FileSystem.
func (f *Files) FindOne(dir, prefix, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, "failed to read directory"), "dir", dir)
	}

	var found string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || filepath.Ext(name) != "."+ext {
			continue
		}
		if found != "" {
			msg := fmt.Sprintf("multiple %s*.%s files found in %q", prefix, ext, dir)
			return "", zerr.With(zerr.Wrap(domain.ErrAmbiguousArtifact, msg), "dir", dir)
		}
		found = filepath.Join(dir, name)
	}
	return found, nil
}

// WriteFile implements ports.FileSystem.
func (f *Files) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}

// Contains implements ports.FileSystem.
func (f *Files) Contains(path string, marker []byte) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return bytes.Contains(data, marker), nil
}
