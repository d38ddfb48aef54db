package toolchain

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolchainLoader = (*Loader)(nil)

// Loader reads the command table from disk.
type Loader struct {
	Logger ports.Logger
	opts   []Option
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger, opts ...Option) *Loader {
	return &Loader{Logger: logger, opts: opts}
}

// Load implements ports.ToolchainLoader. A missing file is not an error.
func (l *Loader) Load(path string) (ports.Toolchain, bool, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, "failed to open toolchain table"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	t, err := Parse(f, l.Logger, l.opts...)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "failed to parse "+path), "path", path)
	}
	return t, true, nil
}
