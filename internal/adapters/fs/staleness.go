package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StalenessChecker = (*Staleness)(nil)

// Staleness compares modification times of build inputs and outputs.
type Staleness struct{}

// NewStaleness creates a new Staleness checker.
func NewStaleness() *Staleness {
	return &Staleness{}
}

// IsStale implements ports.StalenessChecker.
func (s *Staleness) IsStale(inputGlob, output string) (bool, error) {
	outTime, ok, err := modified(output)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}

	matches, err := filepath.Glob(inputGlob)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to glob inputs"), "pattern", inputGlob)
	}
	if len(matches) == 0 {
		return false, zerr.With(zerr.Wrap(domain.ErrStalenessInputMissing, inputGlob), "pattern", inputGlob)
	}

	for _, match := range matches {
		inTime, ok, err := modified(match)
		if err != nil {
			return false, err
		}
		if !ok || inTime.After(outTime) {
			return true, nil
		}
	}
	return false, nil
}

// modified returns the modification time of path; ok is false when the file does not exist.
func modified(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, zerr.With(zerr.Wrap(err, "unable to get modification time"), "path", path)
	}
	return info.ModTime(), true, nil
}
