package fs

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of artifacts.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile computes the XXHash of a file's content.
func (h *Hasher) HashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrFileHashFailed, err.Error()), "path", path)
	}

	return digest.Sum64(), nil
}
