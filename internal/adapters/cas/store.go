// Package cas persists build records, one JSON file per artifact.
package cas

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildRecordStore using a file-per-record strategy.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// Get retrieves the record stored under key. A missing record yields nil, nil.
func (s *Store) Get(key string) (*domain.BuildRecord, error) {
	filename := s.filename(key)
	//nolint:gosec // Path is constructed from the store directory and a hashed file name
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", filename)
	}

	return decode(filename, data)
}

// Put stores the record, replacing any previous record for the same key.
func (s *Store) Put(record domain.BuildRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreCreateFailed, err.Error()), "path", s.dir)
	}

	filename := s.filename(record.Key())
	//nolint:gosec // Path is constructed from the store directory and a hashed file name
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", filename)
	}

	return nil
}

// List returns every stored record ordered by package, then target, then host.
func (s *Store) List() ([]domain.BuildRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", s.dir)
	}

	var records []domain.BuildRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		filename := filepath.Join(s.dir, entry.Name())
		//nolint:gosec // Path comes from listing the store directory
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", filename)
		}
		record, err := decode(filename, data)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	slices.SortFunc(records, func(a, b domain.BuildRecord) int {
		return cmp.Or(
			cmp.Compare(a.Package, b.Package),
			cmp.Compare(a.Target, b.Target),
			cmp.Compare(a.Host, b.Host),
		)
	})
	return records, nil
}

func decode(filename string, data []byte) (*domain.BuildRecord, error) {
	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error()), "path", filename)
	}
	return &record, nil
}

func (s *Store) filename(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}
