package ports

import "go.trai.ch/plink/internal/core/domain"

// BuildRecordStore persists the outcome of every successful link.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the record for a key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.BuildRecord, error)

	// Put stores the record.
	Put(record domain.BuildRecord) error

	// List returns every stored record ordered by key.
	List() ([]domain.BuildRecord, error)
}
