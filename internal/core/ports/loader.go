package ports

import "go.trai.ch/plink/internal/core/domain"

// LibraryOpener opens dynamic modules.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type LibraryOpener interface {
	// Open loads the module at path. Handles are never closed.
	Open(path string, mode domain.LoadMode) (Library, error)
}

// Library is an opened dynamic module.
type Library interface {
	// Path returns the file the module was loaded from.
	Path() string

	// State binds the module's integer getter and setter.
	State(getSym, setSym string) (*domain.StateCell, error)

	// Service hands cell to the module, then resolves the entry symbol, calls it and wraps
	// the returned capability object. The cell must pass its liveness check first.
	Service(entrySym string, cell *domain.StateCell) (domain.Service, error)
}
