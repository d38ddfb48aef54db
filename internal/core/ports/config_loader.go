package ports

import "go.trai.ch/plink/internal/core/domain"

// ConfigLoader loads the project layout.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the project file in cwd, falling back to the built-in layout when absent.
	Load(cwd string) (*domain.Project, error)
}
