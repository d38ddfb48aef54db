package ports

import "go.trai.ch/plink/internal/core/domain"

// Toolchain resolves command templates into runnable commands.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Resolve looks up the template for (pair, kind) and applies the substitutions in order.
	// It fails if no template exists or a placeholder survives substitution.
	Resolve(pair domain.Pair, kind domain.CommandKind, subs ...domain.Substitution) (domain.Command, error)
}

// ToolchainLoader reads a toolchain command table.
type ToolchainLoader interface {
	// Load parses the table at path. A missing file yields found=false and no error.
	Load(path string) (tc Toolchain, found bool, err error)
}
