package ports

import (
	"io"

	"go.trai.ch/plink/internal/core/domain"
)

// ExportExtractor reads externally visible symbols out of an IR summary.
//
//go:generate mockgen -source=exports.go -destination=mocks/mock_exports.go -package=mocks
type ExportExtractor interface {
	// Extract returns the external symbols in r. A non-empty prefix keeps only matching names.
	Extract(r io.Reader, prefix string) ([]domain.ExportSymbol, error)

	// WriteList writes the linker export directives for syms to w.
	WriteList(w io.Writer, syms []domain.ExportSymbol) error
}
