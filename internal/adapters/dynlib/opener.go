// Package dynlib opens shared libraries in the running process and calls into them without cgo.
package dynlib

import (
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

// Opener implements ports.LibraryOpener. Opened handles stay loaded until the process exits.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open loads the module at path with the requested symbol visibility.
func (o *Opener) Open(path string, mode domain.LoadMode) (ports.Library, error) {
	handle, err := open(path, mode)
	if err != nil {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrLoadFailed, "failed to load "+path+": "+err.Error()),
			"mode", mode.String(),
		)
	}
	return newLibrary(path, handle), nil
}
