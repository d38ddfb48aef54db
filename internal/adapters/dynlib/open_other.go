//go:build !(darwin || freebsd || linux || windows)

package dynlib

import (
	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

func open(string, domain.LoadMode) (uintptr, error) {
	return 0, zerr.Wrap(domain.ErrUnsupportedPlatform, "dynamic loading")
}

func newLibrary(string, uintptr) ports.Library {
	return nil
}
