//go:build darwin || freebsd || linux

package dynlib

import (
	"github.com/ebitengine/purego"
	"go.trai.ch/plink/internal/core/domain"
)

// Symbols are bound eagerly; visibility follows the load mode.
func open(path string, mode domain.LoadMode) (uintptr, error) {
	flags := purego.RTLD_NOW | purego.RTLD_LOCAL
	if mode == domain.LoadGlobal {
		flags = purego.RTLD_NOW | purego.RTLD_GLOBAL
	}
	return purego.Dlopen(path, flags)
}

func lookup(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}
