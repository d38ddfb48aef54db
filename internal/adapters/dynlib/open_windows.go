//go:build windows

package dynlib

import (
	"path/filepath"

	"go.trai.ch/plink/internal/core/domain"
	"golang.org/x/sys/windows"
)

// Windows resolves imports through the import table, so the mode has no effect.
// Dependent DLLs are searched next to the module first.
func open(path string, _ domain.LoadMode) (uintptr, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	h, err := windows.LoadLibraryEx(abs, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func lookup(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}
