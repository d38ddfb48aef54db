// Package fs provides file system adapters: staleness checks, artifact lookup,
// directory walking and hashing.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root, skipping directories whose name matches one of skip.
// Unreadable directories are ignored. A missing root yields nothing.
func (w *Walker) WalkFiles(root string, skip []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != root && matchesAny(d.Name(), skip) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if matched, _ := filepath.Match(p, name); matched {
			return true
		}
	}
	return false
}
