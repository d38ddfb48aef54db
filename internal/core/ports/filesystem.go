package ports

import "go.trai.ch/plink/internal/core/domain"

// FileSystem is the file access the build needs beyond staleness checks.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// FindOne returns the single file in dir whose name has the prefix and extension.
	// It returns "" when nothing matches and domain.ErrAmbiguousArtifact on several matches.
	FindOne(dir, prefix, ext string) (string, error)

	// WriteFile replaces the contents of path.
	WriteFile(path string, data []byte) error

	// Contains reports whether the file at path contains marker.
	Contains(path string, marker []byte) (bool, error)
}

// ArtifactLocator finds prebuilt artifacts.
type ArtifactLocator interface {
	// Locate searches the fixed candidate list for the library built from pkg.
	Locate(pair domain.Pair, profile domain.Profile, pkg string) (string, error)
}

// CRTFinder locates the Windows C runtime import library.
type CRTFinder interface {
	// Find returns the path of the import library, searching at most once per process.
	Find(host domain.Triple) (string, error)
}

// Hasher computes content digests.
type Hasher interface {
	// HashFile returns the digest of the file at path.
	HashFile(path string) (uint64, error)
}
