package fs

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/plink/internal/core/domain"
	"go.trai.ch/plink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactLocator = (*Locator)(nil)

// Locator finds prebuilt artifacts in a fixed list of places.
type Locator struct {
	// Root is the directory candidates are resolved against. Empty means the working directory.
	Root string
}

// NewLocator creates a Locator searching relative to the working directory.
func NewLocator() *Locator {
	return &Locator{}
}

// Candidates returns the ordered search patterns for pkg.
func Candidates(pair domain.Pair, profile domain.Profile, pkg string) ([]string, error) {
	lib, err := pair.ArtifactName(pkg)
	if err != nil {
		return nil, err
	}
	return []string{
		"./" + path.Join(domain.TargetDirName, string(pair.Target), string(profile), lib),
		"./" + path.Join(domain.TargetDirName, string(profile), lib),
		"./" + path.Join(domain.LibDirName, lib),
		"./" + path.Join(pkg, domain.LibDirName, lib),
		"./" + lib,
	}, nil
}

// Locate implements ports.ArtifactLocator.
func (l *Locator) Locate(pair domain.Pair, profile domain.Profile, pkg string) (string, error) {
	candidates, err := Candidates(pair, profile, pkg)
	if err != nil {
		return "", err
	}

	for _, candidate := range candidates {
		found, err := l.seek(candidate)
		if err != nil {
			return "", err
		}
		if found != "" {
			return found, nil
		}
	}

	lib, _ := pair.ArtifactName(pkg)
	msg := fmt.Sprintf("unable to find %q; searched in:\n  %s", lib, strings.Join(candidates, "\n  "))
	return "", zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, msg), "package", pkg)
}

// seek globs one candidate. More than one match is ambiguous.
func (l *Locator) seek(candidate string) (string, error) {
	pattern := filepath.FromSlash(candidate)
	if l.Root != "" {
		pattern = filepath.Join(l.Root, pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfiguration, "bad artifact pattern "+candidate), "pattern", candidate)
	}
	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	default:
		msg := fmt.Sprintf("%q matched multiple files, including %q and %q", candidate, matches[0], matches[1])
		return "", zerr.With(zerr.Wrap(domain.ErrAmbiguousArtifact, msg), "pattern", candidate)
	}
}
