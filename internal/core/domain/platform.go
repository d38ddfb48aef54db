package domain

import (
	"path"
	"runtime"

	"go.trai.ch/zerr"
)

// Triple identifies an operating-system/architecture target.
type Triple string

const (
	// TripleLinux is the 64-bit GNU/Linux target.
	TripleLinux Triple = "x86_64-unknown-linux-gnu"
	// TripleWindows is the 64-bit MSVC Windows target.
	TripleWindows Triple = "x86_64-pc-windows-msvc"
)

// KnownTriples lists every target the build knows how to name artifacts for.
var KnownTriples = []Triple{TripleLinux, TripleWindows}

// String implements fmt.Stringer.
func (t Triple) String() string {
	return string(t)
}

// IsWindows reports whether the triple targets Windows.
func (t Triple) IsWindows() bool {
	return t == TripleWindows
}

// HostTriple returns the triple of the running process.
func HostTriple() (Triple, error) {
	return TripleFor(runtime.GOOS, runtime.GOARCH)
}

// TripleFor maps a GOOS/GOARCH combination onto a known triple.
func TripleFor(goos, goarch string) (Triple, error) {
	if goarch == "amd64" {
		switch goos {
		case "linux":
			return TripleLinux, nil
		case "windows":
			return TripleWindows, nil
		}
	}
	return "", zerr.With(zerr.Wrap(ErrUnsupportedPlatform, "host "+goos+"/"+goarch), "goos", goos)
}

// Profile is the optimisation profile the packages are compiled with.
type Profile string

const (
	// ProfileDebug is the unoptimised profile.
	ProfileDebug Profile = "debug"
	// ProfileRelease is the optimised profile.
	ProfileRelease Profile = "release"
)

// Pair is a (host, target) compilation configuration.
type Pair struct {
	Host   Triple
	Target Triple
}

// NativePair returns the pair that builds for the host itself.
func NativePair(host Triple) Pair {
	return Pair{Host: host, Target: host}
}

// IsCross reports whether the pair cross-compiles.
func (p Pair) IsCross() bool {
	return p.Host != p.Target
}

// Foreign returns the pair targeting the other known platform from the same host.
func (p Pair) Foreign() Pair {
	target := TripleWindows
	if p.Host == TripleWindows {
		target = TripleLinux
	}
	return Pair{Host: p.Host, Target: target}
}

// OutputRoot returns the directory the toolchain writes this pair's outputs into.
// Paths use forward slashes, matching what the toolchain templates expect.
func (p Pair) OutputRoot(profile Profile) string {
	if p.IsCross() {
		return "./" + path.Join(TargetDirName, string(p.Target), string(profile))
	}
	return "./" + path.Join(TargetDirName, string(profile))
}

// ArtifactName returns the platform file name of the shared library built from pkg.
func (p Pair) ArtifactName(pkg string) (string, error) {
	switch p.Target {
	case TripleLinux:
		return "lib" + pkg + ".so", nil
	case TripleWindows:
		return pkg + ".dll", nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnsupportedPlatform, "no library naming rule for target "+string(p.Target)), "package", pkg)
	}
}

// RequiresExportList reports whether the target linker needs an explicit export list.
func (p Pair) RequiresExportList() bool {
	return p.Target.IsWindows()
}

// String implements fmt.Stringer.
func (p Pair) String() string {
	return string(p.Host) + "->" + string(p.Target)
}
