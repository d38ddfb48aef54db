package domain

import "time"

// Artifact is a built or located shared library.
type Artifact struct {
	Path    string
	Package string
	Pair    Pair
	// Fresh is true when the build step was skipped because the artifact was up to date.
	Fresh bool
}

// ModuleSet holds the three modules the host loads, in load order.
type ModuleSet struct {
	Runtime string
	Base    string
	Plugin  string
}

// BuildRecord is persisted after every successful link.
type BuildRecord struct {
	Package string    `json:"package"`
	Host    Triple    `json:"host"`
	Target  Triple    `json:"target"`
	Path    string    `json:"path"`
	Digest  uint64    `json:"digest"`
	BuiltAt time.Time `json:"built_at"`
}

// RecordKey returns the store key for a package built for a pair.
func RecordKey(pair Pair, pkg string) string {
	return string(pair.Host) + "/" + string(pair.Target) + "/" + pkg
}

// Key returns the store key of the record.
func (r BuildRecord) Key() string {
	return RecordKey(Pair{Host: r.Host, Target: r.Target}, r.Package)
}

// RecordStatus compares a build record against the artifact on disk.
type RecordStatus string

const (
	// StatusOK means the artifact matches its recorded digest.
	StatusOK RecordStatus = "ok"
	// StatusModified means the artifact changed since it was linked.
	StatusModified RecordStatus = "modified"
	// StatusMissing means the artifact is gone.
	StatusMissing RecordStatus = "missing"
)
