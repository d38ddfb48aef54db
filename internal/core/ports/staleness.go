package ports

// StalenessChecker decides whether a build step must run.
//
//go:generate mockgen -source=staleness.go -destination=mocks/mock_staleness.go -package=mocks
type StalenessChecker interface {
	// IsStale reports whether output is missing or older than any file matched by inputGlob.
	// Zero matches is an error.
	IsStale(inputGlob, output string) (bool, error)
}
