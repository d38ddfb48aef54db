// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// Output logs one line printed by an external tool.
	Output(tool, line string)
}
