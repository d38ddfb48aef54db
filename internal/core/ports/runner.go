package ports

import (
	"context"
	"io"

	"go.trai.ch/plink/internal/core/domain"
)

// ToolRunner launches external tools.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ToolRunner interface {
	// Run executes cmd to completion, forwarding its output.
	// A missing executable yields domain.ErrToolNotFound, a non-zero exit domain.ErrToolFailure.
	Run(ctx context.Context, cmd domain.Command) error

	// Output executes cmd and returns its standard output.
	Output(ctx context.Context, cmd domain.Command) ([]byte, error)

	// Stream executes cmd, handing its standard output to consume.
	// The stream is drained completely before the process is waited on.
	Stream(ctx context.Context, cmd domain.Command, consume func(io.Reader) error) error
}
