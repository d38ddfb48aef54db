package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/plink/internal/core/ports"
)

// Timing implements sdktrace.SpanProcessor and reports the duration of every finished step.
type Timing struct {
	logger ports.Logger
}

// NewTiming returns a processor that logs through logger.
func NewTiming(logger ports.Logger) *Timing {
	return &Timing{logger: logger}
}

// OnStart does nothing.
func (t *Timing) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name and its duration.
func (t *Timing) OnEnd(s sdktrace.ReadOnlySpan) {
	if t.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	t.logger.Info("     Elapsed " + s.Name() + " " + elapsed.String())
}

// ForceFlush does nothing.
func (t *Timing) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (t *Timing) Shutdown(_ context.Context) error {
	return nil
}

// Install registers a global tracer provider. Step timings are logged only when verbose is set.
// The returned function shuts the provider down.
func Install(logger ports.Logger, verbose bool) func(context.Context) error {
	var opts []sdktrace.TracerProviderOption
	if verbose {
		opts = append(opts, sdktrace.WithSpanProcessor(NewTiming(logger)))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
