package port

import "context"

// Instrumentation records application-level metrics.
type Instrumentation interface {
	RecordDryRunDuration(ctx context.Context, ms float64)
	IncrementFilesValidated(ctx context.Context)
	IncrementFilesFailed(ctx context.Context)
	IncrementFilesBypassed(ctx context.Context)
	RecordToolDuration(ctx context.Context, ms float64)
}

// NoopInstrumentation discards all metrics.
type NoopInstrumentation struct{}

func (NoopInstrumentation) RecordDryRunDuration(context.Context, float64) {}
func (NoopInstrumentation) IncrementFilesValidated(context.Context)       {}
func (NoopInstrumentation) IncrementFilesFailed(context.Context)          {}
func (NoopInstrumentation) IncrementFilesBypassed(context.Context)        {}
func (NoopInstrumentation) RecordToolDuration(context.Context, float64)   {}
