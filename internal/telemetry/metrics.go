package telemetry

import (
	"context"

	"github.com/guillermoBallester/cyphercheck/internal/core/port"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/guillermoBallester/cyphercheck"

// Instruments holds pre-created OTel metric instruments.
type Instruments struct {
	FilesValidated metric.Int64Counter
	FilesFailed    metric.Int64Counter
	FilesBypassed  metric.Int64Counter
	DryRunDuration metric.Float64Histogram
	ToolDuration   metric.Float64Histogram
}

var _ port.Instrumentation = (*Instruments)(nil)

// NewInstruments creates metric instruments from the global MeterProvider.
func NewInstruments() *Instruments {
	return NewInstrumentsFromMeter(otel.Meter(meterName))
}

// NoopInstruments returns instruments that record nothing.
func NoopInstruments() *Instruments {
	return NewInstrumentsFromMeter(noop.NewMeterProvider().Meter(meterName))
}

// NewInstrumentsFromMeter creates the instruments on an explicit meter.
func NewInstrumentsFromMeter(meter metric.Meter) *Instruments {
	// OTel SDK returns noop instruments on error; safe to discard.
	validated, _ := meter.Int64Counter("cyphercheck.files.validated",
		metric.WithDescription("Query files submitted to a dry-run"),
	)
	failed, _ := meter.Int64Counter("cyphercheck.files.failed",
		metric.WithDescription("Query files whose dry-run was rejected"),
	)
	bypassed, _ := meter.Int64Counter("cyphercheck.files.bypassed",
		metric.WithDescription("Query files accepted without a dry-run"),
	)
	dryRun, _ := meter.Float64Histogram("cyphercheck.dryrun.duration",
		metric.WithDescription("EXPLAIN round-trip duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	tool, _ := meter.Float64Histogram("cyphercheck.tool.duration",
		metric.WithDescription("MCP tool call duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	return &Instruments{
		FilesValidated: validated,
		FilesFailed:    failed,
		FilesBypassed:  bypassed,
		DryRunDuration: dryRun,
		ToolDuration:   tool,
	}
}

func (i *Instruments) RecordDryRunDuration(ctx context.Context, ms float64) {
	i.DryRunDuration.Record(ctx, ms)
}

func (i *Instruments) IncrementFilesValidated(ctx context.Context) {
	i.FilesValidated.Add(ctx, 1)
}

func (i *Instruments) IncrementFilesFailed(ctx context.Context) {
	i.FilesFailed.Add(ctx, 1)
}

func (i *Instruments) IncrementFilesBypassed(ctx context.Context) {
	i.FilesBypassed.Add(ctx, 1)
}

func (i *Instruments) RecordToolDuration(ctx context.Context, ms float64) {
	i.ToolDuration.Record(ctx, ms)
}
