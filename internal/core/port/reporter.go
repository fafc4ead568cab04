package port

import "github.com/guillermoBallester/cyphercheck/internal/core/domain"

// RunInfo describes a validation run to the report sink.
type RunInfo struct {
	RunID     string
	FileCount int
	Target    string // redacted endpoint, for display
	Database  string
	Method    string
}

// Reporter receives structured results as they are produced.
// FileValidated is called once per file, in processing order.
type Reporter interface {
	Start(info RunInfo)
	FileValidated(result domain.FileResult)
	Finish(summary domain.Summary)
}

// NoopReporter discards everything.
type NoopReporter struct{}

func (NoopReporter) Start(RunInfo)                   {}
func (NoopReporter) FileValidated(domain.FileResult) {}
func (NoopReporter) Finish(domain.Summary)           {}
