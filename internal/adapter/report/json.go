package report

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"
)

// JSON buffers results and writes a single indented document on Finish.
type JSON struct {
	w       io.Writer
	logger  *slog.Logger
	runID   string
	results []domain.FileResult
}

func NewJSON(w io.Writer, logger *slog.Logger) *JSON {
	return &JSON{w: w, logger: logger}
}

var _ port.Reporter = (*JSON)(nil)

func (j *JSON) Start(info port.RunInfo) {
	j.runID = info.RunID
	j.results = make([]domain.FileResult, 0, info.FileCount)
}

func (j *JSON) FileValidated(res domain.FileResult) {
	j.results = append(j.results, res)
}

func (j *JSON) Finish(sum domain.Summary) {
	code := domain.ExitFailure
	if sum.AllPassed() {
		code = domain.ExitOK
	}
	if err := Encode(j.w, &domain.Report{
		RunID:    j.runID,
		Results:  j.results,
		Summary:  sum,
		ExitCode: code,
	}); err != nil {
		j.logger.Error("writing JSON report", slog.String("error.message", err.Error()))
	}
}

// Encode writes rep as indented JSON followed by a newline.
func Encode(w io.Writer, rep *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rep)
}
