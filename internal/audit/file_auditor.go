package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/guillermoBallester/cyphercheck/internal/core/port"
)

// fileEntry is one NDJSON line of the dry-run audit trail.
type fileEntry struct {
	Timestamp  string  `json:"ts"`
	RunID      string  `json:"run_id,omitempty"`
	File       string  `json:"file"`
	Query      string  `json:"query"`
	ParamCount int     `json:"param_count"`
	DurationMS int64   `json:"duration_ms"`
	Error      *string `json:"error"`
}

// FileAuditor appends one JSON object per dry-run to a file.
type FileAuditor struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	logger *slog.Logger
}

// NewFileAuditor opens (or creates) the file at path for append-only writing.
func NewFileAuditor(path string, logger *slog.Logger) (*FileAuditor, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	return &FileAuditor{
		file:   f,
		enc:    enc,
		logger: logger,
	}, nil
}

var _ port.QueryAuditor = (*FileAuditor)(nil)

func (a *FileAuditor) Record(ctx context.Context, entry port.AuditEntry) {
	fe := fileEntry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		RunID:      entry.RunID,
		File:       entry.File,
		Query:      entry.Query,
		ParamCount: entry.ParamCount,
		DurationMS: entry.DurationMS,
	}
	if entry.Err != nil {
		s := entry.Err.Error()
		fe.Error = &s
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	// Audit I/O never fails a validation run.
	if err := a.enc.Encode(fe); err != nil {
		a.logger.WarnContext(ctx, "writing audit entry",
			slog.String("file.name", entry.File),
			slog.String("error.message", err.Error()),
		)
	}
}

func (a *FileAuditor) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file.Close()
}
