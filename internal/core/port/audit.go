package port

import "context"

// AuditEntry represents a single dry-run submitted to the database.
type AuditEntry struct {
	RunID      string
	File       string
	Query      string
	ParamCount int
	DurationMS int64
	Err        error
}

// QueryAuditor records dry-run audit events.
type QueryAuditor interface {
	Record(ctx context.Context, entry AuditEntry)
	Close() error
}

// NoopAuditor discards all audit entries.
type NoopAuditor struct{}

func (NoopAuditor) Record(context.Context, AuditEntry) {}
func (NoopAuditor) Close() error                       { return nil }
