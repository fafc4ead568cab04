package domain

import "errors"

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrNoQueryFiles     = errors.New("no query files to validate")
	ErrConnectivity     = errors.New("cannot connect to database")
	ErrValidationFailed = errors.New("query validation failed")
)

// QueryFileExt is the extension recognised for query templates.
const QueryFileExt = ".cypher"

// QueryFile is a single query template as read from disk.
type QueryFile struct {
	Name string
	Text string
}

// Notification is a server-side notice attached to a dry-run,
// such as a deprecation or an unknown label warning.
type Notification struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Severity    string `json:"severity,omitempty"`
	Description string `json:"description,omitempty"`
}

// PlanSummary is what the database reports back from a successful dry-run.
type PlanSummary struct {
	Operator      string         `json:"operator,omitempty"`
	Identifiers   []string       `json:"identifiers,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
}
