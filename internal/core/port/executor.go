package port

import (
	"context"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
)

// QueryExecutor submits a query with bind parameters and drains its result.
// Implementations own a session per call and release it before returning.
type QueryExecutor interface {
	Execute(ctx context.Context, cypher string, params map[string]any) (*domain.PlanSummary, error)
}

// Connectivity probes the database before any file is processed.
type Connectivity interface {
	VerifyConnectivity(ctx context.Context) error
}
