package neo4jdb

import (
	"context"
	"strings"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"
)

// ExplainOnlyExecutor wraps a QueryExecutor and forces all queries through EXPLAIN.
// Non-EXPLAIN queries, PROFILE included, are prefixed with "EXPLAIN ".
type ExplainOnlyExecutor struct {
	inner port.QueryExecutor
}

func NewExplainOnlyExecutor(inner port.QueryExecutor) *ExplainOnlyExecutor {
	return &ExplainOnlyExecutor{inner: inner}
}

func (e *ExplainOnlyExecutor) Execute(ctx context.Context, cypher string, params map[string]any) (*domain.PlanSummary, error) {
	if !isExplain(cypher) {
		cypher = "EXPLAIN " + cypher
	}
	return e.inner.Execute(ctx, cypher, params)
}

func isExplain(cypher string) bool {
	fields := strings.Fields(cypher)
	return len(fields) > 0 && strings.EqualFold(fields[0], "EXPLAIN")
}
