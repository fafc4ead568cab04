package port

import (
	"context"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
)

// StageValidator produces the three per-stage results for a query.
// The dry-run strategy is one implementation; a future strategy may fill
// the stages independently without changing the result model.
type StageValidator interface {
	Validate(ctx context.Context, query string, params domain.ParameterSet) domain.Stages
}
