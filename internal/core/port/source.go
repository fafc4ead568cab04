package port

import (
	"context"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
)

// QuerySource enumerates query templates in a deterministic order.
type QuerySource interface {
	List(ctx context.Context) ([]domain.QueryFile, error)
}
