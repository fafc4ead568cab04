package neo4jdb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// SessionOpener is satisfied by *Driver and by neo4j.DriverWithContext.
type SessionOpener interface {
	NewSession(ctx context.Context, config neo4j.SessionConfig) neo4j.SessionWithContext
}

// Executor runs a query in a fresh session bound to one database and
// drains the result. It does not add EXPLAIN; wrap it with
// ExplainOnlyExecutor for dry-runs.
type Executor struct {
	sessions SessionOpener
	database string
	logger   *slog.Logger
}

func NewExecutor(sessions SessionOpener, database string, logger *slog.Logger) *Executor {
	return &Executor{
		sessions: sessions,
		database: database,
		logger:   logger,
	}
}

func (e *Executor) Execute(ctx context.Context, cypher string, params map[string]any) (*domain.PlanSummary, error) {
	session := e.sessions.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.database})
	// Close runs on every path; its error never replaces the query outcome.
	defer func() {
		if err := session.Close(ctx); err != nil {
			e.logger.WarnContext(ctx, "closing session",
				slog.String("db.namespace", e.database),
				slog.String("error.message", err.Error()),
			)
		}
	}()

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}

	// Some binding errors only surface once the stream is drained.
	summary, err := result.Consume(ctx)
	if err != nil {
		return nil, fmt.Errorf("consuming result: %w", err)
	}

	return planFromSummary(summary), nil
}
