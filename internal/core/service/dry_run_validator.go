package service

import (
	"context"
	"log/slog"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"
)

// DryRunOptions carries the strictness toggles. They are recorded in the
// stage metadata; the dry-run protocol does not act on them yet.
type DryRunOptions struct {
	StrictProperties       bool
	CheckMultiLabeledNodes bool
}

// DryRunValidator fills all three stages from a single EXPLAIN call.
// Success proves syntax, schema and properties held together; on failure
// only the syntax stage carries the error and the others are skipped.
// Errors are not parsed to tell a typo from an unknown label.
type DryRunValidator struct {
	executor port.QueryExecutor
	opts     DryRunOptions
	logger   *slog.Logger
}

func NewDryRunValidator(executor port.QueryExecutor, opts DryRunOptions, logger *slog.Logger) *DryRunValidator {
	return &DryRunValidator{
		executor: executor,
		opts:     opts,
		logger:   logger,
	}
}

// Validate runs the dry-run once. It never retries and never returns an error:
// a failure is captured as the syntax stage's error text.
func (v *DryRunValidator) Validate(ctx context.Context, query string, params domain.ParameterSet) domain.Stages {
	plan, err := v.executor.Execute(ctx, query, params)
	if err != nil {
		v.logger.DebugContext(ctx, "dry-run rejected",
			slog.String("error.type", "query_execution_error"),
			slog.String("error.message", err.Error()),
		)
		return domain.Stages{
			Syntax:     domain.FailedStage(err.Error()),
			Schema:     domain.SkippedStage(),
			Properties: domain.SkippedStage(),
		}
	}

	syntax := domain.PassedStage(domain.CheckMethodDryRun)
	if plan != nil {
		if plan.Operator != "" {
			syntax.Metadata["plan_operator"] = plan.Operator
		}
		if len(plan.Notifications) > 0 {
			syntax.Metadata["notifications"] = plan.Notifications
			for _, n := range plan.Notifications {
				v.logger.WarnContext(ctx, "dry-run notification",
					slog.String("db.response.notification.code", n.Code),
					slog.String("db.response.notification.title", n.Title),
				)
			}
		}
	}

	schema := domain.PassedStage(domain.CheckMethodDryRun)
	schema.Metadata["check_multilabeled_nodes"] = v.opts.CheckMultiLabeledNodes

	properties := domain.PassedStage(domain.CheckMethodDryRun)
	properties.Metadata["strict_properties"] = v.opts.StrictProperties

	return domain.Stages{
		Syntax:     syntax,
		Schema:     schema,
		Properties: properties,
	}
}
