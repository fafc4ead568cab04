package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ValidationService orchestrates a validation run: connectivity probe,
// then bypass or resolve+dry-run for each file, strictly in order.
type ValidationService struct {
	conn      port.Connectivity
	validator port.StageValidator
	resolver  *domain.Resolver
	auditor   port.QueryAuditor
	reporter  port.Reporter
	logger    *slog.Logger
	tracer    trace.Tracer
	inst      port.Instrumentation
}

func NewValidationService(conn port.Connectivity, validator port.StageValidator, resolver *domain.Resolver, auditor port.QueryAuditor, reporter port.Reporter, logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *ValidationService {
	if auditor == nil {
		auditor = port.NoopAuditor{}
	}
	if reporter == nil {
		reporter = port.NoopReporter{}
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if inst == nil {
		inst = port.NoopInstrumentation{}
	}
	return &ValidationService{
		conn:      conn,
		validator: validator,
		resolver:  resolver,
		auditor:   auditor,
		reporter:  reporter,
		logger:    logger,
		tracer:    tracer,
		inst:      inst,
	}
}

// Run validates files in the given order. An empty file set and a failed
// connectivity probe are fatal and produce no per-file results; per-file
// failures are recorded and never abort the run.
func (s *ValidationService) Run(ctx context.Context, files []domain.QueryFile, info port.RunInfo) (*domain.Report, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoQueryFiles
	}

	if err := s.conn.VerifyConnectivity(ctx); err != nil {
		s.logger.ErrorContext(ctx, "connectivity probe failed",
			slog.String("error.type", "connectivity_error"),
			slog.String("error.message", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
	}

	info.RunID = uuid.NewString()
	info.FileCount = len(files)
	info.Method = domain.CheckMethodDryRun
	s.reporter.Start(info)

	s.logger.InfoContext(ctx, "validation started",
		slog.String("run.id", info.RunID),
		slog.Int("file.count", len(files)),
	)

	results := make([]domain.FileResult, 0, len(files))
	for _, f := range files {
		res := s.validateFile(ctx, info.RunID, f, nil)
		results = append(results, res)
		s.reporter.FileValidated(res)
	}

	summary, code := domain.Summarize(domain.OutcomesOf(results))
	s.reporter.Finish(summary)

	s.logger.InfoContext(ctx, "validation finished",
		slog.String("run.id", info.RunID),
		slog.Int("files.passed", summary.Passed),
		slog.Int("files.total", summary.Total),
	)

	return &domain.Report{
		RunID:    info.RunID,
		Results:  results,
		Summary:  summary,
		ExitCode: code,
	}, nil
}

// ValidateOne validates a single query outside a directory run. A nil params
// resolves the fixture registered for f.Name.
func (s *ValidationService) ValidateOne(ctx context.Context, f domain.QueryFile, params domain.ParameterSet) domain.FileResult {
	return s.validateFile(ctx, "", f, params)
}

func (s *ValidationService) validateFile(ctx context.Context, runID string, f domain.QueryFile, params domain.ParameterSet) domain.FileResult {
	ctx, span := s.tracer.Start(ctx, "ValidationService.validateFile",
		trace.WithAttributes(
			attribute.String("db.system", "neo4j"),
			attribute.String("db.operation.name", "EXPLAIN"),
			attribute.String("file.name", f.Name),
		),
	)
	defer span.End()

	if domain.IsBypassed(f.Name) {
		s.logger.InfoContext(ctx, "file bypassed", slog.String("file.name", f.Name))
		s.inst.IncrementFilesBypassed(ctx)
		res := domain.BypassedResult(f.Name)
		span.SetAttributes(
			attribute.Bool("validation.bypassed", true),
			attribute.Bool("validation.valid", true),
		)
		return res
	}

	if params == nil {
		if !s.resolver.Known(f.Name) {
			s.logger.WarnContext(ctx, "no parameter fixture registered",
				slog.String("file.name", f.Name),
			)
		}
		params = s.resolver.Resolve(f.Name)
	}

	start := time.Now()
	stages := s.validator.Validate(ctx, f.Text, params)
	durationMS := time.Since(start).Milliseconds()

	res := domain.NewFileResult(f.Name, stages)

	s.inst.RecordDryRunDuration(ctx, float64(durationMS))
	s.inst.IncrementFilesValidated(ctx)

	var runErr error
	if !res.Valid {
		runErr = errors.New(stageError(res.Syntax))
	}

	s.auditor.Record(ctx, port.AuditEntry{
		RunID:      runID,
		File:       f.Name,
		Query:      f.Text,
		ParamCount: len(params),
		DurationMS: durationMS,
		Err:        runErr,
	})

	span.SetAttributes(attribute.Bool("validation.valid", res.Valid))
	if runErr != nil {
		s.inst.IncrementFilesFailed(ctx)
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		s.logger.WarnContext(ctx, "file failed validation",
			slog.String("file.name", f.Name),
			slog.String("error.message", runErr.Error()),
		)
		return res
	}

	s.logger.InfoContext(ctx, "file passed validation",
		slog.String("file.name", f.Name),
		slog.Int64("duration_ms", durationMS),
	)
	return res
}

func stageError(st domain.StageResult) string {
	if msg, ok := st.Metadata["error"].(string); ok && msg != "" {
		return msg
	}
	return "stage failed"
}
