package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guillermoBallester/cyphercheck/internal/adapter/fixtures"
	"github.com/guillermoBallester/cyphercheck/internal/adapter/neo4jdb"
	"github.com/guillermoBallester/cyphercheck/internal/audit"
	"github.com/guillermoBallester/cyphercheck/internal/config"
	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"
	"github.com/guillermoBallester/cyphercheck/internal/core/service"
	"github.com/guillermoBallester/cyphercheck/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "cyphercheck"

// app holds the long-lived resources shared by the validate and mcp commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *database
	resolver *domain.Resolver
	auditor  port.QueryAuditor
	otel     *telemetry.Provider
	tracer   trace.Tracer
	inst     port.Instrumentation
}

// database is the Neo4j side of the app: the connectivity probe, the
// session-scoped executor, and the driver's Close.
type database struct {
	conn     port.Connectivity
	executor port.QueryExecutor
	close    func(context.Context) error
}

// connect opens the database; tests swap it for an in-memory stand-in.
var connect = connectNeo4j

func connectNeo4j(cfg *config.Config, logger *slog.Logger) (*database, error) {
	driver, err := neo4jdb.NewDriver(cfg.URI, cfg.User, cfg.Password, serviceName+"/"+version)
	if err != nil {
		return nil, err
	}
	return &database{
		conn:     driver,
		executor: neo4jdb.NewExecutor(driver, cfg.Database, logger),
		close:    driver.Close,
	}, nil
}

// newApp builds every adapter from cfg. It makes no network call; the
// connectivity probe belongs to the validation run.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		auditor: port.NoopAuditor{},
		tracer:  telemetry.NoopTracer(),
		inst:    telemetry.NoopInstruments(),
	}

	registry := domain.DefaultRegistry()
	if cfg.ParamsFile != "" {
		overrides, err := fixtures.LoadFromFile(cfg.ParamsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: loading fixtures: %w", domain.ErrConfiguration, err)
		}
		registry = registry.Merge(overrides)
		logger.Info("parameter fixtures loaded",
			slog.String("file", cfg.ParamsFile),
			slog.Int("fixture.count", len(overrides)),
		)
	}
	a.resolver = domain.NewResolver(registry)

	if cfg.OTelEnabled {
		provider, err := telemetry.Init(ctx, serviceName, version, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("initializing telemetry: %w", err)
		}
		a.otel = provider
		a.tracer = otel.Tracer(serviceName)
		a.inst = telemetry.NewInstruments()
		logger.Info("OpenTelemetry enabled")
	}

	if cfg.AuditLog != "" {
		fa, err := audit.NewFileAuditor(cfg.AuditLog, logger)
		if err != nil {
			a.close(ctx)
			return nil, fmt.Errorf("opening audit log: %w", err)
		}
		a.auditor = fa
		logger.Info("audit logging enabled", slog.String("path", cfg.AuditLog))
	}

	db, err := connect(cfg, logger)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	a.db = db

	return a, nil
}

// validationService wires the dry-run engine with the given report sink.
func (a *app) validationService(reporter port.Reporter) *service.ValidationService {
	executor := neo4jdb.NewExplainOnlyExecutor(a.db.executor)
	validator := service.NewDryRunValidator(executor, service.DryRunOptions{
		StrictProperties:       a.cfg.StrictProperties,
		CheckMultiLabeledNodes: a.cfg.CheckMultiLabeledNodes,
	}, a.logger)

	return service.NewValidationService(a.db.conn, validator, a.resolver, a.auditor, reporter, a.logger, a.tracer, a.inst)
}

func (a *app) runInfo() port.RunInfo {
	return port.RunInfo{
		Target:   redactURI(a.cfg.URI),
		Database: a.cfg.Database,
	}
}

func (a *app) close(ctx context.Context) {
	if a.db != nil {
		if err := a.db.close(ctx); err != nil {
			a.logger.Warn("closing neo4j driver", slog.String("error.message", err.Error()))
		}
	}
	if err := a.auditor.Close(); err != nil {
		a.logger.Warn("closing audit log", slog.String("error.message", err.Error()))
	}
	if err := a.otel.Shutdown(ctx); err != nil {
		a.logger.Warn("shutting down telemetry", slog.String("error.message", err.Error()))
	}
}
