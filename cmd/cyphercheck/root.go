package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/guillermoBallester/cyphercheck/internal/adapter/filesystem"
	"github.com/guillermoBallester/cyphercheck/internal/adapter/report"
	"github.com/guillermoBallester/cyphercheck/internal/config"
	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "cyphercheck",
		Short: "Dry-run Cypher query templates against a live Neo4j database",
		Long: "cyphercheck runs every .cypher template in a directory under EXPLAIN with dummy " +
			"parameters, so syntax, schema and parameter errors surface without executing anything.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, &flags)
		},
	}
	flags.register(cmd.PersistentFlags())

	cmd.AddCommand(newValidateCmd(&flags))
	cmd.AddCommand(newMCPCmd(&flags))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newValidateCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every template in the query directory (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, flags)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cyphercheck %s\n", version)
		},
	}
}

func loadConfig(cmd *cobra.Command, flags *cliFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.overrides(cmd.Flags()))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
}

func runValidate(cmd *cobra.Command, flags *cliFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	logger.Info("starting cyphercheck",
		slog.String("version", version),
		slog.String("db.system", "neo4j"),
		slog.String("server.address", redactURI(cfg.URI)),
		slog.String("db.namespace", cfg.Database),
		slog.String("dir", cfg.QueryDir),
	)

	files, err := filesystem.NewSource(cfg.QueryDir).List(ctx)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	svc := a.validationService(newReporter(cfg.Format, cmd.OutOrStdout(), logger))
	rep, err := svc.Run(ctx, files, a.runInfo())
	switch {
	case errors.Is(err, domain.ErrNoQueryFiles):
		return fmt.Errorf("%w: no %s files found in %s", err, domain.QueryFileExt, cfg.QueryDir)
	case err != nil:
		return err
	}

	if rep.ExitCode != domain.ExitOK {
		return fmt.Errorf("%w: %d of %d files failed: %v",
			domain.ErrValidationFailed, rep.Summary.Total-rep.Summary.Passed, rep.Summary.Total, rep.Summary.Failed())
	}
	return nil
}

func newReporter(format string, w io.Writer, logger *slog.Logger) port.Reporter {
	if format == config.FormatJSON {
		return report.NewJSON(w, logger)
	}
	return report.NewConsole(w)
}
