package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guillermoBallester/cyphercheck/internal/adapter/filesystem"
	mcpadapter "github.com/guillermoBallester/cyphercheck/internal/adapter/mcp"
	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve validation tools over MCP (stdio)",
		Long: "Start an MCP server on stdin/stdout exposing validate_queries and explain_query, " +
			"so coding assistants can dry-run Cypher templates against the configured database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			logger := newLogger(cmd.ErrOrStderr(), cfg)

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			if err := a.db.conn.VerifyConnectivity(ctx); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
			}
			logger.Info("neo4j reachable",
				slog.String("db.system", "neo4j"),
				slog.String("server.address", redactURI(cfg.URI)),
			)

			s := mcpadapter.NewServer(version,
				a.validationService(nil),
				filesystem.NewSource(cfg.QueryDir),
				a.runInfo(),
				logger, a.tracer, a.inst,
			)

			logger.Info("serving MCP over stdio")
			if err := mcpserver.NewStdioServer(s).Listen(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("stdio server: %w", err)
			}

			logger.Info("shutdown complete")
			return nil
		},
	}
}
