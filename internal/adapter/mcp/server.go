package mcp

import (
	"log/slog"

	"github.com/guillermoBallester/cyphercheck/internal/core/port"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/trace"
)

// NewServer creates an MCPServer with the validation tools and logging hooks.
func NewServer(version string, validator Validator, source port.QuerySource, info port.RunInfo, logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithHooks(ToolCallHooks(logger, tracer, inst)),
	)

	RegisterTools(s, validator, source, info)

	return s
}
