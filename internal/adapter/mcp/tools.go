package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server metadata
const serverName = "cyphercheck"

// Tool argument names
const (
	argQuery      = "query"
	argFileName   = "file_name"
	argParamsJSON = "params_json"
)

// adHocFileName is used for explain_query calls that name no file.
const adHocFileName = "adhoc" + domain.QueryFileExt

// Tool descriptions
const (
	descValidateQueries = "Validate every .cypher template in the configured directory by running it " +
		"under EXPLAIN with dummy parameters against the live Neo4j database. " +
		"Nothing is executed or written. Returns per-file stage results (syntax, schema, properties) " +
		"and a summary. schema.cypher is accepted without a dry-run."

	descExplainQuery = "Dry-run a single Cypher query under EXPLAIN and report whether the database accepts it. " +
		"Parameters come from the fixture registered for file_name, or from params_json when given. " +
		"Use this to check a template before saving it."

	descExplainQueryText     = "The Cypher query text (without the EXPLAIN keyword)"
	descExplainQueryFile     = "Template filename used to look up registered fixture parameters, e.g. upsert_memory.cypher"
	descExplainQueryParamMap = "JSON object of parameters; replaces the registered fixture when present"
)

// Validator is the slice of the validation service the tools depend on.
type Validator interface {
	Run(ctx context.Context, files []domain.QueryFile, info port.RunInfo) (*domain.Report, error)
	ValidateOne(ctx context.Context, f domain.QueryFile, params domain.ParameterSet) domain.FileResult
}

func RegisterTools(s *server.MCPServer, validator Validator, source port.QuerySource, info port.RunInfo) {
	s.AddTool(
		mcp.NewTool("validate_queries",
			mcp.WithDescription(descValidateQueries),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		validateQueriesHandler(validator, source, info),
	)

	s.AddTool(
		mcp.NewTool("explain_query",
			mcp.WithDescription(descExplainQuery),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString(argQuery,
				mcp.Required(),
				mcp.Description(descExplainQueryText),
			),
			mcp.WithString(argFileName,
				mcp.Description(descExplainQueryFile),
			),
			mcp.WithString(argParamsJSON,
				mcp.Description(descExplainQueryParamMap),
			),
		),
		explainQueryHandler(validator),
	)
}

func validateQueriesHandler(validator Validator, source port.QuerySource, info port.RunInfo) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		files, err := source.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list query files: %v", err)), nil
		}

		report, err := validator.Run(ctx, files, info)
		switch {
		case errors.Is(err, domain.ErrNoQueryFiles):
			return mcp.NewToolResultError("no .cypher files found in the query directory"), nil
		case err != nil:
			return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
		}

		data, err := json.Marshal(report)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(data)), nil
	}
}

func explainQueryHandler(validator Validator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		query, ok := args[argQuery].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		name, _ := args[argFileName].(string)
		if name == "" {
			name = adHocFileName
		}

		var params domain.ParameterSet
		if raw, _ := args[argParamsJSON].(string); raw != "" {
			var err error
			if params, err = decodeParams(raw); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("params_json must be a JSON object: %v", err)), nil
			}
		}

		result := validator.ValidateOne(ctx, domain.QueryFile{Name: name, Text: query}, params)

		data, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		if !result.Valid {
			return mcp.NewToolResultError(string(data)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// decodeParams parses a JSON object of query parameters. Integral numbers
// become int64 so the server accepts them where Cypher wants an INTEGER
// (LIMIT, SKIP, range); other numbers become float64.
func decodeParams(raw string) (domain.ParameterSet, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the JSON object")
	}

	params := make(domain.ParameterSet, len(obj))
	for k, v := range obj {
		params[k] = normalizeNumber(v)
	}
	return params, nil
}

func normalizeNumber(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, e := range val {
			val[k] = normalizeNumber(e)
		}
		return val
	case []any:
		for i, e := range val {
			val[i] = normalizeNumber(e)
		}
		return val
	default:
		return v
	}
}
