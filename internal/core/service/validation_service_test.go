package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/guillermoBallester/cyphercheck/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// --- mock Connectivity ---

type mockConn struct {
	calls int
	err   error
}

func (m *mockConn) VerifyConnectivity(context.Context) error {
	m.calls++
	return m.err
}

// --- fake executor that requires every $param in the text to be bound ---

type paramCheckingExecutor struct {
	calls []string
}

func (e *paramCheckingExecutor) Execute(_ context.Context, cypher string, params map[string]any) (*domain.PlanSummary, error) {
	e.calls = append(e.calls, cypher)
	if strings.Contains(cypher, "MATCHH") {
		return nil, errors.New("Neo.ClientError.Statement.SyntaxError: Invalid input 'MATCHH'")
	}
	for _, field := range strings.FieldsFunc(cypher, func(r rune) bool {
		return !(r == '$' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		if strings.HasPrefix(field, "$") {
			name := strings.TrimPrefix(field, "$")
			if _, ok := params[name]; !ok {
				return nil, errors.New("Neo.ClientError.Statement.ParameterMissing: Expected parameter(s): " + name)
			}
		}
	}
	return &domain.PlanSummary{Operator: "ProduceResults@neo4j"}, nil
}

// --- recording Reporter ---

type recordingReporter struct {
	events  []string
	info    port.RunInfo
	results []domain.FileResult
	summary *domain.Summary
}

func (r *recordingReporter) Start(info port.RunInfo) {
	r.events = append(r.events, "start")
	r.info = info
}

func (r *recordingReporter) FileValidated(res domain.FileResult) {
	r.events = append(r.events, "file:"+res.FileName)
	r.results = append(r.results, res)
}

func (r *recordingReporter) Finish(s domain.Summary) {
	r.events = append(r.events, "finish")
	r.summary = &s
}

// --- recording QueryAuditor ---

type recordingAuditor struct {
	entries []port.AuditEntry
}

func (a *recordingAuditor) Record(_ context.Context, e port.AuditEntry) { a.entries = append(a.entries, e) }
func (a *recordingAuditor) Close() error                               { return nil }

// --- recording Instrumentation ---

type countingInstrumentation struct {
	port.NoopInstrumentation
	validated, failed, bypassed int
}

func (c *countingInstrumentation) IncrementFilesValidated(context.Context) { c.validated++ }
func (c *countingInstrumentation) IncrementFilesFailed(context.Context)    { c.failed++ }
func (c *countingInstrumentation) IncrementFilesBypassed(context.Context)  { c.bypassed++ }

// --- helpers ---

type fixture struct {
	conn     *mockConn
	exec     *paramCheckingExecutor
	reporter *recordingReporter
	auditor  *recordingAuditor
	inst     *countingInstrumentation
	svc      *ValidationService
}

func newFixture(registry domain.ParameterRegistry) *fixture {
	f := &fixture{
		conn:     &mockConn{},
		exec:     &paramCheckingExecutor{},
		reporter: &recordingReporter{},
		auditor:  &recordingAuditor{},
		inst:     &countingInstrumentation{},
	}
	validator := NewDryRunValidator(f.exec, DryRunOptions{}, testLogger())
	f.svc = NewValidationService(f.conn, validator, domain.NewResolver(registry), f.auditor, f.reporter, testLogger(), nil, f.inst)
	return f
}

// --- tests ---

func TestRun_WellFormedFilePasses(t *testing.T) {
	f := newFixture(domain.ParameterRegistry{
		"upsert_memory.cypher": {"id": "mem_test_123", "title": "Test Memory"},
	})
	files := []domain.QueryFile{{
		Name: "upsert_memory.cypher",
		Text: "MERGE (m:Memory {id: $id}) SET m.title = $title",
	}}

	report, err := f.svc.Run(context.Background(), files, port.RunInfo{Database: "neo4j"})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Valid)
	assert.Equal(t, domain.ExitOK, report.ExitCode)
	assert.Equal(t, 1, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Total)
	assert.NotEmpty(t, report.RunID)
}

func TestRun_MissingParameterFails(t *testing.T) {
	f := newFixture(domain.ParameterRegistry{
		"upsert_memory.cypher": {"id": "mem_test_123"},
	})
	files := []domain.QueryFile{{
		Name: "upsert_memory.cypher",
		Text: "MERGE (m:Memory {id: $id}) SET m.title = $title",
	}}

	report, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.NoError(t, err)

	res := report.Results[0]
	assert.False(t, res.Valid)
	assert.False(t, res.Syntax.OK)
	assert.Contains(t, res.Syntax.Metadata["error"], "ParameterMissing")
	assert.Nil(t, res.Schema.Score)
	assert.Nil(t, res.Properties.Score)
	assert.Equal(t, true, res.Schema.Metadata["skipped"])
	assert.Equal(t, domain.ExitFailure, report.ExitCode)
}

func TestRun_UnknownFileResolvesToEmptyParams(t *testing.T) {
	f := newFixture(domain.ParameterRegistry{})
	files := []domain.QueryFile{
		{Name: "static.cypher", Text: "MATCH (n) RETURN count(n)"},
		{Name: "needs_param.cypher", Text: "MATCH (n {id: $id}) RETURN n"},
	}

	report, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.NoError(t, err)

	assert.True(t, report.Results[0].Valid)
	assert.False(t, report.Results[1].Valid)
	assert.Equal(t, domain.ExitFailure, report.ExitCode)
}

func TestRun_SchemaFileIsBypassed(t *testing.T) {
	f := newFixture(domain.DefaultRegistry())
	files := []domain.QueryFile{{
		Name: "schema.cypher",
		Text: "this is not even cypher;\nCREATE CONSTRAINT broken",
	}}

	report, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.NoError(t, err)

	res := report.Results[0]
	assert.True(t, res.Valid)
	assert.True(t, res.Bypassed)
	for _, st := range []domain.StageResult{res.Syntax, res.Schema, res.Properties} {
		require.NotNil(t, st.Score)
		assert.Equal(t, 1.0, *st.Score)
	}
	assert.Empty(t, f.exec.calls, "bypassed files never reach the executor")
	assert.Empty(t, f.auditor.entries)
	assert.Equal(t, 1, f.inst.bypassed)
	assert.Equal(t, domain.ExitOK, report.ExitCode)
}

func TestRun_EmptyFileSet(t *testing.T) {
	f := newFixture(domain.DefaultRegistry())

	report, err := f.svc.Run(context.Background(), nil, port.RunInfo{})
	require.ErrorIs(t, err, domain.ErrNoQueryFiles)
	assert.Nil(t, report)
	assert.Equal(t, 0, f.conn.calls, "no database contact for an empty file set")
	assert.Empty(t, f.reporter.events)
}

func TestRun_ConnectivityFailureAborts(t *testing.T) {
	f := newFixture(domain.DefaultRegistry())
	f.conn.err = errors.New("ConnectivityError: connection refused")
	files := []domain.QueryFile{{Name: "a.cypher", Text: "RETURN 1"}}

	report, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.ErrorIs(t, err, domain.ErrConnectivity)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, report)
	assert.Empty(t, f.exec.calls)
	assert.Empty(t, f.reporter.events)
}

func TestRun_OrderAndProgress(t *testing.T) {
	f := newFixture(domain.ParameterRegistry{})
	files := []domain.QueryFile{
		{Name: "c.cypher", Text: "RETURN 1"},
		{Name: "a.cypher", Text: "MATCHH (n) RETURN n"},
		{Name: "schema.cypher", Text: "CREATE CONSTRAINT x;"},
		{Name: "b.cypher", Text: "RETURN 2"},
	}

	report, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "file:c.cypher", "file:a.cypher", "file:schema.cypher", "file:b.cypher", "finish"}, f.reporter.events)
	assert.Equal(t, []string{"RETURN 1", "MATCHH (n) RETURN n", "RETURN 2"}, f.exec.calls)
	assert.Equal(t, []domain.FileOutcome{
		{FileName: "c.cypher", Valid: true},
		{FileName: "a.cypher", Valid: false},
		{FileName: "schema.cypher", Valid: true},
		{FileName: "b.cypher", Valid: true},
	}, report.Summary.Outcomes)
	assert.Equal(t, 3, report.Summary.Passed)
	assert.Equal(t, 4, report.Summary.Total)
	require.NotNil(t, f.reporter.summary)
	assert.Equal(t, report.Summary, *f.reporter.summary)

	assert.Equal(t, report.RunID, f.reporter.info.RunID)
	assert.Equal(t, 4, f.reporter.info.FileCount)
	assert.Equal(t, domain.CheckMethodDryRun, f.reporter.info.Method)

	assert.Equal(t, 3, f.inst.validated)
	assert.Equal(t, 1, f.inst.failed)
	assert.Equal(t, 1, f.inst.bypassed)
}

func TestRun_StageInvariantHolds(t *testing.T) {
	f := newFixture(domain.ParameterRegistry{})
	files := []domain.QueryFile{
		{Name: "ok.cypher", Text: "RETURN 1"},
		{Name: "typo.cypher", Text: "MATCHH (n) RETURN n"},
		{Name: "param.cypher", Text: "RETURN $x"},
		{Name: "schema.cypher", Text: ""},
	}

	report, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.NoError(t, err)

	for _, res := range report.Results {
		if !res.Syntax.OK {
			assert.False(t, res.Schema.OK, res.FileName)
			assert.False(t, res.Properties.OK, res.FileName)
			assert.Nil(t, res.Schema.Score, res.FileName)
			assert.Nil(t, res.Properties.Score, res.FileName)
		}
		assert.Equal(t, res.Syntax.OK && res.Schema.OK && res.Properties.OK, res.Valid, res.FileName)
	}
}

func TestRun_Idempotent(t *testing.T) {
	f := newFixture(domain.DefaultRegistry())
	files := []domain.QueryFile{
		{Name: "feedback_batch.cypher", Text: "UNWIND $batch AS b MATCH (m {id: b.memoryId}) SET m.t = $nowIso"},
		{Name: "broken.cypher", Text: "RETURN $missing"},
		{Name: "schema.cypher", Text: "CREATE CONSTRAINT x;"},
	}

	first, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.NoError(t, err)
	second, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.ExitCode, second.ExitCode)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRun_AuditsEachDryRun(t *testing.T) {
	f := newFixture(domain.ParameterRegistry{"a.cypher": {"x": 1}})
	files := []domain.QueryFile{
		{Name: "a.cypher", Text: "RETURN $x"},
		{Name: "b.cypher", Text: "RETURN $y"},
	}

	report, err := f.svc.Run(context.Background(), files, port.RunInfo{})
	require.NoError(t, err)

	require.Len(t, f.auditor.entries, 2)
	assert.Equal(t, report.RunID, f.auditor.entries[0].RunID)
	assert.Equal(t, "a.cypher", f.auditor.entries[0].File)
	assert.Equal(t, "RETURN $x", f.auditor.entries[0].Query)
	assert.Equal(t, 1, f.auditor.entries[0].ParamCount)
	assert.NoError(t, f.auditor.entries[0].Err)

	assert.Equal(t, "b.cypher", f.auditor.entries[1].File)
	assert.Equal(t, 0, f.auditor.entries[1].ParamCount)
	require.Error(t, f.auditor.entries[1].Err)
	assert.Contains(t, f.auditor.entries[1].Err.Error(), "ParameterMissing")
}

func TestValidateOne_ExplicitParams(t *testing.T) {
	f := newFixture(domain.ParameterRegistry{"q.cypher": {"x": 1}})

	res := f.svc.ValidateOne(context.Background(),
		domain.QueryFile{Name: "q.cypher", Text: "RETURN $y"},
		domain.ParameterSet{"y": 2},
	)
	assert.True(t, res.Valid)

	res = f.svc.ValidateOne(context.Background(),
		domain.QueryFile{Name: "q.cypher", Text: "RETURN $y"},
		nil,
	)
	assert.False(t, res.Valid, "nil params fall back to the registry entry, which lacks y")
	assert.Equal(t, 0, f.conn.calls, "single validation does not re-check connectivity")
}

func TestRun_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	validator := NewDryRunValidator(&paramCheckingExecutor{}, DryRunOptions{}, testLogger())
	svc := NewValidationService(&mockConn{}, validator, domain.NewResolver(nil), nil, nil, testLogger(), tp.Tracer("test"), nil)

	_, err := svc.Run(context.Background(), []domain.QueryFile{
		{Name: "ok.cypher", Text: "RETURN 1"},
		{Name: "bad.cypher", Text: "MATCHH"},
	}, port.RunInfo{})
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	for i, want := range []struct {
		file  string
		valid bool
	}{{"ok.cypher", true}, {"bad.cypher", false}} {
		assert.Equal(t, "ValidationService.validateFile", spans[i].Name)
		assert.Contains(t, spans[i].Attributes, attribute.String("file.name", want.file))
		assert.Contains(t, spans[i].Attributes, attribute.Bool("validation.valid", want.valid))
	}
}
