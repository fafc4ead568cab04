package neo4jdb_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/guillermoBallester/cyphercheck/internal/adapter/neo4jdb"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
)

const testPassword = "cyphercheck-test"

func setupTestDB(t *testing.T) *neo4jdb.Driver {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcneo4j.Run(ctx, "neo4j:5",
		tcneo4j.WithAdminPassword(testPassword),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	boltURL, err := container.BoltUrl(ctx)
	require.NoError(t, err)

	driver, err := neo4jdb.NewDriver(boltURL, "neo4j", testPassword, "cyphercheck-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close(ctx) })

	require.NoError(t, driver.VerifyConnectivity(ctx))
	return driver
}

func countMemories(t *testing.T, driver *neo4jdb.Driver) int64 {
	t.Helper()
	ctx := context.Background()
	session := driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: "neo4j"})
	defer func() { _ = session.Close(ctx) }()

	res, err := session.Run(ctx, "MATCH (m:Memory) RETURN count(m) AS n", nil)
	require.NoError(t, err)
	rec, err := res.Single(ctx)
	require.NoError(t, err)
	n, _ := rec.Get("n")
	return n.(int64)
}

func TestExplain_Integration(t *testing.T) {
	driver := setupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	exec := neo4jdb.NewExplainOnlyExecutor(neo4jdb.NewExecutor(driver, "neo4j", logger))
	ctx := context.Background()

	t.Run("well-formed write query is planned, not executed", func(t *testing.T) {
		plan, err := exec.Execute(ctx,
			"MERGE (m:Memory {id: $id}) SET m.title = $title RETURN m.id AS id",
			map[string]any{"id": "mem_test_123", "title": "Test Memory"},
		)
		require.NoError(t, err)
		assert.NotEmpty(t, plan.Operator)
		assert.Equal(t, int64(0), countMemories(t, driver), "EXPLAIN must not create nodes")
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := exec.Execute(ctx, "MATCHH (n) RETURN n", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SyntaxError")
	})

	t.Run("nested map and list parameters", func(t *testing.T) {
		_, err := exec.Execute(ctx,
			"UNWIND $batch AS row MATCH (m:Memory {id: row.memoryId}) SET m.lastOutcome = row.outcome, m.env = $env.os",
			map[string]any{
				"batch": []any{map[string]any{"memoryId": "a", "outcome": "success"}},
				"env":   map[string]any{"os": "linux"},
			},
		)
		require.NoError(t, err)
	})
}

func TestVerifyConnectivity_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	driver, err := neo4jdb.NewDriver("bolt://127.0.0.1:1", "neo4j", "nope", "")
	require.NoError(t, err)
	defer func() { _ = driver.Close(context.Background()) }()

	err = driver.VerifyConnectivity(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verifying connectivity")
}
