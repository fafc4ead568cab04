package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileResult_AllPassed(t *testing.T) {
	r := NewFileResult("q.cypher", Stages{
		Syntax:     PassedStage(CheckMethodDryRun),
		Schema:     PassedStage(CheckMethodDryRun),
		Properties: PassedStage(CheckMethodDryRun),
	})

	assert.True(t, r.Valid)
	require.NotNil(t, r.Schema.Score)
	assert.Equal(t, 1.0, *r.Schema.Score)
	assert.Equal(t, CheckMethodDryRun, r.Syntax.Metadata["method"])
}

func TestNewFileResult_SyntaxFailureForcesSkipped(t *testing.T) {
	// Even if a strategy claims the later stages passed, a failed syntax
	// stage overrides them.
	r := NewFileResult("q.cypher", Stages{
		Syntax:     FailedStage("Invalid input 'MATCHH'"),
		Schema:     PassedStage(CheckMethodDryRun),
		Properties: PassedStage(CheckMethodDryRun),
	})

	assert.False(t, r.Valid)
	assert.Equal(t, "Invalid input 'MATCHH'", r.Syntax.Metadata["error"])
	for _, st := range []StageResult{r.Schema, r.Properties} {
		assert.False(t, st.OK)
		assert.Nil(t, st.Score)
		assert.Equal(t, map[string]any{"skipped": true}, st.Metadata)
	}
}

func TestNewFileResult_ValidIsConjunction(t *testing.T) {
	pass := PassedStage(CheckMethodDryRun)
	fail := StageResult{OK: false, Metadata: map[string]any{}}

	tests := []struct {
		name   string
		stages Stages
		want   bool
	}{
		{"all ok", Stages{pass, pass, pass}, true},
		{"schema failed", Stages{pass, fail, pass}, false},
		{"properties failed", Stages{pass, pass, fail}, false},
		{"syntax failed", Stages{fail, pass, pass}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewFileResult("q.cypher", tt.stages)
			assert.Equal(t, tt.want, r.Valid)
			assert.Equal(t, r.Syntax.OK && r.Schema.OK && r.Properties.OK, r.Valid)
		})
	}
}

func TestPassedStage_ScoresAreIndependent(t *testing.T) {
	a := PassedStage("x")
	b := PassedStage("x")
	*a.Score = 0.5
	assert.Equal(t, 1.0, *b.Score)
}
