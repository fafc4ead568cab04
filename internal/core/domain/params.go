package domain

// ParameterSet maps a bind parameter name to its dummy value.
// Values are strings, numbers, booleans, nil, []any/[]string/[]float64
// lists, or nested map[string]any.
type ParameterSet map[string]any

// ParameterRegistry is the read-only fixture table keyed by query filename.
type ParameterRegistry map[string]ParameterSet

// EmbeddingDimensions is the vector length used by the memory embedding index.
const EmbeddingDimensions = 1536

const (
	fixtureNowISO       = "2024-12-30T12:00:00Z"
	fixtureAgentID      = "agent_test"
	fixtureMemoryID     = "mem_test_123"
	fixtureAltMemoryID  = "mem_test_456"
	fixtureHalfLifeSecs = 2592000
)

// Resolver maps a query filename to its dummy parameters.
type Resolver struct {
	registry ParameterRegistry
}

// NewResolver returns a Resolver backed by registry. The registry is copied,
// so later changes by the caller are not observed.
func NewResolver(registry ParameterRegistry) *Resolver {
	own := make(ParameterRegistry, len(registry))
	for name, params := range registry {
		own[name] = params.Clone()
	}
	return &Resolver{registry: own}
}

// Resolve returns a fresh copy of the parameters registered for fileName.
// Unknown filenames resolve to an empty set; the dry-run then surfaces any
// missing parameter as a failure.
func (r *Resolver) Resolve(fileName string) ParameterSet {
	params, ok := r.registry[fileName]
	if !ok {
		return ParameterSet{}
	}
	return params.Clone()
}

// Known reports whether fileName has a registered fixture.
func (r *Resolver) Known(fileName string) bool {
	_, ok := r.registry[fileName]
	return ok
}

// Clone deep-copies the set so callers cannot mutate shared fixtures.
func (p ParameterSet) Clone() ParameterSet {
	if p == nil {
		return ParameterSet{}
	}
	out := make(ParameterSet, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = cloneValue(inner)
		}
		return out
	case ParameterSet:
		return map[string]any(t.Clone())
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = cloneValue(inner)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []float64:
		return append([]float64(nil), t...)
	default:
		return v
	}
}

// Merge returns a registry holding every entry of r, with entries from
// overrides replacing those of the same filename.
func (r ParameterRegistry) Merge(overrides ParameterRegistry) ParameterRegistry {
	out := make(ParameterRegistry, len(r)+len(overrides))
	for name, params := range r {
		out[name] = params.Clone()
	}
	for name, params := range overrides {
		out[name] = params.Clone()
	}
	return out
}

func filledVector(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func fixtureEnv() map[string]any {
	return map[string]any{
		"hash":           "env_hash_123",
		"os":             "macos",
		"distro":         nil,
		"ci":             false,
		"container":      false,
		"filesystem":     "apfs",
		"workspaceMount": nil,
		"nodeVersion":    "20",
		"packageManager": "npm",
		"pmVersion":      "10",
	}
}

// DefaultRegistry returns the built-in fixtures for the agent memory templates.
func DefaultRegistry() ParameterRegistry {
	return ParameterRegistry{
		SchemaFileName: {},
		"upsert_memory.cypher": {
			"id":          fixtureMemoryID,
			"kind":        "semantic",
			"polarity":    "positive",
			"title":       "Test Memory",
			"content":     "Test content",
			"contentHash": "abc123",
			"tags":        []string{"test", "validation"},
			"confidence":  0.9,
			"utility":     0.8,
		},
		"upsert_case.cypher": {
			"caseId":              "case_test_001",
			"title":               "Test Case",
			"summary":             "Test summary",
			"outcome":             "resolved",
			"symptoms":            []string{"symptom1", "symptom2"},
			"env":                 fixtureEnv(),
			"resolvedByMemoryIds": []string{fixtureMemoryID},
			"negativeMemoryIds":   []string{fixtureAltMemoryID},
			"resolvedAtIso":       fixtureNowISO,
		},
		"retrieve_context_bundle.cypher": {
			"agentId":         fixtureAgentID,
			"queryEmbedding":  filledVector(EmbeddingDimensions, 0.1),
			"topK":            5,
			"minScore":        0.7,
			"nowIso":          fixtureNowISO,
			"halfLifeSeconds": fixtureHalfLifeSecs,
			"symptoms":        []string{"symptom1", "symptom2"},
			"tags":            []string{"test"},
			"env":             fixtureEnv(),
			"caseLimit":       5,
			"fixLimit":        8,
			"dontLimit":       6,
		},
		"feedback_batch.cypher": {
			"agentId": fixtureAgentID,
			"batch": []any{
				map[string]any{"memoryId": fixtureMemoryID, "outcome": "success"},
				map[string]any{"memoryId": fixtureAltMemoryID, "outcome": "failure"},
			},
			"nowIso": fixtureNowISO,
		},
		"feedback_co_used_with_batch.cypher": {
			"agentId": fixtureAgentID,
			"batch": []any{
				map[string]any{"memoryId": fixtureMemoryID, "outcome": "success"},
				map[string]any{"memoryId": fixtureAltMemoryID, "outcome": "success"},
			},
			"nowIso": fixtureNowISO,
		},
		"list_memories.cypher": {
			"kind":    nil,
			"limit":   25,
			"agentId": nil,
		},
		"search_memories.cypher": {
			"query":         "test",
			"fulltextIndex": "memoryText",
			"tags":          []string{"test"},
			"kind":          nil,
			"outcome":       nil,
			"scopeRepo":     nil,
			"scopePackage":  nil,
			"scopeModule":   nil,
			"scopeRuntime":  nil,
			"scopeVersions": nil,
			"topK":          20,
		},
		"relate_concepts.cypher": {
			"a":      fixtureMemoryID,
			"b":      fixtureAltMemoryID,
			"weight": 0.5,
		},
		"auto_relate_memory_by_tags.cypher": {
			"id":            fixtureMemoryID,
			"nowIso":        fixtureNowISO,
			"minSharedTags": 2,
			"minWeight":     0.2,
			"maxCandidates": 12,
			"sameKind":      true,
			"samePolarity":  true,
			"allowedKinds":  []string{"semantic", "procedural"},
		},
		"get_memories_by_id.cypher": {
			"ids": []string{fixtureMemoryID, fixtureAltMemoryID},
		},
		"get_memory_graph.cypher": {
			"agentId":          fixtureAgentID,
			"memoryIds":        []string{fixtureMemoryID, fixtureAltMemoryID},
			"includeNodes":     true,
			"includeRelatedTo": false,
		},
		"get_knowledge_graph_by_tags.cypher": {
			"tags":         []string{"test", "validation"},
			"limit":        50,
			"minStrength":  0.0,
			"includeNodes": true,
		},
		"fallback_retrieve_memories.cypher": {
			"prompt":        "test prompt",
			"tags":          []string{"test"},
			"kinds":         []string{"semantic"},
			"fulltextIndex": "memoryText",
			"vectorIndex":   "memoryEmbedding",
			"embedding":     nil,
			"useFulltext":   true,
			"useVector":     false,
			"useTags":       true,
			"fixLimit":      8,
			"dontLimit":     6,
		},
		"list_memory_edges.cypher": {
			"limit":       200,
			"minStrength": 0.0,
		},
	}
}
