package fixtures

import (
	"fmt"
	"os"
	"strings"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a parameter override file:
//
//	fixtures:
//	  upsert_memory.cypher:
//	    id: mem_local_1
//	    tags: [a, b]
type File struct {
	Fixtures map[string]map[string]any `yaml:"fixtures"`
}

// LoadFromFile reads a YAML fixture file and returns the registry it describes.
// Keys without the query extension get it appended.
func LoadFromFile(path string) (domain.ParameterRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixture YAML from memory.
func Parse(data []byte) (domain.ParameterRegistry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture YAML: %w", err)
	}

	if err := validate(&f); err != nil {
		return nil, fmt.Errorf("validating fixtures: %w", err)
	}

	reg := make(domain.ParameterRegistry, len(f.Fixtures))
	for name, params := range f.Fixtures {
		key := normalizeName(name)
		if _, dup := reg[key]; dup {
			return nil, fmt.Errorf("validating fixtures: %q is listed twice", key)
		}
		set := make(domain.ParameterSet, len(params))
		for k, v := range params {
			set[k] = normalizeValue(v)
		}
		reg[key] = set
	}
	return reg, nil
}

func validate(f *File) error {
	for name, params := range f.Fixtures {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("fixtures contains an empty key")
		}
		for k := range params {
			if k == "" {
				return fmt.Errorf("fixtures[%q] contains an empty parameter name", name)
			}
		}
	}
	return nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if !strings.HasSuffix(name, domain.QueryFileExt) {
		name += domain.QueryFileExt
	}
	return name
}

// normalizeValue turns YAML-decoded values into shapes the Bolt driver can
// pack: nested maps must have string keys.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = normalizeValue(inner)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return v
	}
}
