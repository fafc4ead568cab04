package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
)

// Source lists query templates from a single directory (non-recursive).
type Source struct {
	dir string
	ext string
}

func NewSource(dir string) *Source {
	return &Source{dir: dir, ext: domain.QueryFileExt}
}

// Dir returns the directory being listed.
func (s *Source) Dir() string { return s.dir }

// List returns every regular file with the query extension, sorted by name.
// A missing directory is a configuration error; an empty one is not an
// error here and is left to the caller.
func (s *Source) List(ctx context.Context) ([]domain.QueryFile, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory not found: %s", domain.ErrConfiguration, s.dir)
		}
		return nil, fmt.Errorf("reading query directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", domain.ErrConfiguration, s.dir)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading query directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != s.ext {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make([]domain.QueryFile, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("reading %s: file is not valid UTF-8", name)
		}
		files = append(files, domain.QueryFile{Name: name, Text: string(data)})
	}

	return files, nil
}
