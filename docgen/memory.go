package docgen

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemorySource serves query specs from in-memory tables (test/dev only).
// Filters are matched against stringified cell values; eq, ne, gt, gte,
// lt, lte, like, and in are supported.
type MemorySource struct {
	mu     sync.RWMutex
	tables map[string][]Row
}

// NewMemorySource creates an in-memory data source.
func NewMemorySource() *MemorySource {
	return &MemorySource{tables: make(map[string][]Row)}
}

// Load replaces the rows of a resource.
func (s *MemorySource) Load(resource string, rows []Row) {
	s.mu.Lock()
	s.tables[resource] = rows
	s.mu.Unlock()
}

// Query filters the resource rows in load order.
func (s *MemorySource) Query(ctx context.Context, spec QuerySpec) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	rows, ok := s.tables[spec.Resource]
	s.mu.RUnlock()
	if !ok {
		return nil, NewError(KindQuery, fmt.Sprintf("resource %q not found", spec.Resource), nil)
	}

	var out []Row
	for _, row := range rows {
		if !matchGroup(row, spec.Filters) {
			continue
		}
		out = append(out, row.Clone())
		if spec.Limit > 0 && len(out) >= spec.Limit {
			break
		}
	}
	return out, nil
}

func matchGroup(row Row, group FilterGroup) bool {
	if group.Empty() {
		return true
	}

	if group.Or {
		for _, f := range group.Filters {
			if matchFilter(row, f) {
				return true
			}
		}
		for _, child := range group.Groups {
			if !child.Empty() && matchGroup(row, child) {
				return true
			}
		}
		return false
	}

	for _, f := range group.Filters {
		if !matchFilter(row, f) {
			return false
		}
	}
	for _, child := range group.Groups {
		if !matchGroup(row, child) {
			return false
		}
	}
	return true
}

func matchFilter(row Row, f Filter) bool {
	have := stringify(row[f.Field])
	want := stringify(f.Value)

	op := f.Op
	if op == "" {
		op = "eq"
	}

	switch op {
	case "eq":
		return have == want
	case "ne":
		return have != want
	case "like":
		return strings.Contains(strings.ToLower(have), strings.ToLower(want))
	case "in":
		for _, part := range strings.Split(want, ",") {
			if have == strings.TrimSpace(part) {
				return true
			}
		}
		return false
	case "gt", "gte", "lt", "lte":
		return compareOrdered(row[f.Field], f.Value, op)
	}
	return false
}

func compareOrdered(have, want any, op string) bool {
	hn, hok := parseNumeric(have)
	wn, wok := parseNumeric(want)
	var cmp int
	if hok && wok {
		switch {
		case hn < wn:
			cmp = -1
		case hn > wn:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(stringify(have), stringify(want))
	}
	switch op {
	case "gt":
		return cmp > 0
	case "gte":
		return cmp >= 0
	case "lt":
		return cmp < 0
	case "lte":
		return cmp <= 0
	}
	return false
}

// MemoryLookup backs the config and translation collaborators with a
// static map keyed by "app.key" (test/dev only).
type MemoryLookup struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryLookup creates an in-memory lookup.
func NewMemoryLookup(values map[string]string) *MemoryLookup {
	if values == nil {
		values = make(map[string]string)
	}
	return &MemoryLookup{values: values}
}

// Set stores a value for an app alias and key.
func (l *MemoryLookup) Set(app, key, value string) {
	l.mu.Lock()
	l.values[app+"."+key] = value
	l.mu.Unlock()
}

// Lookup resolves a value for an app alias and key.
func (l *MemoryLookup) Lookup(app, key string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.values[app+"."+key]
	return v, ok
}

// MemorySink collects written documents in memory (test/dev only).
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink creates an in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Write stores the document bytes under the name, overwriting.
func (s *MemorySink) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return NewError(KindValidation, "sink name is required", nil)
	}
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	s.files[name] = copied
	s.mu.Unlock()
	return nil
}

// File returns a stored document.
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	return data, ok
}

// Names lists stored document names.
func (s *MemorySink) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return names
}

// MemoryTemplates loads template bodies from a static map (test/dev only).
type MemoryTemplates struct {
	Templates map[string]string
}

// Load returns the template body for a path.
func (t MemoryTemplates) Load(ctx context.Context, path string) (string, error) {
	_ = ctx
	body, ok := t.Templates[path]
	if !ok {
		return "", NewError(KindNotFound, fmt.Sprintf("template %q not found", path), nil)
	}
	return body, nil
}
