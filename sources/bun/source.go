// Package docgenbun provides a Bun-backed data source for go-docgen,
// translating resolved query specs into SELECT statements.
package docgenbun

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-docgen/docgen"
)

// Source executes query specs against a Bun database.
type Source struct {
	DB *bun.DB
}

// New creates a Bun-backed data source.
func New(db *bun.DB) *Source {
	return &Source{DB: db}
}

// Query runs the spec and returns the result set in source order.
func (s *Source) Query(ctx context.Context, spec docgen.QuerySpec) ([]docgen.Row, error) {
	if s == nil || s.DB == nil {
		return nil, docgen.NewError(docgen.KindInternal, "bun source database not configured", nil)
	}
	if spec.Resource == "" {
		return nil, docgen.NewError(docgen.KindValidation, "query resource is required", nil)
	}

	q := s.DB.NewSelect().Table(spec.Resource)
	if len(spec.Columns) > 0 {
		q = q.Column(spec.Columns...)
	}
	if !spec.Filters.Empty() {
		group := spec.Filters
		q = q.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return applyFilterGroup(sq, group)
		})
	}
	for _, sort := range spec.Sort {
		if sort.Desc {
			q = q.OrderExpr("? DESC", bun.Ident(sort.Field))
		} else {
			q = q.OrderExpr("? ASC", bun.Ident(sort.Field))
		}
	}
	if spec.Limit > 0 {
		q = q.Limit(spec.Limit)
	}

	rows, err := q.Rows(ctx)
	if err != nil {
		return nil, docgen.NewError(docgen.KindQuery, fmt.Sprintf("query %q failed", spec.Resource), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, docgen.NewError(docgen.KindQuery, "result columns unavailable", err)
	}

	var out []docgen.Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, docgen.NewError(docgen.KindQuery, "row scan failed", err)
		}
		row := make(docgen.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, docgen.NewError(docgen.KindQuery, fmt.Sprintf("query %q failed", spec.Resource), err)
	}
	return out, nil
}

func applyFilterGroup(q *bun.SelectQuery, group docgen.FilterGroup) *bun.SelectQuery {
	for _, f := range group.Filters {
		q = applyFilter(q, f, group.Or)
	}
	for _, child := range group.Groups {
		if child.Empty() {
			continue
		}
		child := child
		fn := func(sq *bun.SelectQuery) *bun.SelectQuery {
			return applyFilterGroup(sq, child)
		}
		if group.Or {
			q = q.WhereGroup(" OR ", fn)
		} else {
			q = q.WhereGroup(" AND ", fn)
		}
	}
	return q
}

func applyFilter(q *bun.SelectQuery, f docgen.Filter, or bool) *bun.SelectQuery {
	apply := func(query string, args ...any) *bun.SelectQuery {
		if or {
			return q.WhereOr(query, args...)
		}
		return q.Where(query, args...)
	}

	op := f.Op
	if op == "" {
		op = "eq"
	}

	switch op {
	case "eq":
		return apply("? = ?", bun.Ident(f.Field), f.Value)
	case "ne":
		return apply("? != ?", bun.Ident(f.Field), f.Value)
	case "gt":
		return apply("? > ?", bun.Ident(f.Field), f.Value)
	case "gte":
		return apply("? >= ?", bun.Ident(f.Field), f.Value)
	case "lt":
		return apply("? < ?", bun.Ident(f.Field), f.Value)
	case "lte":
		return apply("? <= ?", bun.Ident(f.Field), f.Value)
	case "like":
		return apply("? LIKE ?", bun.Ident(f.Field), f.Value)
	case "in":
		return apply("? IN (?)", bun.Ident(f.Field), bun.In(filterValues(f.Value)))
	case "null":
		return apply("? IS NULL", bun.Ident(f.Field))
	case "notnull":
		return apply("? IS NOT NULL", bun.Ident(f.Field))
	}
	// Unknown operators fall back to equality.
	return apply("? = ?", bun.Ident(f.Field), f.Value)
}

func filterValues(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case string:
		parts := strings.Split(v, ",")
		out := make([]any, 0, len(parts))
		for _, part := range parts {
			out = append(out, strings.TrimSpace(part))
		}
		return out
	default:
		return []any{value}
	}
}

func normalizeValue(value any) any {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}

var _ docgen.DataSource = (*Source)(nil)
