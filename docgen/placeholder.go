package docgen

import (
	"context"
	"sort"
	"strings"
)

// maxPlaceholderDepth bounds nesting of data placeholder definitions so a
// misconfigured recursive tree fails with a diagnosable error instead of
// exhausting the stack.
const maxPlaceholderDepth = 32

// resolvePlaceholder executes a data placeholder definition against the
// enclosing scope and returns its fully rendered block.
//
// The definition's query spec is resolved against the enclosing scope
// first, executed exactly once, and the result set is recorded on the
// enclosing scope so aggregate references stay visible to the caller.
// Row rendering is depth first: nested placeholders resolve before the row
// template that references them.
func (r *Renderer) resolvePlaceholder(ctx context.Context, def *PlaceholderDefinition, sc *scope, depth int) (string, error) {
	if depth > maxPlaceholderDepth {
		return "", NewPlaceholderError(KindValidation, def.Name, "placeholder nesting too deep", nil)
	}

	spec := r.resolveQuerySpec(ctx, def.Query, sc)
	rows, err := r.Source.Query(ctx, spec)
	if err != nil {
		return "", NewPlaceholderError(KindQuery, def.Name, "query failed", err)
	}
	sc.setResult(def.Name, rows)

	if len(rows) == 0 {
		return r.renderEmptyBlock(ctx, def, sc), nil
	}

	rendered := make([]string, 0, len(rows))
	for _, row := range rows {
		rowScope := sc.push(def.Name, row)
		for _, nested := range sortedDefinitions(def.Placeholders) {
			block, err := r.resolvePlaceholder(ctx, nested, rowScope, depth+1)
			if err != nil {
				return "", err
			}
			rowScope.setBlock(nested.Name, block)
		}
		rendered = append(rendered, r.renderString(ctx, def.RowTemplate, rowScope))
	}

	// Source order from the query is authoritative.
	rowBlock := strings.Join(rendered, "")
	if def.OuterTemplate == "" {
		return rowBlock, nil
	}
	return r.renderOuterBlock(ctx, def.OuterTemplate, def.Name, rowBlock, sc), nil
}

// renderEmptyBlock handles an empty result set: the if-empty row template
// becomes the row block, and the if-empty outer template (or the plain row
// block) becomes the final block, both resolved against the enclosing
// context only.
func (r *Renderer) renderEmptyBlock(ctx context.Context, def *PlaceholderDefinition, sc *scope) string {
	rowBlock := ""
	if def.RowTemplateIfEmpty != "" {
		rowBlock = r.renderString(ctx, def.RowTemplateIfEmpty, sc)
	}
	if def.OuterTemplateIfEmpty == "" {
		return rowBlock
	}
	return r.renderOuterBlock(ctx, def.OuterTemplateIfEmpty, def.Name, rowBlock, sc)
}

// renderOuterBlock substitutes the concatenated row block into an outer
// template at the insertion token matching the definition's own name.
func (r *Renderer) renderOuterBlock(ctx context.Context, outer, name, rowBlock string, sc *scope) string {
	outerScope := sc.push("", nil)
	outerScope.setBlock(name, rowBlock)
	return r.renderString(ctx, outer, outerScope)
}

// resolveQuerySpec renders placeholder tokens inside the query spec against
// the enclosing scope, so filters can reference enclosing rows, e.g.
// "order number = [#~input:ORDERNO#]". The supplied spec is not mutated.
func (r *Renderer) resolveQuerySpec(ctx context.Context, spec QuerySpec, sc *scope) QuerySpec {
	out := spec
	out.Resource = r.renderString(ctx, spec.Resource, sc)
	out.Filters = r.resolveFilterGroup(ctx, spec.Filters, sc)
	return out
}

func (r *Renderer) resolveFilterGroup(ctx context.Context, group FilterGroup, sc *scope) FilterGroup {
	out := FilterGroup{Or: group.Or}
	if len(group.Filters) > 0 {
		out.Filters = make([]Filter, len(group.Filters))
		for i, f := range group.Filters {
			resolved := f
			if s, ok := f.Value.(string); ok {
				resolved.Value = r.renderString(ctx, s, sc)
			}
			out.Filters[i] = resolved
		}
	}
	if len(group.Groups) > 0 {
		out.Groups = make([]FilterGroup, len(group.Groups))
		for i, child := range group.Groups {
			out.Groups[i] = r.resolveFilterGroup(ctx, child, sc)
		}
	}
	return out
}

// sortedDefinitions returns sibling definitions in stable name order so
// nested resolution is deterministic.
func sortedDefinitions(defs map[string]*PlaceholderDefinition) []*PlaceholderDefinition {
	if len(defs) == 0 {
		return nil
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*PlaceholderDefinition, 0, len(names))
	for _, name := range names {
		out = append(out, defs[name])
	}
	return out
}

// normalizeDefinitions stamps map keys as definition names across the tree.
func normalizeDefinitions(defs map[string]*PlaceholderDefinition) {
	for name, def := range defs {
		if def == nil {
			continue
		}
		def.Name = name
		normalizeDefinitions(def.Placeholders)
	}
}
