package docgen

import "context"

// evaluate resolves a single placeholder expression to a string. Missing
// columns, unknown config/translation keys, unresolved references, and
// formula failures all degrade to an empty substitution; only query
// execution (handled by the placeholder resolver) is fatal.
func (r *Renderer) evaluate(ctx context.Context, expr Expression, sc *scope) string {
	switch expr.Kind {
	case ExprInput:
		v, ok := sc.inputValue(expr.Column)
		if !ok {
			r.logger().Debugf("unresolved input column %q", expr.Column)
			return ""
		}
		return stringify(v)

	case ExprConfig:
		if r.Config == nil {
			return ""
		}
		v, ok := r.Config.Lookup(expr.App, expr.Key)
		if !ok {
			return ""
		}
		return v

	case ExprTranslate:
		if r.Translator == nil {
			return ""
		}
		v, ok := r.Translator.Lookup(expr.App, expr.Key)
		if !ok {
			return ""
		}
		return v

	case ExprFormula:
		if r.Formula == nil {
			return ""
		}
		v, err := r.Formula.Evaluate(ctx, expr.Formula, sc.formulaRow())
		if err != nil {
			r.logger().Errorf("formula %q failed: %v", expr.Formula, err)
			return ""
		}
		return v

	case ExprData:
		if expr.Aggregate != "" {
			name := expr.Placeholder
			if name == "" {
				name = sc.currentOwner()
			}
			rows, ok := sc.resultSet(name)
			if !ok {
				r.logger().Debugf("unresolved aggregate reference %q", name)
				return ""
			}
			return Aggregate(expr.Aggregate, columnValues(rows, expr.Column))
		}
		v, ok := sc.rowValue(expr.Placeholder, expr.Column)
		if !ok {
			r.logger().Debugf("unresolved data reference %s.%s", expr.Placeholder, expr.Column)
			return ""
		}
		return stringify(v)

	case ExprFile:
		if expr.Key != "name" {
			return ""
		}
		return sc.fileValue()

	case ExprNamed:
		v, ok := sc.block(expr.Placeholder)
		if !ok {
			r.logger().Debugf("unresolved named placeholder %q", expr.Placeholder)
			return ""
		}
		return v
	}
	return ""
}

// renderString substitutes every placeholder token in a template against
// the given scope. Plain text substitution; no HTML escaping is applied.
func (r *Renderer) renderString(ctx context.Context, tpl string, sc *scope) string {
	segments := scanTemplate(tpl)
	var out []byte
	for _, seg := range segments {
		if !seg.token {
			out = append(out, seg.literal...)
			continue
		}
		out = append(out, r.evaluate(ctx, seg.expr, sc)...)
	}
	return string(out)
}
