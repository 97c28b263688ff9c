// Package docgenformula provides an expr-lang backed formula engine for
// go-docgen. Formula tokens compile against an environment built from the
// current row context plus any registered helper functions.
package docgenformula

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/goliatone/go-docgen/docgen"
)

// Engine evaluates formula expressions with expr-lang.
type Engine struct {
	// Funcs adds helper functions to the expression environment. Row
	// columns shadow helpers on name collision.
	Funcs map[string]any
}

// New creates a formula engine with the default helpers.
func New() *Engine {
	return &Engine{
		Funcs: map[string]any{
			"coalesce": func(values ...any) any {
				for _, v := range values {
					if v != nil && fmt.Sprint(v) != "" {
						return v
					}
				}
				return ""
			},
		},
	}
}

// Evaluate compiles and runs an expression against the row context.
func (e *Engine) Evaluate(ctx context.Context, expression string, row docgen.Row) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	env := make(map[string]any, len(row)+len(e.Funcs))
	for name, fn := range e.Funcs {
		env[name] = fn
	}
	for col, value := range row {
		env[col] = value
	}

	program, err := expr.Compile(expression, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return "", docgen.NewError(docgen.KindFormula, "formula compile failed", err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return "", docgen.NewError(docgen.KindFormula, "formula evaluation failed", err)
	}
	if out == nil {
		return "", nil
	}
	return fmt.Sprint(out), nil
}

var _ docgen.FormulaEngine = (*Engine)(nil)
