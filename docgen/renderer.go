package docgen

import (
	"context"
	"errors"
	"fmt"
)

// Renderer is the top-level template renderer: it walks the main template,
// dispatches placeholder tokens to the expression evaluator and the data
// placeholder resolver, and produces one body per output unit.
type Renderer struct {
	Source     DataSource
	Config     ConfigStore
	Translator Translator
	Formula    FormulaEngine
	Layout     LayoutEngine
	Logger     Logger

	IDGenerator func() string
}

func (r *Renderer) logger() Logger {
	if r.Logger == nil {
		return NopLogger{}
	}
	return r.Logger
}

// Render resolves a document configuration against the supplied input rows
// and returns the rendered output units.
//
// Output cardinality follows the filename template: when it references
// row-scoped placeholders the renderer emits one unit per input row,
// otherwise a single aggregate unit. A failed unit aborts only itself;
// remaining units still render and the per-unit errors are joined into the
// returned error.
func (r *Renderer) Render(ctx context.Context, doc DocumentConfig, input []Row) ([]OutputUnit, error) {
	if r == nil || r.Source == nil {
		return nil, NewError(KindValidation, "renderer requires a data source", nil)
	}
	if doc.Template == "" && doc.Export == nil {
		return nil, NewError(KindValidation, "document template is required", nil)
	}
	normalizeDefinitions(doc.DataPlaceholders)

	units := 1
	perRow := doc.Export == nil && len(input) > 1 && hasRowScopedTokens(doc.Filename)
	if perRow {
		units = len(input)
	}

	var (
		out  []OutputUnit
		errs []error
	)
	for i := 0; i < units; i++ {
		row := firstRow(input)
		if perRow {
			row = input[i]
		}
		unit, err := r.renderUnit(ctx, doc, row)
		if err != nil {
			r.logger().Errorf("render unit %d of document %q failed: %v", i, doc.Name, err)
			errs = append(errs, err)
			continue
		}
		out = append(out, unit)
	}
	return out, errors.Join(errs...)
}

// renderUnit renders one output unit: the filename resolves first so the
// body can reference it through the file namespace.
func (r *Renderer) renderUnit(ctx context.Context, doc DocumentConfig, row Row) (OutputUnit, error) {
	root := newRootScope(row)
	root.filename = r.resolveFilename(ctx, doc, root)

	var (
		body string
		err  error
	)
	if doc.Export != nil {
		body, err = r.renderExportBody(ctx, doc, root)
	} else {
		body, err = r.renderBody(ctx, doc, root)
	}
	if err != nil {
		return OutputUnit{}, err
	}

	return OutputUnit{
		ID:       r.nextID(),
		Filename: root.filename,
		Body:     body,
	}, nil
}

// renderBody resolves every referenced top-level data placeholder into the
// root scope, then substitutes the main template.
func (r *Renderer) renderBody(ctx context.Context, doc DocumentConfig, root *scope) (string, error) {
	referenced := referencedPlaceholders(doc.Template)
	for _, def := range sortedDefinitions(doc.DataPlaceholders) {
		if !referenced[def.Name] {
			continue
		}
		block, err := r.resolvePlaceholder(ctx, def, root, 1)
		if err != nil {
			return "", err
		}
		root.setBlock(def.Name, block)
	}
	return r.renderString(ctx, doc.Template, root), nil
}

func (r *Renderer) nextID() string {
	if r.IDGenerator == nil {
		return ""
	}
	return r.IDGenerator()
}

func firstRow(input []Row) Row {
	if len(input) == 0 {
		return nil
	}
	return input[0]
}

// ValidateDocument checks a document configuration before registration.
func ValidateDocument(doc DocumentConfig) error {
	if doc.Name == "" {
		return NewError(KindValidation, "document name is required", nil)
	}
	if doc.Template == "" && doc.TemplatePath == "" && doc.Export == nil {
		return NewError(KindValidation, "document template is required", nil)
	}
	if doc.Export != nil && len(doc.Export.Columns) == 0 {
		return NewError(KindValidation, "export mode requires columns", nil)
	}
	switch doc.Orientation {
	case "", OrientationPortrait, OrientationLandscape:
	default:
		return NewError(KindValidation, fmt.Sprintf("unknown orientation %q", doc.Orientation), nil)
	}
	return nil
}
