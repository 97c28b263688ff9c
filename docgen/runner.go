package docgen

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ContentTypePDF and ContentTypeHTML identify the emitted document formats.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// RenderRequest asks for one document action execution.
type RenderRequest struct {
	Document string
	Input    []Row
}

// DocumentResult captures one emitted output unit.
type DocumentResult struct {
	ID           string
	Filename     string
	ContentType  string
	Bytes        int64
	Downloadable bool
}

// Runner orchestrates document actions: it resolves the registered
// configuration, renders every output unit, rasterizes to PDF unless the
// document is configured as raw HTML, and emits each finished unit through
// the sink. Emission happens strictly after a unit's render completes; a
// failed unit never corrupts the others in the batch.
type Runner struct {
	Definitions *DefinitionRegistry
	Sources     *DataSourceRegistry
	Source      DataSource
	Config      ConfigStore
	Translator  Translator
	Formula     FormulaEngine
	Layout      LayoutEngine
	Rasterizer  Rasterizer
	Sink        Sink
	Templates   TemplateLoader
	Logger      Logger
	PDF         PDFOptions
	IDGenerator func() string
}

// NewRunner creates a runner with default registries and UUID unit IDs.
func NewRunner() *Runner {
	return &Runner{
		Definitions: NewDefinitionRegistry(),
		Sources:     NewDataSourceRegistry(),
		Logger:      NopLogger{},
		IDGenerator: uuid.NewString,
	}
}

// Run executes a document render request and returns one result per
// emitted output unit. Units that fail to render, rasterize, or write are
// reported through the returned error without aborting their siblings.
func (r *Runner) Run(ctx context.Context, req RenderRequest) ([]DocumentResult, error) {
	if r == nil {
		return nil, AsGoError(NewError(KindInternal, "runner is nil", nil))
	}
	if r.Definitions == nil {
		return nil, AsGoError(NewError(KindInternal, "runner registries are not configured", nil))
	}
	if r.Logger == nil {
		r.Logger = NopLogger{}
	}
	if r.IDGenerator == nil {
		r.IDGenerator = uuid.NewString
	}

	doc, err := r.Definitions.Resolve(req.Document)
	if err != nil {
		return nil, AsGoError(err)
	}

	source, err := r.resolveSource(doc)
	if err != nil {
		return nil, AsGoError(err)
	}

	if doc.Template == "" && doc.TemplatePath != "" {
		if r.Templates == nil {
			return nil, AsGoError(NewError(KindValidation, "template loader is required for template_path", nil))
		}
		body, err := r.Templates.Load(ctx, doc.TemplatePath)
		if err != nil {
			return nil, AsGoError(NewError(KindNotFound, "template load failed", err))
		}
		doc.Template = body
	}

	renderer := &Renderer{
		Source:      source,
		Config:      r.Config,
		Translator:  r.Translator,
		Formula:     r.Formula,
		Layout:      r.Layout,
		Logger:      r.Logger,
		IDGenerator: r.IDGenerator,
	}

	units, renderErr := renderer.Render(ctx, doc, req.Input)

	var (
		results []DocumentResult
		errs    []error
	)
	if renderErr != nil {
		errs = append(errs, renderErr)
	}

	for _, unit := range units {
		result, err := r.emit(ctx, doc, unit)
		if err != nil {
			r.Logger.Errorf("emit %q failed: %v", unit.Filename, err)
			errs = append(errs, err)
			continue
		}
		results = append(results, result)
	}

	if len(errs) > 0 {
		return results, AsGoError(errors.Join(errs...))
	}
	return results, nil
}

// emit rasterizes (or passes through) one fully rendered unit and writes it
// through the sink.
func (r *Runner) emit(ctx context.Context, doc DocumentConfig, unit OutputUnit) (DocumentResult, error) {
	data := []byte(unit.Body)
	contentType := ContentTypeHTML

	if !doc.CreateAsHTML {
		if r.Rasterizer == nil {
			return DocumentResult{}, NewError(KindRaster, "rasterizer is not configured", nil)
		}
		pdf, err := r.Rasterizer.Render(ctx, data, r.pdfOptions(doc))
		if err != nil {
			return DocumentResult{}, NewError(KindRaster, "rasterization failed", err)
		}
		data = pdf
		contentType = ContentTypePDF
	}

	if r.Sink != nil {
		if err := r.Sink.Write(ctx, unit.Filename, data); err != nil {
			return DocumentResult{}, NewError(KindWrite, "write failed", err)
		}
	}

	r.Logger.Debugf("emitted %q (%d bytes)", unit.Filename, len(data))
	return DocumentResult{
		ID:           unit.ID,
		Filename:     unit.Filename,
		ContentType:  contentType,
		Bytes:        int64(len(data)),
		Downloadable: doc.Downloadable,
	}, nil
}

func (r *Runner) pdfOptions(doc DocumentConfig) PDFOptions {
	opts := r.PDF
	switch doc.Orientation {
	case OrientationLandscape:
		opts.Landscape = boolPtr(true)
	case OrientationPortrait:
		opts.Landscape = boolPtr(false)
	}
	return opts
}

func (r *Runner) resolveSource(doc DocumentConfig) (DataSource, error) {
	if doc.Source != "" {
		if r.Sources == nil {
			return nil, NewError(KindNotFound, "data source registry is not configured", nil)
		}
		source, ok := r.Sources.Resolve(doc.Source)
		if !ok {
			return nil, NewError(KindNotFound, "data source "+doc.Source+" not registered", nil)
		}
		return source, nil
	}
	if r.Source == nil {
		return nil, NewError(KindValidation, "data source is required", nil)
	}
	return r.Source, nil
}

func boolPtr(value bool) *bool {
	return &value
}
