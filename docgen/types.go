package docgen

import "context"

// Row is a single result record, mapping column name to a scalar value.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Orientation selects the page orientation for rasterized output.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Filter is a single field condition in a query specification. String values
// may carry placeholder tokens; they are resolved against the enclosing
// render scope before the query executes.
type Filter struct {
	Field string `json:"field"`
	Op    string `json:"op,omitempty"`
	Value any    `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

// FilterGroup is a node in the query filter tree. Conditions and nested
// groups combine with AND unless Or is set.
type FilterGroup struct {
	Or      bool          `json:"or,omitempty"`
	Filters []Filter      `json:"filters,omitempty"`
	Groups  []FilterGroup `json:"groups,omitempty"`
}

// Empty reports whether the group holds no conditions at any depth.
func (g FilterGroup) Empty() bool {
	if len(g.Filters) > 0 {
		return false
	}
	for _, child := range g.Groups {
		if !child.Empty() {
			return false
		}
	}
	return true
}

// Sort describes a sort directive.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// QuerySpec describes a data placeholder query: object type, column list,
// and filter tree.
type QuerySpec struct {
	Resource string      `json:"resource"`
	Columns  []string    `json:"columns,omitempty"`
	Filters  FilterGroup `json:"filters,omitempty"`
	Sort     []Sort      `json:"sort,omitempty"`
	Limit    int         `json:"limit,omitempty"`
}

// PlaceholderDefinition declares a named, queryable, row-iterating
// sub-template. Definitions nest recursively via Placeholders.
type PlaceholderDefinition struct {
	Name                 string                            `json:"-"`
	Query                QuerySpec                         `json:"query"`
	RowTemplate          string                            `json:"row_template,omitempty"`
	RowTemplateIfEmpty   string                            `json:"row_template_if_empty,omitempty"`
	OuterTemplate        string                            `json:"outer_template,omitempty"`
	OuterTemplateIfEmpty string                            `json:"outer_template_if_empty,omitempty"`
	Placeholders         map[string]*PlaceholderDefinition `json:"data_placeholders,omitempty"`
}

// ExportColumn declares a column of the export-mode table.
type ExportColumn struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

// ExportConfig configures the export-mode tabular dump: a header/footer
// shell around a single table built from the full result set, plus a filter
// legend listing active criteria.
type ExportConfig struct {
	Query   QuerySpec      `json:"query"`
	Columns []ExportColumn `json:"columns"`
	Title   string         `json:"title,omitempty"`
	Header  string         `json:"header,omitempty"`
	Footer  string         `json:"footer,omitempty"`
	Layout  string         `json:"layout,omitempty"`
}

// DocumentConfig is the configuration surface of a document action. It is
// loaded once and treated as immutable for the action's lifetime.
type DocumentConfig struct {
	Name             string                            `json:"name"`
	Template         string                            `json:"template,omitempty"`
	TemplatePath     string                            `json:"template_path,omitempty"`
	Filename         string                            `json:"filename,omitempty"`
	DataPlaceholders map[string]*PlaceholderDefinition `json:"data_placeholders,omitempty"`
	Orientation      Orientation                       `json:"orientation,omitempty"`
	CreateAsHTML     bool                              `json:"create_as_html,omitempty"`
	Downloadable     bool                              `json:"downloadable,omitempty"`
	Source           string                            `json:"source,omitempty"`
	Export           *ExportConfig                     `json:"export,omitempty"`
}

// OutputUnit is one rendered document body with its resolved file name.
type OutputUnit struct {
	ID       string
	Filename string
	Body     string
}

// DataSource executes a fully resolved query specification and returns an
// ordered result set.
type DataSource interface {
	Query(ctx context.Context, spec QuerySpec) ([]Row, error)
}

// ConfigStore looks up external configuration values.
type ConfigStore interface {
	Lookup(app, key string) (string, bool)
}

// Translator looks up translated strings.
type Translator interface {
	Lookup(app, key string) (string, bool)
}

// FormulaEngine evaluates a formula expression bound to a row context.
type FormulaEngine interface {
	Evaluate(ctx context.Context, expression string, row Row) (string, error)
}

// PDFExternalAssetsPolicy controls how external assets are handled during
// rasterization.
type PDFExternalAssetsPolicy string

const (
	PDFExternalAssetsUnspecified PDFExternalAssetsPolicy = ""
	PDFExternalAssetsAllow       PDFExternalAssetsPolicy = "allow"
	PDFExternalAssetsBlock       PDFExternalAssetsPolicy = "block"
)

// PDFOptions configures PDF rasterization for headless engines.
type PDFOptions struct {
	PageSize             string
	Landscape            *bool
	PrintBackground      *bool
	Scale                float64
	MarginTop            string
	MarginBottom         string
	MarginLeft           string
	MarginRight          string
	PreferCSSPageSize    *bool
	BaseURL              string
	ExternalAssetsPolicy PDFExternalAssetsPolicy
}

// Rasterizer renders an HTML document to a binary format (PDF).
type Rasterizer interface {
	Render(ctx context.Context, html []byte, opts PDFOptions) ([]byte, error)
}

// Sink writes a finished output unit. Overwrite semantics; no atomic rename
// is assumed and writes are not retried.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) error
}

// TemplateLoader loads template bodies referenced by path.
type TemplateLoader interface {
	Load(ctx context.Context, path string) (string, error)
}

// LayoutEngine renders a named layout around export-mode content.
type LayoutEngine interface {
	Execute(name string, data map[string]any) (string, error)
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
