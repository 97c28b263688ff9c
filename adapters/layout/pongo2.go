// Package docgenlayout provides a pongo2-backed layout engine for the
// export-mode document shell. Layouts receive the generated table, legend,
// header, and footer fragments; since pongo2 autoescapes, layout authors
// insert the generated HTML with the safe filter, e.g. {{ table|safe }}.
package docgenlayout

import (
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-docgen/docgen"
)

// Engine renders named pongo2 layouts from in-memory sources.
type Engine struct {
	mu      sync.Mutex
	sources map[string]string
	cache   map[string]*pongo2.Template
}

// New creates a layout engine over named template sources.
func New(sources map[string]string) *Engine {
	return &Engine{
		sources: sources,
		cache:   make(map[string]*pongo2.Template),
	}
}

// Execute renders the named layout with the supplied data.
func (e *Engine) Execute(name string, data map[string]any) (string, error) {
	tpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	out, err := tpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", docgen.NewError(docgen.KindInternal, fmt.Sprintf("layout %q failed", name), err)
	}
	return out, nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.cache[name]; ok {
		return tpl, nil
	}
	src, ok := e.sources[name]
	if !ok {
		return nil, docgen.NewError(docgen.KindNotFound, fmt.Sprintf("layout %q not found", name), nil)
	}
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return nil, docgen.NewError(docgen.KindValidation, fmt.Sprintf("layout %q parse failed", name), err)
	}
	e.cache[name] = tpl
	return tpl, nil
}

var _ docgen.LayoutEngine = (*Engine)(nil)
