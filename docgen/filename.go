package docgen

import (
	"context"
	"strings"
)

const defaultFilename = "document"

// resolveFilename renders the filename template against the unit's root
// scope and normalizes the extension for the configured output format.
func (r *Renderer) resolveFilename(ctx context.Context, doc DocumentConfig, root *scope) string {
	name := strings.TrimSpace(r.renderString(ctx, doc.Filename, root))
	if name == "" {
		name = doc.Name
	}
	if name == "" {
		name = defaultFilename
	}
	return ensureExtension(name, doc.CreateAsHTML)
}

func ensureExtension(name string, asHTML bool) string {
	ext := "pdf"
	if asHTML {
		ext = "html"
	}
	if strings.HasSuffix(strings.ToLower(name), "."+ext) {
		return name
	}
	return name + "." + ext
}
