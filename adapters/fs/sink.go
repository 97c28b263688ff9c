// Package docgenfs provides filesystem collaborators for go-docgen: a Sink
// writing finished documents into a directory and a Loader reading template
// bodies referenced by template_path.
package docgenfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-docgen/docgen"
)

// Sink writes rendered documents under a base directory. Overwrite
// semantics; no atomic rename, no retry.
type Sink struct {
	Dir string
}

// Write emits one finished document.
func (s Sink) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := resolvePath(s.Dir, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return docgen.NewError(docgen.KindWrite, "create output directory failed", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return docgen.NewError(docgen.KindWrite, fmt.Sprintf("write %q failed", name), err)
	}
	return nil
}

// Loader reads template bodies from a base directory.
type Loader struct {
	Dir string
}

// Load returns the template body at the path.
func (l Loader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := resolvePath(l.Dir, path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", docgen.NewError(docgen.KindNotFound, fmt.Sprintf("template %q not found", path), err)
	}
	return string(data), nil
}

// resolvePath joins name under dir and rejects traversal outside it.
func resolvePath(dir, name string) (string, error) {
	if name == "" {
		return "", docgen.NewError(docgen.KindValidation, "name is required", nil)
	}
	if dir == "" {
		dir = "."
	}
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", docgen.NewError(docgen.KindValidation, fmt.Sprintf("invalid name %q", name), nil)
	}
	return filepath.Join(dir, cleaned), nil
}

var (
	_ docgen.Sink           = Sink{}
	_ docgen.TemplateLoader = Loader{}
)
