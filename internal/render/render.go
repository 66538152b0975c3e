// Package render expands template sources into file content.
//
// Built-in templates are embedded in the binary. A project can override any
// of them by placing <id>.tmpl files in the directory configured under
// templates.dir; files there replace the built-in template of the same id.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"text/template"
)

// ErrUnknownTemplate indicates a template id with no built-in or override.
var ErrUnknownTemplate = errors.New("unknown template")

//go:embed templates/*.tmpl
var builtin embed.FS

const ext = ".tmpl"

// Renderer turns a template id and data bag into file content.
type Renderer interface {
	Render(id string, data map[string]any) ([]byte, error)
}

// TemplateRenderer implements Renderer with text/template.
type TemplateRenderer struct {
	set *template.Template
}

// New parses the built-in templates and, if overrideDir is set, the
// overrides found there.
func New(overrideDir string) (*TemplateRenderer, error) {
	set, err := template.New("structurex").Option("missingkey=error").ParseFS(builtin, "templates/*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in templates: %w", err)
	}

	if overrideDir != "" {
		dir := os.DirFS(overrideDir)
		matches, err := fs.Glob(dir, "*"+ext)
		if err != nil {
			return nil, fmt.Errorf("failed to list template overrides: %w", err)
		}
		if len(matches) > 0 {
			if set, err = set.ParseFS(dir, matches...); err != nil {
				return nil, fmt.Errorf("failed to parse template overrides in %s: %w", overrideDir, err)
			}
		}
	}

	return &TemplateRenderer{set: set}, nil
}

// Render executes the template registered under id.
func (r *TemplateRenderer) Render(id string, data map[string]any) ([]byte, error) {
	tmpl := r.set.Lookup(id + ext)
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %q: %w", id, err)
	}
	return buf.Bytes(), nil
}

// IDs returns the ids of every available template.
func (r *TemplateRenderer) IDs() []string {
	var ids []string
	for _, t := range r.set.Templates() {
		if id, ok := strings.CutSuffix(t.Name(), ext); ok && id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
