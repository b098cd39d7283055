package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/tailorbase/backend/internal/domain/notification"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmbeddedRenderer implements notification.TemplateRenderer from the HTML
// templates compiled into the binary
type EmbeddedRenderer struct {
	templates *template.Template
}

// NewEmbeddedRenderer parses the embedded template set
func NewEmbeddedRenderer() (*EmbeddedRenderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &EmbeddedRenderer{templates: templates}, nil
}

// Render fills the named template with data
func (r *EmbeddedRenderer) Render(name string, data any) (string, error) {
	tmpl := r.templates.Lookup(name + ".html")
	if tmpl == nil {
		return "", fmt.Errorf("unknown mail template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail template %q: %w", name, err)
	}
	return buf.String(), nil
}

// Ensure EmbeddedRenderer implements notification.TemplateRenderer
var _ notification.TemplateRenderer = (*EmbeddedRenderer)(nil)
