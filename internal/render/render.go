package render

import (
	"errors"
	"fmt"

	"github.com/alnah/go-assetkit/internal/frontmatter"
)

// ErrRender indicates the template pass failed.
var ErrRender = errors.New("template rendering failed")

// TemplateEngine expands a template body against a payload.
type TemplateEngine interface {
	// Render expands body. name identifies the source in error messages.
	Render(name, body string, payload Payload) (string, error)
}

// Renderer applies the front-matter gated templating pass.
type Renderer struct {
	engine TemplateEngine
}

// NewRenderer creates a Renderer backed by engine.
func NewRenderer(engine TemplateEngine) *Renderer {
	return &Renderer{engine: engine}
}

// Render returns doc's body, expanded through the engine if and only if doc
// had front matter. payload is called only in that case.
// Engine failures are wrapped with ErrRender and never retried.
func (r *Renderer) Render(name string, doc frontmatter.Document, payload func() Payload) (string, error) {
	if !doc.HasFrontMatter() {
		return doc.Body, nil
	}

	out, err := r.engine.Render(name, doc.Body, payload())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return out, nil
}
