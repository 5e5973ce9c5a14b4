package render

import (
	"github.com/osteele/liquid"
)

// LiquidEngine renders templates with the Liquid language.
type LiquidEngine struct {
	engine *liquid.Engine
}

// NewLiquidEngine creates a Liquid engine with the standard filters and tags.
func NewLiquidEngine() *LiquidEngine {
	return &LiquidEngine{engine: liquid.NewEngine()}
}

// RegisterFilter adds a filter available to every template rendered by e.
// fn follows the osteele/liquid filter conventions: its first argument is
// the piped value. Register filters before the first Render call.
func (e *LiquidEngine) RegisterFilter(name string, fn any) {
	e.engine.RegisterFilter(name, fn)
}

// Render parses and renders body in one pass.
func (e *LiquidEngine) Render(name, body string, payload Payload) (string, error) {
	out, err := e.engine.ParseAndRenderString(body, map[string]any(payload))
	if err != nil {
		return "", err
	}
	return out, nil
}

// Compile-time interface check.
var _ TemplateEngine = (*LiquidEngine)(nil)
