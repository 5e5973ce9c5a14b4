package sass

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrCompile indicates the preprocessor rejected a stylesheet.
var ErrCompile = errors.New("sass compilation failed")

// OutputStyle controls the formatting of compiled CSS.
type OutputStyle string

const (
	StyleExpanded   OutputStyle = "expanded"
	StyleCompressed OutputStyle = "compressed"
)

// ParseOutputStyle maps a config value to an OutputStyle.
// Unknown and empty values fall back to StyleExpanded.
func ParseOutputStyle(s string) OutputStyle {
	if strings.EqualFold(strings.TrimSpace(s), string(StyleCompressed)) {
		return StyleCompressed
	}
	return StyleExpanded
}

// Request is one compilation job.
type Request struct {
	Path         string   // entry file, reported in errors and used as the base URL
	Source       string   // entry file content
	Syntax       Syntax   // SyntaxSCSS or SyntaxSass
	IncludePaths []string // searched in order for @use/@import targets
	Style        OutputStyle
}

// Compiler turns Sass into CSS.
type Compiler interface {
	Compile(ctx context.Context, req Request) (string, error)
}

// CompileError carries the entry path of a failed compilation.
// It matches ErrCompile under errors.Is.
type CompileError struct {
	Path string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrCompile, e.Path, e.Err)
}

func (e *CompileError) Unwrap() []error {
	return []error{ErrCompile, e.Err}
}
