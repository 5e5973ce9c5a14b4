package sass

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/bep/godartsass/v2"
)

// DefaultBinary is the Dart Sass executable looked up on PATH.
const DefaultBinary = "sass"

// DartSassOptions configures a DartSass compiler.
type DartSassOptions struct {
	Binary  string        // Dart Sass executable (default "sass")
	Timeout time.Duration // per-compilation timeout (0 = godartsass default)

	// OnLog receives @warn and @debug output from stylesheets.
	OnLog func(level, message string)
}

// DartSass compiles through a long-running Dart Sass process.
// It is safe for concurrent use.
type DartSass struct {
	transpiler *godartsass.Transpiler
}

// NewDartSass starts the Dart Sass process.
func NewDartSass(opts DartSassOptions) (*DartSass, error) {
	binary := opts.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	gopts := godartsass.Options{
		DartSassEmbeddedFilename: binary,
		Timeout:                  opts.Timeout,
	}
	if opts.OnLog != nil {
		gopts.LogEventHandler = func(e godartsass.LogEvent) {
			opts.OnLog(logLevel(e.Type), e.Message)
		}
	}

	t, err := godartsass.Start(gopts)
	if err != nil {
		return nil, fmt.Errorf("starting %s: %w", binary, err)
	}
	return &DartSass{transpiler: t}, nil
}

// Version asks binary for its implementation name and version, for
// example "dart-sass 1.77.5".
func Version(binary string) (string, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	v, err := godartsass.Version(binary)
	if err != nil {
		return "", fmt.Errorf("querying %s version: %w", binary, err)
	}
	return v.ImplementationName + " " + v.ImplementationVersion, nil
}

func logLevel(t godartsass.LogEventType) string {
	if t == godartsass.LogEventTypeDebug {
		return "debug"
	}
	return "warn"
}

// Compile runs one compilation. godartsass has no context support, so the
// call runs in a goroutine and ctx only bounds how long the caller waits.
func (d *DartSass) Compile(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	args := godartsass.Args{
		Source:       req.Source,
		URL:          fileURL(req.Path),
		IncludePaths: req.IncludePaths,
		SourceSyntax: sourceSyntax(req.Syntax),
		OutputStyle:  outputStyle(req.Style),
	}

	type result struct {
		css string
		err error
	}

	done := make(chan result, 1)

	go func() {
		res, err := d.transpiler.Execute(args)
		if err != nil {
			done <- result{err: &CompileError{Path: req.Path, Err: err}}
			return
		}
		done <- result{css: res.CSS}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.css, r.err
	}
}

// Close stops the Dart Sass process.
func (d *DartSass) Close() error {
	return d.transpiler.Close()
}

func fileURL(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func sourceSyntax(s Syntax) godartsass.SourceSyntax {
	switch s {
	case SyntaxSass:
		return godartsass.SourceSyntaxSASS
	case SyntaxCSS:
		return godartsass.SourceSyntaxCSS
	default:
		return godartsass.SourceSyntaxSCSS
	}
}

func outputStyle(s OutputStyle) godartsass.OutputStyle {
	if s == StyleCompressed {
		return godartsass.OutputStyleCompressed
	}
	return godartsass.OutputStyleExpanded
}

// Compile-time interface check.
var _ Compiler = (*DartSass)(nil)
