package assetkit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alnah/go-assetkit/internal/render"
	"github.com/alnah/go-assetkit/internal/sass"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeCompiler prefixes the source with a marker comment. Requests whose
// source contains "@error" fail.
type fakeCompiler struct {
	calls atomic.Int32

	mu   sync.Mutex
	reqs []sass.Request
}

func (f *fakeCompiler) Compile(ctx context.Context, req sass.Request) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Contains(req.Source, "@error") {
		return "", &sass.CompileError{Path: req.Path, Err: errors.New("stylesheet raised @error")}
	}
	return "/* compiled " + filepath.Base(req.Path) + " */\n" + req.Source, nil
}

func (f *fakeCompiler) lastRequest() sass.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

// countingEngine records calls and echoes the body with a prefix.
type countingEngine struct {
	calls atomic.Int32
	err   error
}

func (e *countingEngine) Render(name, body string, payload render.Payload) (string, error) {
	e.calls.Add(1)
	if e.err != nil {
		return "", e.err
	}
	return "rendered:" + body, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

type fixture struct {
	source   string // site source
	assets   string // plugin asset root
	compiler *fakeCompiler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	return &fixture{
		source:   filepath.Join(root, "site"),
		assets:   filepath.Join(root, "plugins", "demo"),
		compiler: &fakeCompiler{},
	}
}

// bundle writes a file shipped by the plugin.
func (f *fixture) bundle(t *testing.T, group, filename, content string) string {
	t.Helper()
	p := filepath.Join(f.assets, group, filepath.FromSlash(filename))
	writeFile(t, p, content)
	return p
}

// override writes a user override for the demo plugin.
func (f *fixture) override(t *testing.T, group, filename, content string) string {
	t.Helper()
	p := filepath.Join(f.source, DefaultCustomDir, "demo", group, filepath.FromSlash(filename))
	writeFile(t, p, content)
	return p
}

func (f *fixture) site(t *testing.T, opts ...SiteOption) *Site {
	t.Helper()
	base := []SiteOption{WithSource(f.source), WithCompiler(f.compiler)}
	s := NewSite(append(base, opts...)...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func (f *fixture) plugin(t *testing.T, disable ...string) *Plugin {
	t.Helper()
	p, err := NewPlugin("demo", PluginConfig{Name: "Demo", AssetsPath: f.assets, Disable: disable})
	if err != nil {
		t.Fatalf("NewPlugin() error: %v", err)
	}
	return p
}

func sassOptionsForMissingBinary() sass.DartSassOptions {
	return sass.DartSassOptions{Binary: filepath.Join(os.TempDir(), "assetkit-no-such-sass")}
}
