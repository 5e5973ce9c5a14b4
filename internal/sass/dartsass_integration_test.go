//go:build integration

package sass

// Notes:
// - Requires the Dart Sass binary ("sass" on PATH, or ASSETKIT_SASS_BINARY).
//   Tests skip when it is missing rather than fail.

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func startDartSass(t *testing.T) *DartSass {
	t.Helper()

	binary := os.Getenv("ASSETKIT_SASS_BINARY")
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		t.Skipf("dart sass binary %q not found", binary)
	}

	d, err := NewDartSass(DartSassOptions{Binary: binary})
	if err != nil {
		t.Fatalf("NewDartSass() error: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDartSass_CompileWithIncludePaths(t *testing.T) {
	d := startDartSass(t)

	userDir := t.TempDir()
	themeDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(themeDir, "_vars.scss"), []byte("$c: blue;"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "_vars.scss"), []byte("$c: red;"), 0644); err != nil {
		t.Fatal(err)
	}

	css, err := d.Compile(context.Background(), Request{
		Path:         filepath.Join(themeDir, "main.scss"),
		Source:       "@import 'vars';\na { color: $c; }",
		Syntax:       SyntaxSCSS,
		IncludePaths: []string{userDir, themeDir},
	})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if !strings.Contains(css, "red") {
		t.Errorf("user partial should shadow theme partial, got: %s", css)
	}
}

func TestDartSass_IndentedSyntax(t *testing.T) {
	d := startDartSass(t)

	css, err := d.Compile(context.Background(), Request{
		Path:   "style.sass",
		Source: "a\n  color: green\n",
		Syntax: SyntaxSass,
		Style:  StyleCompressed,
	})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if strings.TrimSpace(css) != "a{color:green}" {
		t.Errorf("Compile() = %q", css)
	}
}

func TestDartSass_CompileError(t *testing.T) {
	d := startDartSass(t)

	_, err := d.Compile(context.Background(), Request{
		Path:   "broken.scss",
		Source: "a { color: $undefined; }",
		Syntax: SyntaxSCSS,
	})
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("Compile() error = %v, want ErrCompile", err)
	}
	if !strings.Contains(err.Error(), "broken.scss") {
		t.Errorf("error should name the source: %v", err)
	}
}
