package main

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alnah/go-assetkit/internal/sass"
)

// stubCompiler echoes the source behind a marker comment. Sources
// containing "@error" fail.
type stubCompiler struct {
	calls atomic.Int32
}

func (c *stubCompiler) Compile(ctx context.Context, req sass.Request) (string, error) {
	c.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.Contains(req.Source, "@error") {
		return "", &sass.CompileError{Path: req.Path, Err: errors.New("stylesheet raised @error")}
	}
	return "/* compiled */\n" + req.Source, nil
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestEnv returns an environment with captured output and a stub
// compiler.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:         func() time.Time { return fixedNow },
		Stdout:      &stdout,
		Stderr:      &stderr,
		LookPath:    func(string) (string, error) { return "", errors.New("not found") },
		SassVersion: func(string) (string, error) { return "", errors.New("not called") },
		Compiler:    &stubCompiler{},
		plainLogs:   true,
	}
	return env, &stdout, &stderr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const demoConfig = `title: Demo Site
baseurl: /blog
plugins:
  demo:
    name: Demo Theme
    assets_path: vendor/demo
`

// newTestSite creates a site with one plugin bundling a stylesheet and a
// script, and returns its source directory.
func newTestSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "_config.yml"), demoConfig)
	writeFile(t, filepath.Join(dir, "vendor", "demo", "stylesheets", "main.scss"), "body { color: red; }\n")
	writeFile(t, filepath.Join(dir, "vendor", "demo", "javascripts", "app.js"), "---\n---\nconsole.log('{{ site.title }}');\n")
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// waitFor polls cond until it holds or five seconds pass.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met within 5s")
}

// freeAddr returns a loopback address with a port that was free a moment ago.
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}
