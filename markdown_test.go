package assetkit

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubConverter fails every conversion.
type stubConverter struct{ err error }

func (c stubConverter) ToHTML(context.Context, string) (string, error) {
	return "", c.err
}

func TestMarkdownAsset_HTML(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bundle(t, GroupPages, "guide.md", "---\ntitle: Plugin <Guide>\n---\n# {{ plugin.name }}\n\nSee [docs](/demo/files/docs.txt).\n")
	site := f.site(t)

	a, err := NewMarkdownAsset(site, f.plugin(t), GroupPages, "guide.md")
	if err != nil {
		t.Fatalf("NewMarkdownAsset() error: %v", err)
	}
	if got, want := a.Destination(), "demo/pages/guide.html"; got != want {
		t.Errorf("Destination() = %q, want %q", got, want)
	}

	page, err := a.HTML(context.Background())
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Plugin &lt;Guide&gt;</title>",
		`<h1 id="demo">Demo</h1>`,
		`<a href="/demo/files/docs.txt">docs</a>`,
		"</head>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("HTML() missing %q in:\n%s", want, page)
		}
	}
}

func TestMarkdownAsset_TitleFallsBackToFilename(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bundle(t, GroupPages, "notes/intro.markdown", "Plain *markdown*.\n")

	a, err := NewMarkdownAsset(f.site(t), f.plugin(t), GroupPages, "notes/intro.markdown")
	if err != nil {
		t.Fatalf("NewMarkdownAsset() error: %v", err)
	}
	page, err := a.HTML(context.Background())
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if !strings.Contains(page, "<title>intro.markdown</title>") {
		t.Errorf("HTML() title not derived from filename:\n%s", page)
	}
	if !strings.Contains(page, "<em>markdown</em>") {
		t.Errorf("HTML() body not converted:\n%s", page)
	}
	if got, want := a.Destination(), "demo/pages/notes/intro.html"; got != want {
		t.Errorf("Destination() = %q, want %q", got, want)
	}
}

func TestMarkdownAsset_ConversionError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bundle(t, GroupPages, "a.md", "# A\n")
	site := f.site(t, WithMarkdownConverter(stubConverter{err: errors.New("converter exploded")}))

	a, err := NewMarkdownAsset(site, f.plugin(t), GroupPages, "a.md")
	if err != nil {
		t.Fatalf("NewMarkdownAsset() error: %v", err)
	}
	if err := a.Add(context.Background()); !errors.Is(err, ErrTemplateRender) {
		t.Errorf("Add() error = %v, want ErrTemplateRender", err)
	}
	if site.StaticFiles().Len() != 0 {
		t.Error("failed page was registered")
	}
}

func TestMarkdownAsset_Add(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.bundle(t, GroupPages, "a.md", "# A\n")
	site := f.site(t)

	a, err := NewMarkdownAsset(site, f.plugin(t), GroupPages, "a.md")
	if err != nil {
		t.Fatalf("NewMarkdownAsset() error: %v", err)
	}
	if err := a.Add(context.Background()); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	files := site.StaticFiles().Files()
	if len(files) != 1 || files[0].Destination != "demo/pages/a.html" || !files[0].IsContent() {
		t.Errorf("static files = %+v", files)
	}
}
