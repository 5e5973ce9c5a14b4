package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Markdown to HTML fragment
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading gets an id",
			input:        "# Getting Started\n",
			wantContains: []string{`<h1 id="getting-started">Getting Started</h1>`},
		},
		{
			name:         "fragment has no document wrapper",
			input:        "hello\n",
			wantContains: []string{"<p>hello</p>"},
			wantExcludes: []string{"<html", "<body", "<!DOCTYPE"},
		},
		{
			name:         "GFM table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "fenced code uses chroma classes",
			input:        "```go\nfunc main() {}\n```\n",
			wantContains: []string{`class="chroma"`},
			wantExcludes: []string{"style="},
		},
		{
			name:         "CRLF input",
			input:        "line one\r\n\r\nline two\r\n",
			wantContains: []string{"<p>line one</p>", "<p>line two</p>"},
		},
		{
			name:         "raw HTML is not passed through",
			input:        "<script>alert(1)</script>\n",
			wantExcludes: []string{"<script>"},
		},
	}

	conv := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestHighlightCSS - Chroma stylesheet generation
// ---------------------------------------------------------------------------

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		style   string
		wantErr error
	}{
		{name: "default style", style: ""},
		{name: "named style", style: "monokai"},
		{name: "case insensitive", style: "Monokai"},
		{name: "unknown style", style: "no-such-style", wantErr: ErrUnknownStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			css, err := HighlightCSS(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("HighlightCSS(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("HighlightCSS(%q) error: %v", tt.style, err)
			}
			if !strings.Contains(css, ".chroma") {
				t.Errorf("HighlightCSS(%q) missing .chroma rule:\n%s", tt.style, css)
			}
		})
	}
}
