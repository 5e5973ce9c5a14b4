package frontmatter

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantMeta bool
		wantBody string
		wantKey  string
		wantVal  any
	}{
		{
			name:     "header with dashes terminator",
			raw:      "---\ntitle: Hello\n---\nbody {{ page.title }}\n",
			wantMeta: true,
			wantBody: "body {{ page.title }}\n",
			wantKey:  "title",
			wantVal:  "Hello",
		},
		{
			name:     "header with dots terminator",
			raw:      "---\ncolor: red\n...\na { color: red; }",
			wantMeta: true,
			wantBody: "a { color: red; }",
			wantKey:  "color",
			wantVal:  "red",
		},
		{
			name:     "trailing whitespace on markers",
			raw:      "---  \nx: y\n--- \t\nrest",
			wantMeta: true,
			wantBody: "rest",
			wantKey:  "x",
			wantVal:  "y",
		},
		{
			name:     "empty header",
			raw:      "---\n---\ncontent",
			wantMeta: true,
			wantBody: "content",
		},
		{
			name:     "terminator without trailing newline",
			raw:      "---\na: b\n---",
			wantMeta: true,
			wantBody: "",
			wantKey:  "a",
			wantVal:  "b",
		},
		{
			name:     "first terminator wins",
			raw:      "---\na: b\n---\nline\n---\nmore\n",
			wantMeta: true,
			wantBody: "line\n---\nmore\n",
			wantKey:  "a",
			wantVal:  "b",
		},
		{
			name:     "no header",
			raw:      "body { margin: 0 }\n",
			wantBody: "body { margin: 0 }\n",
		},
		{
			name:     "dashes not at start",
			raw:      "\n---\na: b\n---\n",
			wantBody: "\n---\na: b\n---\n",
		},
		{
			name:     "unterminated header",
			raw:      "---\na: b\nno terminator\n",
			wantBody: "---\na: b\nno terminator\n",
		},
		{
			name:     "four dashes is not a marker",
			raw:      "----\na: b\n---\n",
			wantBody: "----\na: b\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Extract([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Extract() unexpected error: %v", err)
			}
			if doc.HasFrontMatter() != tt.wantMeta {
				t.Errorf("HasFrontMatter() = %v, want %v", doc.HasFrontMatter(), tt.wantMeta)
			}
			if doc.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", doc.Body, tt.wantBody)
			}
			if tt.wantKey != "" {
				if got := doc.Metadata[tt.wantKey]; got != tt.wantVal {
					t.Errorf("Metadata[%q] = %#v, want %#v", tt.wantKey, got, tt.wantVal)
				}
			}
		})
	}
}

func TestExtract_MalformedHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "unclosed flow sequence", raw: "---\ntags: [a, b\n---\nbody"},
		{name: "scalar header", raw: "---\njust text\n---\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Extract([]byte(tt.raw))
			if !errors.Is(err, ErrParse) {
				t.Errorf("Extract() error = %v, want ErrParse", err)
			}
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"---\ntitle: x\n---\nplain body\n",
		"---\n---\n",
		"no header at all",
	}

	for _, raw := range inputs {
		first, err := Extract([]byte(raw))
		if err != nil {
			t.Fatalf("Extract(%q) error: %v", raw, err)
		}
		second, err := Extract([]byte(first.Body))
		if err != nil {
			t.Fatalf("Extract(body of %q) error: %v", raw, err)
		}
		if second.HasFrontMatter() {
			t.Errorf("re-extracting body of %q found front matter", raw)
		}
		if second.Body != first.Body {
			t.Errorf("re-extracting body of %q changed it: %q -> %q", raw, first.Body, second.Body)
		}
	}
}

func TestExtract_NoHeaderIsByteIdentical(t *testing.T) {
	t.Parallel()

	raw := []byte("\xef\xbb\xbfbody\r\n\tindented\r\n")
	doc, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if doc.Metadata != nil {
		t.Errorf("Metadata = %v, want nil", doc.Metadata)
	}
	if doc.Body != string(raw) {
		t.Errorf("Body = %q, want %q", doc.Body, raw)
	}
}

func TestSplit_ReturnsHeaderText(t *testing.T) {
	t.Parallel()

	meta, body, ok := Split([]byte("---\na: 1\nb: 2\n---\nrest"))
	if !ok {
		t.Fatal("Split() ok = false, want true")
	}
	if meta != "a: 1\nb: 2\n" {
		t.Errorf("meta = %q", meta)
	}
	if body != "rest" {
		t.Errorf("body = %q", body)
	}
}
