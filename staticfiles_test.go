package assetkit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticFileSet_Remove(t *testing.T) {
	t.Parallel()

	set := NewStaticFileSet()
	set.Add(StaticFile{SourcePath: "/site/_plugins/demo/javascripts/app.js", Destination: "_plugins/demo/javascripts/app.js"})
	set.Add(StaticFile{SourcePath: "/site/about.html", Destination: "about.html"})
	set.Add(StaticFile{SourcePath: "/site/_plugins/demo/javascripts/app.js", Destination: "copy/app.js"})

	if got := set.Remove("/site/_plugins/demo/javascripts/app.js"); got != 2 {
		t.Errorf("Remove() = %d, want 2", got)
	}
	if got := set.Remove("/nowhere"); got != 0 {
		t.Errorf("Remove(missing) = %d, want 0", got)
	}

	files := set.Files()
	if len(files) != 1 || files[0].Destination != "about.html" {
		t.Errorf("Files() = %+v, want only about.html", files)
	}
}

func TestStaticFileSet_RemoveKeepsContentEntries(t *testing.T) {
	t.Parallel()

	set := NewStaticFileSet()
	set.Add(StaticFile{Content: []byte("x"), Destination: "demo/files/a.txt"})

	if got := set.Remove(""); got != 0 {
		t.Errorf("Remove(\"\") = %d, want 0", got)
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}

func TestStaticFileSet_Transform(t *testing.T) {
	t.Parallel()

	set := NewStaticFileSet()
	set.Add(StaticFile{SourcePath: "/src/a.txt", Destination: "a.txt"})
	set.Add(StaticFile{Content: []byte("b"), Destination: "b.txt"})

	err := set.Transform(func(f StaticFile) (StaticFile, error) {
		f.Content = append(f.Content, '!')
		return f, nil
	})
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}

	files := set.Files()
	if files[0].Content != nil {
		t.Errorf("copy entry was transformed: %+v", files[0])
	}
	if string(files[1].Content) != "b!" {
		t.Errorf("content = %q, want %q", files[1].Content, "b!")
	}

	wantErr := errors.New("boom")
	if err := set.Transform(func(f StaticFile) (StaticFile, error) { return f, wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("Transform() error = %v, want %v", err, wantErr)
	}
}

func TestStaticFileSet_Write(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "logo.svg")
	writeFile(t, src, "<svg/>")

	set := NewStaticFileSet()
	set.Add(StaticFile{SourcePath: src, Destination: "demo/images/logo.svg"})
	set.Add(StaticFile{Content: []byte("body{}"), Destination: "stylesheets/demo/main.css"})

	out := t.TempDir()
	n, err := set.Write(out)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Write() = %d, want 2", n)
	}

	tests := []struct {
		path string
		want string
	}{
		{"demo/images/logo.svg", "<svg/>"},
		{"stylesheets/demo/main.css", "body{}"},
	}
	for _, tt := range tests {
		got, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(tt.path)))
		if err != nil {
			t.Errorf("reading %s: %v", tt.path, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("%s = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestStaticFileSet_WriteRejectsEscapingDestination(t *testing.T) {
	t.Parallel()

	set := NewStaticFileSet()
	set.Add(StaticFile{Content: []byte("x"), Destination: "../outside.txt"})

	_, err := set.Write(t.TempDir())
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Write() error = %v, want ErrWrite", err)
	}
}
