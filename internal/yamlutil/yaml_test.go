package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-assetkit/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML into Go structs
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Name != "test" || cfg.Count != 42 || !cfg.Enabled {
					t.Errorf("decoded = %+v", cfg)
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"), // partial match
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshalStrict_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	err := yamlutil.UnmarshalStrict([]byte("name: test\nunknown_field: value"), &testConfig{})
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want prefix 'yamlutil:'", err)
	}
}

// ---------------------------------------------------------------------------
// TestMapping - Decodes documents that must be mappings
// ---------------------------------------------------------------------------

func TestMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
		wantLen int
	}{
		{name: "flat mapping", data: "title: Hello\nlayout: post\n", wantLen: 2},
		{name: "nested mapping and sequence", data: "nav:\n  items:\n    - a\n    - b\nmeta:\n  x: 1\n", wantLen: 2},
		{name: "blank input", data: "  \n", wantLen: 0},
		{name: "empty input", data: "", wantLen: 0},
		{name: "comment only", data: "# nothing here\n", wantLen: 0},
		{name: "scalar document", data: "just a string\n", wantErr: yamlutil.ErrNotMapping},
		{name: "sequence document", data: "- a\n- b\n", wantErr: yamlutil.ErrNotMapping},
		{name: "malformed", data: "title: [unclosed\n", wantErr: errors.New("yamlutil:")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := yamlutil.Mapping([]byte(tt.data))
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("Mapping(%q) expected error, got nil", tt.data)
				}
				if !errors.Is(err, tt.wantErr) && !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("Mapping(%q) error = %v, want %v", tt.data, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Mapping(%q) unexpected error: %v", tt.data, err)
			}
			if got == nil {
				t.Fatal("Mapping() returned nil map")
			}
			if len(got) != tt.wantLen {
				t.Errorf("len(Mapping(%q)) = %d, want %d", tt.data, len(got), tt.wantLen)
			}
		})
	}
}

func TestMapping_NestedValuesAreMaps(t *testing.T) {
	t.Parallel()

	got, err := yamlutil.Mapping([]byte("meta:\n  author: Ada\n"))
	if err != nil {
		t.Fatalf("Mapping() error: %v", err)
	}
	meta, ok := got["meta"].(map[string]any)
	if !ok {
		t.Fatalf("meta = %T, want map[string]any", got["meta"])
	}
	if meta["author"] != "Ada" {
		t.Errorf("meta.author = %v, want Ada", meta["author"])
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests to avoid data races.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	data := []byte("title: " + strings.Repeat("x", 100))

	t.Run("Unmarshal enforces limit", func(t *testing.T) {
		err := yamlutil.Unmarshal(data, &testConfig{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("Mapping enforces limit", func(t *testing.T) {
		_, err := yamlutil.Mapping(data)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if !strings.Contains(err.Error(), "max 50") {
			t.Errorf("error should contain max size, got: %s", err)
		}
	})
}
