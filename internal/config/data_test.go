package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "authors.yml"), "ada:\n  name: Ada\n")
	writeFile(t, filepath.Join(dir, "nav.yaml"), "- home\n- about\n")
	writeFile(t, filepath.Join(dir, "meta.json"), `{"version": "1.0"}`)
	writeFile(t, filepath.Join(dir, "empty.yml"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden.yml"), "x: 1")
	writeFile(t, filepath.Join(dir, "team", "leads.yml"), "- grace\n")

	data, err := LoadData(dir)
	if err != nil {
		t.Fatalf("LoadData() error: %v", err)
	}

	authors, ok := data["authors"].(map[string]any)
	if !ok {
		t.Fatalf("authors = %T, want map", data["authors"])
	}
	if ada, _ := authors["ada"].(map[string]any); ada["name"] != "Ada" {
		t.Errorf("authors.ada.name = %v", ada["name"])
	}

	if nav, _ := data["nav"].([]any); len(nav) != 2 || nav[0] != "home" {
		t.Errorf("nav = %v", data["nav"])
	}

	if meta, _ := data["meta"].(map[string]any); meta["version"] != "1.0" {
		t.Errorf("meta.version = %v", data["meta"])
	}

	if v, ok := data["empty"]; !ok || v != nil {
		t.Errorf("empty = %v (present %v), want nil entry", v, ok)
	}

	for _, key := range []string{"notes", ".hidden"} {
		if _, ok := data[key]; ok {
			t.Errorf("%s should not be loaded", key)
		}
	}

	team, ok := data["team"].(map[string]any)
	if !ok {
		t.Fatalf("team = %T, want map", data["team"])
	}
	if _, ok := team["leads"]; !ok {
		t.Error("team.leads missing")
	}
}

func TestLoadData_MissingDir(t *testing.T) {
	t.Parallel()

	data, err := LoadData(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadData() error: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("LoadData() = %v, want empty", data)
	}
}

func TestLoadData_Malformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yml"), "key: [unclosed\n")

	_, err := LoadData(dir)
	if !errors.Is(err, ErrDataParse) {
		t.Errorf("error = %v, want ErrDataParse", err)
	}
}
