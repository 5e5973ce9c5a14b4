package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-assetkit/internal/yamlutil"
)

// dataExtensions lists the file types read from the data directory.
// goccy/go-yaml accepts JSON as a YAML subset.
var dataExtensions = []string{".yml", ".yaml", ".json"}

// LoadData reads every data file directly under dir into a map keyed by
// basename without extension. A missing dir yields an empty map.
// Subdirectories become nested maps.
func LoadData(dir string) (map[string]any, error) {
	out := map[string]any{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("reading data dir: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)

		if e.IsDir() {
			sub, err := LoadData(full)
			if err != nil {
				return nil, err
			}
			out[name] = sub
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		if !slices.Contains(dataExtensions, ext) {
			continue
		}

		v, err := loadDataFile(full)
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(name, filepath.Ext(name))] = v
	}

	return out, nil
}

func loadDataFile(path string) (any, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the site's data dir
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var v any
	if err := yamlutil.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataParse, path, err)
	}
	return v, nil
}
