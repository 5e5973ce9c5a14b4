// Package config loads the site configuration file and its data files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-assetkit/internal/sass"
	"github.com/alnah/go-assetkit/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrDataParse      = errors.New("failed to parse data file")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidValue   = errors.New("invalid config value")
)

// Defaults applied to empty fields.
const (
	DefaultFilename    = "_config.yml"
	DefaultDestination = "_site"
	DefaultPluginsDir  = "_plugins"
	DefaultDataDir     = "_data"
	DefaultEnvironment = "development"
)

// Field length limits.
const (
	MaxBaseURLLength = 2048
	MaxSlugLength    = 100
	MaxNameLength    = 100
	MaxPathLength    = 4096
	MaxEnvLength     = 50
)

// Config holds the site configuration.
type Config struct {
	Source      string                  `yaml:"source"`
	Destination string                  `yaml:"destination"`
	BaseURL     string                  `yaml:"baseurl"`
	PluginsDir  string                  `yaml:"plugins_dir"` // user overrides live under <source>/<plugins_dir>/<slug>
	DataDir     string                  `yaml:"data_dir"`
	Environment string                  `yaml:"environment"`
	Plugins     map[string]PluginConfig `yaml:"plugins"`
	Sass        SassConfig              `yaml:"sass"`
	Highlight   HighlightConfig         `yaml:"highlight"`

	// Raw is the whole file as an untyped tree, exposed to templates as site.*.
	Raw map[string]any `yaml:"-"`
}

// PluginConfig is the per-plugin section, keyed by slug under "plugins".
type PluginConfig struct {
	Name       string   `yaml:"name"`        // display name (default: slug)
	AssetsPath string   `yaml:"assets_path"` // root of the plugin's bundled assets
	Disable    []string `yaml:"disable"`     // "group" or "group/filename"
}

// SassConfig configures stylesheet compilation.
type SassConfig struct {
	Style     string `yaml:"style"`      // "expanded" or "compressed"
	Binary    string `yaml:"binary"`     // Dart Sass executable
	CacheSize int    `yaml:"cache_size"` // compiled stylesheets kept per build
}

// HighlightConfig configures the code highlighting stylesheet.
type HighlightConfig struct {
	Style string `yaml:"style"` // Chroma style name
}

// Default returns a configuration rooted at the current directory.
func Default() *Config {
	cfg := &Config{Source: "."}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = "."
	}
	if c.Destination == "" {
		c.Destination = DefaultDestination
	}
	if c.PluginsDir == "" {
		c.PluginsDir = DefaultPluginsDir
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.Plugins == nil {
		c.Plugins = map[string]PluginConfig{}
	}
	if c.Raw == nil {
		c.Raw = map[string]any{}
	}
}

// Validate checks field values and lengths.
// Called by Load, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("baseurl", c.BaseURL, MaxBaseURLLength); err != nil {
		return err
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "/") {
		return fmt.Errorf("%w: baseurl must start with '/', got %q", ErrInvalidValue, c.BaseURL)
	}
	if err := validateFieldLength("environment", c.Environment, MaxEnvLength); err != nil {
		return err
	}
	for _, dir := range []struct{ name, value string }{
		{"plugins_dir", c.PluginsDir},
		{"data_dir", c.DataDir},
	} {
		if err := validateFieldLength(dir.name, dir.value, MaxPathLength); err != nil {
			return err
		}
		if filepath.IsAbs(dir.value) || strings.Contains(dir.value, "..") {
			return fmt.Errorf("%w: %s must be relative to source, got %q", ErrInvalidValue, dir.name, dir.value)
		}
	}

	switch strings.ToLower(c.Sass.Style) {
	case "", string(sass.StyleExpanded), string(sass.StyleCompressed):
	default:
		return fmt.Errorf("%w: sass.style must be expanded or compressed, got %q", ErrInvalidValue, c.Sass.Style)
	}
	if c.Sass.CacheSize < 0 {
		return fmt.Errorf("%w: sass.cache_size must not be negative, got %d", ErrInvalidValue, c.Sass.CacheSize)
	}

	for _, slug := range c.PluginSlugs() {
		p := c.Plugins[slug]
		if err := validateFieldLength("plugins key", slug, MaxSlugLength); err != nil {
			return err
		}
		if strings.ContainsAny(slug, `/\`) || slug == "." || slug == ".." {
			return fmt.Errorf("%w: plugin slug %q must be a single path segment", ErrInvalidValue, slug)
		}
		if err := validateFieldLength("plugins."+slug+".name", p.Name, MaxNameLength); err != nil {
			return err
		}
		if p.AssetsPath == "" {
			return fmt.Errorf("%w: plugins.%s.assets_path is required", ErrInvalidValue, slug)
		}
		if err := validateFieldLength("plugins."+slug+".assets_path", p.AssetsPath, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// PluginSlugs returns the configured plugin slugs in sorted order.
func (c *Config) PluginSlugs() []string {
	slugs := make([]string, 0, len(c.Plugins))
	for slug := range c.Plugins {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)
	return slugs
}

// OverrideRoot returns <source>/<plugins_dir>.
func (c *Config) OverrideRoot() string {
	return filepath.Join(c.Source, c.PluginsDir)
}

// DataPath returns <source>/<data_dir>.
func (c *Config) DataPath() string {
	return filepath.Join(c.Source, c.DataDir)
}

// DestinationPath returns the destination, resolved against source when
// relative.
func (c *Config) DestinationPath() string {
	return c.resolve(c.Destination)
}

// AssetsRoot returns the plugin's asset root, resolved against source when
// relative.
func (c *Config) AssetsRoot(slug string) string {
	return c.resolve(c.Plugins[slug].AssetsPath)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Source, p)
}

// Load reads the config file at path. Unknown top-level keys are kept in
// Raw for templates. A relative or empty "source" is resolved against the
// file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if !filepath.IsAbs(cfg.Source) {
		cfg.Source = filepath.Join(dir, cfg.Source)
	}
	return cfg, nil
}

// Parse decodes and validates config bytes. Empty input yields defaults.
func Parse(data []byte) (*Config, error) {
	raw, err := yamlutil.Mapping(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	var cfg Config
	if len(raw) > 0 {
		if err := yamlutil.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	cfg.Raw = raw
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
