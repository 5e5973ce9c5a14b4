package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-assetkit/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without editing _config.yml.
type envConfig struct {
	ConfigPath  string        // ASSETKIT_CONFIG: config file path
	Source      string        // ASSETKIT_SOURCE: site source directory
	Destination string        // ASSETKIT_DESTINATION: output directory
	BaseURL     string        // ASSETKIT_BASEURL: URL prefix
	Environment string        // ASSETKIT_ENV: generator.environment
	SassBinary  string        // ASSETKIT_SASS_BINARY: Dart Sass executable
	SassStyle   string        // ASSETKIT_SASS_STYLE: expanded or compressed
	Highlight   string        // ASSETKIT_HIGHLIGHT_STYLE: Chroma style
	Timeout     time.Duration // ASSETKIT_TIMEOUT: per-stylesheet compile timeout
	Workers     int           // ASSETKIT_WORKERS: parallel plugins
}

// knownEnvVars lists valid ASSETKIT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ASSETKIT_CONFIG":          true,
	"ASSETKIT_SOURCE":          true,
	"ASSETKIT_DESTINATION":     true,
	"ASSETKIT_BASEURL":         true,
	"ASSETKIT_ENV":             true,
	"ASSETKIT_SASS_BINARY":     true,
	"ASSETKIT_SASS_STYLE":      true,
	"ASSETKIT_HIGHLIGHT_STYLE": true,
	"ASSETKIT_TIMEOUT":         true,
	"ASSETKIT_WORKERS":         true,
	"ASSETKIT_CONTAINER":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("ASSETKIT_CONFIG"),
		Source:      os.Getenv("ASSETKIT_SOURCE"),
		Destination: os.Getenv("ASSETKIT_DESTINATION"),
		BaseURL:     os.Getenv("ASSETKIT_BASEURL"),
		Environment: os.Getenv("ASSETKIT_ENV"),
		SassBinary:  os.Getenv("ASSETKIT_SASS_BINARY"),
		SassStyle:   os.Getenv("ASSETKIT_SASS_STYLE"),
		Highlight:   os.Getenv("ASSETKIT_HIGHLIGHT_STYLE"),
	}

	if timeout := os.Getenv("ASSETKIT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("ASSETKIT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized ASSETKIT_* variables.
// Helps catch typos like ASSETKIT_SASS_BIN instead of ASSETKIT_SASS_BINARY.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ASSETKIT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with set environment
// variables. Priority: CLI flags > env vars > config file > defaults
// (flags are applied afterwards by applyFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Destination != "" {
		cfg.Destination = env.Destination
	}
	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if env.Environment != "" {
		cfg.Environment = env.Environment
	}
	if env.SassBinary != "" {
		cfg.Sass.Binary = env.SassBinary
	}
	if env.SassStyle != "" {
		cfg.Sass.Style = env.SassStyle
	}
	if env.Highlight != "" {
		cfg.Highlight.Style = env.Highlight
	}
}
