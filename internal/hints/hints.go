// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-assetkit/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForSassBinary returns hints for a Dart Sass binary that failed to start.
func ForSassBinary() string {
	var hints []string

	if os.Getenv("ASSETKIT_SASS_BINARY") == "" {
		hints = append(hints, "set ASSETKIT_SASS_BINARY or sass.binary to the Dart Sass executable")
	}

	switch {
	case IsInContainer():
		hints = append(hints, "install the standalone release from github.com/sass/dart-sass/releases in the image")
	case runtime.GOOS == "darwin":
		hints = append(hints, "brew install sass/sass/sass")
	case runtime.GOOS == "windows":
		hints = append(hints, "choco install sass")
	default:
		hints = append(hints, "npm install -g sass")
	}

	return formatHints(hints)
}

// ForAssetNotFound returns where a user override for the asset would go.
// overrideRoot is <source>/<plugins_dir>.
func ForAssetNotFound(overrideRoot, slug, group, filename string) string {
	if filename == "" {
		return ""
	}
	target := filepath.Join(overrideRoot, slug, group, filename)
	return format("add the file to the plugin, or provide an override at " + target)
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound() string {
	return format("run inside the site directory, or use --source DIR or --config FILE")
}

// ForOutputDirectory returns hints for destination write errors.
func ForOutputDirectory() string {
	return format("check the destination exists and is writable")
}

// ForTimeout returns a hint about slow compilations.
func ForTimeout() string {
	return format("large stylesheets may need a higher --timeout")
}

// ForHighlightStyle returns hints for an unknown highlight style.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
