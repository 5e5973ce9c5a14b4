package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-assetkit/internal/sass"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string     `json:"status"` // "ready", "warnings", "errors"
	CheckedAt time.Time  `json:"checked_at"`
	Sass      sassInfo   `json:"sass"`
	Env       envInfo    `json:"environment"`
	System    systemInfo `json:"system"`
	Warnings  []string   `json:"warnings,omitempty"`
	Errors    []string   `json:"errors,omitempty"`
}

// sassInfo holds Dart Sass detection results.
type sassInfo struct {
	Found   bool   `json:"found"`
	Binary  string `json:"binary"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	SassBinary    string `json:"assetkit_sass_binary"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "output results as JSON")
	if err := parseArgs(fs, args, printDoctorUsage, env.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	result := runDoctor(env)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	now := time.Now
	if env.Now != nil {
		now = env.Now
	}

	result := &doctorResult{
		Status:    "ready",
		CheckedAt: now(),
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			SassBinary: os.Getenv("ASSETKIT_SASS_BINARY"),
		},
	}

	checkSass(env, result)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkSass locates the Dart Sass binary and asks it for its version.
func checkSass(env *Environment, result *doctorResult) {
	lookPath := env.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	version := env.SassVersion
	if version == nil {
		version = sass.Version
	}

	binary := firstNonEmpty(result.Env.SassBinary, sass.DefaultBinary)
	result.Sass.Binary = binary

	path, err := lookPath(binary)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Dart Sass not found (%s). Install it or set ASSETKIT_SASS_BINARY", binary))
		return
	}
	result.Sass.Found = true
	result.Sass.Path = path

	v, err := version(path)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Dart Sass version: %v", err))
		return
	}
	result.Sass.Version = v
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Containers rarely ship Dart Sass on PATH.
	if (result.Env.Container || result.Env.CI) && !result.Sass.Found && result.Env.SassBinary == "" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected without ASSETKIT_SASS_BINARY. Point it at the bundled Dart Sass")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("ASSETKIT_CONTAINER") == "1" {
		return true, "ASSETKIT_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "assetkit-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "assetkit doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Dart Sass")
	if r.Sass.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Sass.Path)
		if r.Sass.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Sass.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] Not found: %s\n", r.Sass.Binary)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to build")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
