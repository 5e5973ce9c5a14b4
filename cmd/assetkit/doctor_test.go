package main

// Notes:
// - Sass detection is driven through Environment.LookPath and SassVersion,
//   so results do not depend on the host having Dart Sass installed.
// - Container and CI detection tests modify environment variables and
//   cannot use t.Parallel().

import (
	"bytes"
	"encoding/json"
	"errors"
	"runtime"
	"strings"
	"testing"
)

func sassFoundEnv() (*Environment, *bytes.Buffer) {
	env, stdout, _ := newTestEnv()
	env.LookPath = func(file string) (string, error) { return "/usr/local/bin/" + file, nil }
	env.SassVersion = func(string) (string, error) { return "dart-sass 1.77.5", nil }
	return env, stdout
}

func decodeDoctor(t *testing.T, out []byte) doctorResult {
	t.Helper()
	var result doctorResult
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	return result
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSONOutput - JSON output format and structure
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	env, stdout := sassFoundEnv()
	code := runDoctorCmd([]string{"--json"}, env)

	result := decodeDoctor(t, stdout.Bytes())
	if !result.Sass.Found || result.Sass.Path != "/usr/local/bin/sass" {
		t.Errorf("Sass = %+v, want found at /usr/local/bin/sass", result.Sass)
	}
	if result.Sass.Version != "dart-sass 1.77.5" {
		t.Errorf("Version = %q", result.Sass.Version)
	}
	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", result.Env.OS, result.Env.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if !result.CheckedAt.Equal(fixedNow) {
		t.Errorf("CheckedAt = %v, want %v", result.CheckedAt, fixedNow)
	}

	if result.Status == "errors" && code != ExitGeneral {
		t.Errorf("exit code = %d for errors status", code)
	}
	if result.Status != "errors" && code != ExitSuccess {
		t.Errorf("exit code = %d for %s status", code, result.Status)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_SassMissing - Missing binary is an error
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_SassMissing(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv()
	code := runDoctorCmd([]string{"--json"}, env)

	if code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	result := decodeDoctor(t, stdout.Bytes())
	if result.Status != "errors" || result.Sass.Found {
		t.Errorf("result = %+v, want errors with sass not found", result)
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "ASSETKIT_SASS_BINARY") {
		t.Errorf("Errors = %v, want a hint naming ASSETKIT_SASS_BINARY", result.Errors)
	}
}

func TestRunDoctorCmd_VersionFailureWarns(t *testing.T) {
	t.Parallel()

	env, stdout := sassFoundEnv()
	env.SassVersion = func(string) (string, error) { return "", errors.New("not the embedded compiler") }

	code := runDoctorCmd([]string{"--json"}, env)
	result := decodeDoctor(t, stdout.Bytes())

	if !result.Sass.Found {
		t.Error("Sass.Found = false, want true")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "not the embedded compiler") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want version failure", result.Warnings)
	}
	if result.Status == "errors" || code != ExitSuccess {
		t.Errorf("status = %s, code = %d; a version failure is only a warning", result.Status, code)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_HumanOutput - Human-readable output
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	env, stdout := sassFoundEnv()
	runDoctorCmd(nil, env)

	out := stdout.String()
	for _, want := range []string{
		"assetkit doctor",
		"Dart Sass",
		"[OK] Found at /usr/local/bin/sass",
		"[OK] Version: dart-sass 1.77.5",
		"Environment",
		"[OK] Platform: " + runtime.GOOS + "/" + runtime.GOARCH,
		"Status: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q in:\n%s", want, out)
		}
	}
}

func TestRunDoctorCmd_HumanOutput_NotReady(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv()
	runDoctorCmd(nil, env)

	out := stdout.String()
	if !strings.Contains(out, "[ERROR] Not found: sass") {
		t.Errorf("output missing not-found line:\n%s", out)
	}
	if !strings.Contains(out, "Status: Not ready") {
		t.Errorf("output missing status line:\n%s", out)
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	env, _, _ := newTestEnv()
	if code := runDoctorCmd([]string{"--yaml"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// Environment detection (not parallel: modifies environment variables)
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_BinaryFromEnv(t *testing.T) {
	t.Setenv("ASSETKIT_SASS_BINARY", "dart-sass")

	env, stdout := sassFoundEnv()
	runDoctorCmd([]string{"--json"}, env)

	result := decodeDoctor(t, stdout.Bytes())
	if result.Sass.Binary != "dart-sass" || result.Sass.Path != "/usr/local/bin/dart-sass" {
		t.Errorf("Sass = %+v, want dart-sass looked up", result.Sass)
	}
	if result.Env.SassBinary != "dart-sass" {
		t.Errorf("Env.SassBinary = %q", result.Env.SassBinary)
	}
}

func TestRunDoctorCmd_ContainerDetection(t *testing.T) {
	t.Setenv("ASSETKIT_CONTAINER", "1")

	env, stdout := sassFoundEnv()
	runDoctorCmd([]string{"--json"}, env)

	result := decodeDoctor(t, stdout.Bytes())
	if !result.Env.Container || result.Env.ContainerHint != "ASSETKIT_CONTAINER=1" {
		t.Errorf("Env = %+v, want container via ASSETKIT_CONTAINER", result.Env)
	}
}

func TestRunDoctorCmd_CIWithoutSassWarns(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ASSETKIT_SASS_BINARY", "")

	env, stdout, _ := newTestEnv()
	runDoctorCmd([]string{"--json"}, env)

	result := decodeDoctor(t, stdout.Bytes())
	if !result.Env.CI {
		t.Error("Env.CI = false, want true")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Container/CI detected") {
			found = true
		}
	}
	if !found {
		t.Errorf("Warnings = %v, want container/CI warning", result.Warnings)
	}
}
