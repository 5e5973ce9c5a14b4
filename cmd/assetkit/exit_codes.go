package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-assetkit"
	"github.com/alnah/go-assetkit/internal/config"
	"github.com/alnah/go-assetkit/internal/pipeline"
)

// Exit codes for the assetkit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Missing asset, read or write failure
	ExitCompile = 4 // Sass, template, or front matter errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interrupted builds are not failures of any kind below.
	if errors.Is(err, context.Canceled) {
		return ExitGeneral
	}

	// Compile errors (exit 4)
	if errors.Is(err, assetkit.ErrCompile) ||
		errors.Is(err, assetkit.ErrTemplateRender) ||
		errors.Is(err, assetkit.ErrConfigParse) ||
		errors.Is(err, assetkit.ErrCompilerUnavailable) {
		return ExitCompile
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, assetkit.ErrNotFound) ||
		errors.Is(err, assetkit.ErrAssetRead) ||
		errors.Is(err, assetkit.ErrWrite) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrDataParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assetkit.ErrInvalidPlugin) ||
		errors.Is(err, assetkit.ErrInvalidAsset) ||
		errors.Is(err, pipeline.ErrUnknownStyle) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
