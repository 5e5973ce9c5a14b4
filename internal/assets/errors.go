package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for asset operations.
var (
	// ErrNotFound indicates no candidate file exists for an asset.
	ErrNotFound = errors.New("asset not found")

	// ErrInvalidAssetName indicates the group or filename contains
	// traversal sequences, absolute paths, or backslashes.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")
)

// NotFoundError reports every location probed for a missing asset.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
	Plugin     string
	Group      string
	Filename   string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plugin %q: could not find %s/%s (tried: %s)",
		e.Plugin, e.Group, e.Filename, strings.Join(e.Candidates, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
