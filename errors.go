package assetkit

import (
	"errors"
	"fmt"

	"github.com/alnah/go-assetkit/internal/assets"
	"github.com/alnah/go-assetkit/internal/frontmatter"
	"github.com/alnah/go-assetkit/internal/render"
	"github.com/alnah/go-assetkit/internal/sass"
)

// Sentinel errors for library operations.
var (
	ErrNotFound       = errors.New("asset not found")
	ErrInvalidAsset   = errors.New("invalid asset")
	ErrAssetRead      = errors.New("failed to read asset")
	ErrConfigParse    = errors.New("failed to parse front matter")
	ErrTemplateRender = errors.New("template rendering failed")
	ErrCompile        = errors.New("stylesheet compilation failed")

	// Plugin and build errors.
	ErrInvalidPlugin       = errors.New("invalid plugin configuration")
	ErrCompilerUnavailable = errors.New("sass compiler unavailable")
	ErrPoolClosed          = errors.New("compiler pool closed")
	ErrWrite               = errors.New("failed to write static file")
)

// AssetError reports a failed operation on one asset.
// errors.Is matches both the public sentinel and the underlying cause.
type AssetError struct {
	Op     string // "resolve", "read", "render", "compile", "write"
	Plugin string
	Group  string
	Path   string // resolved path, or group/filename when unresolved
	Err    error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("%s %s (plugin %q, group %q): %v", e.Op, e.Path, e.Plugin, e.Group, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// convertAssetError maps internal errors to public sentinels.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isError(err, assets.ErrNotFound):
		return wrapError(ErrNotFound, err)
	case isError(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAsset, err)
	case isError(err, assets.ErrAssetRead):
		return wrapError(ErrAssetRead, err)
	case isError(err, frontmatter.ErrParse):
		return wrapError(ErrConfigParse, err)
	case isError(err, render.ErrRender):
		return wrapError(ErrTemplateRender, err)
	case isError(err, sass.ErrCompile):
		return wrapError(ErrCompile, err)
	default:
		return err
	}
}

// isError checks if err wraps or equals target using errors.Is semantics.
func isError(err, target error) bool {
	return errors.Is(err, target)
}

func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap exposes the public sentinel and the original error, so callers can
// match either. Internal sentinels stay unexported by being in internal/.
func (e *wrappedAssetError) Unwrap() []error {
	return []error{e.sentinel, e.original}
}
