package assets

import (
	"path/filepath"

	"github.com/alnah/go-assetkit/internal/fileutil"
)

// Request describes one logical asset to resolve.
type Request struct {
	Plugin string // plugin identity, for error messages
	Group  string // logical subdirectory, e.g. "stylesheets"

	// Filenames lists the acceptable names. The first entry is the declared
	// filename and the only one looked up in the plugin directory; the rest
	// are syntax-equivalent alternatives accepted as overrides.
	Filenames []string

	PluginDir   string // {pluginRoot}/{group}
	OverrideDir string // {source}/{customDir}/{slug}/{group}; empty disables overrides
}

// Resolver selects between a user override and a bundled plugin file.
// A Resolver is not safe for concurrent use; each asset owns one.
type Resolver struct {
	stat   func(path string) bool
	exists map[string]bool
}

// NewResolver creates a Resolver that checks the filesystem for regular files.
func NewResolver() *Resolver {
	return NewResolverWithStat(fileutil.FileExists)
}

// NewResolverWithStat creates a Resolver with a custom existence check.
func NewResolverWithStat(stat func(path string) bool) *Resolver {
	return &Resolver{
		stat:   stat,
		exists: make(map[string]bool),
	}
}

// Exists reports whether path exists, consulting the filesystem at most
// once per distinct path.
func (r *Resolver) Exists(path string) bool {
	if found, ok := r.exists[path]; ok {
		return found
	}
	found := r.stat(path)
	r.exists[path] = found
	return found
}

// Candidates returns the lookup order for req: override variants first,
// then the bundled file.
func (r *Resolver) Candidates(req Request) []string {
	if len(req.Filenames) == 0 {
		return nil
	}

	candidates := make([]string, 0, len(req.Filenames)+1)
	if req.OverrideDir != "" {
		for _, name := range req.Filenames {
			candidates = append(candidates, filepath.Join(req.OverrideDir, filepath.FromSlash(name)))
		}
	}
	return append(candidates, filepath.Join(req.PluginDir, filepath.FromSlash(req.Filenames[0])))
}

// Resolve returns the first existing candidate for req.
// Returns ErrInvalidAssetName for unsafe names and a *NotFoundError when no
// candidate exists.
func (r *Resolver) Resolve(req Request) (string, error) {
	if err := ValidateGroup(req.Group); err != nil {
		return "", err
	}
	if len(req.Filenames) == 0 {
		return "", ValidateFilename("")
	}
	for _, name := range req.Filenames {
		if err := ValidateFilename(name); err != nil {
			return "", err
		}
	}

	candidates := r.Candidates(req)
	for _, path := range candidates {
		if r.Exists(path) {
			return path, nil
		}
	}

	return "", &NotFoundError{
		Plugin:     req.Plugin,
		Group:      req.Group,
		Filename:   req.Filenames[0],
		Candidates: candidates,
	}
}
