package assetkit

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/alnah/go-assetkit/internal/assets"
	"github.com/alnah/go-assetkit/internal/fileutil"
)

// Asset groups, as subdirectories of a plugin's asset root.
const (
	GroupJavascripts = "javascripts"
	GroupStylesheets = "stylesheets"
	GroupSass        = "sass"
	GroupFiles       = "files"
	GroupFonts       = "fonts"
	GroupImages      = "images"
	GroupPages       = "pages"
)

// KnownGroups lists the groups Discover scans, in build order.
var KnownGroups = []string{
	GroupJavascripts,
	GroupStylesheets,
	GroupSass,
	GroupFiles,
	GroupFonts,
	GroupImages,
	GroupPages,
}

// PluginConfig is a plugin's configuration section.
type PluginConfig struct {
	Name       string
	AssetsPath string
	Disable    []string
}

// Declaration names one asset of a plugin.
type Declaration struct {
	Group    string
	Filename string // slash-separated, relative to the group directory
}

// Plugin is a named bundle of assets.
type Plugin struct {
	Slug       string
	Name       string
	AssetsPath string // absolute asset root
	Disable    DisableList

	// Declarations, when non-nil, replaces Discover.
	Declarations []Declaration
}

// NewPlugin validates cfg and creates a Plugin.
func NewPlugin(slug string, cfg PluginConfig) (*Plugin, error) {
	if err := assets.ValidateGroup(slug); err != nil {
		return nil, fmt.Errorf("%w: slug %q", ErrInvalidPlugin, slug)
	}
	if cfg.AssetsPath == "" {
		return nil, fmt.Errorf("%w: %s: assets path is required", ErrInvalidPlugin, slug)
	}
	root, err := filepath.Abs(cfg.AssetsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPlugin, slug, err)
	}

	name := cfg.Name
	if name == "" {
		name = slug
	}

	return &Plugin{
		Slug:       slug,
		Name:       name,
		AssetsPath: root,
		Disable:    DisableList(cfg.Disable),
	}, nil
}

// GroupDir returns <AssetsPath>/<group>.
func (p *Plugin) GroupDir(group string) string {
	return filepath.Join(p.AssetsPath, group)
}

// Discover lists every file under the known group directories, skipping
// hidden files and directories.
func (p *Plugin) Discover() ([]Declaration, error) {
	var decls []Declaration

	for _, group := range KnownGroups {
		dir := p.GroupDir(group)
		if !fileutil.DirExists(dir) {
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			decls = append(decls, Declaration{Group: group, Filename: filepath.ToSlash(rel)})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("plugin %q: scanning %s: %w", p.Slug, group, err)
		}
	}

	return decls, nil
}

func (p *Plugin) declarations() ([]Declaration, error) {
	if p.Declarations != nil {
		return p.Declarations, nil
	}
	return p.Discover()
}

// Assets constructs every declared asset. Construction stops at the first
// failure.
func (p *Plugin) Assets(site *Site) ([]Asset, error) {
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}
	out := make([]Asset, 0, len(decls))
	for _, d := range decls {
		a, err := NewAsset(site, p, d.Group, d.Filename)
		if err != nil {
			return out, err
		}
		out = append(out, a)
	}
	return out, nil
}
