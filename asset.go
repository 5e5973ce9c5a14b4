package assetkit

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-assetkit/internal/assets"
	"github.com/alnah/go-assetkit/internal/frontmatter"
	"github.com/alnah/go-assetkit/internal/render"
	"github.com/alnah/go-assetkit/internal/sass"
)

// Asset kinds.
const (
	KindFile       = "file"
	KindStylesheet = "stylesheet"
	KindMarkdown   = "markdown"
)

// infoWidth is the column the Info suffix starts at.
const infoWidth = 35

// Asset is one plugin-declared file, resolved at construction to either a
// user override or the plugin's bundled copy.
//
// An asset memoizes what it reads and renders and is not safe for
// concurrent use.
type Asset interface {
	Kind() string
	Plugin() *Plugin
	Group() string
	Filename() string

	// Path is the resolved source. It never changes after construction.
	Path() string
	Overridden() bool

	// Destination is the slash-separated output path.
	Destination() string
	Disabled() bool
	Info() string

	// Add registers the asset's output with the site.
	Add(ctx context.Context) error

	// RemoveHostCopy drops host raw-copy entries for Path.
	RemoveHostCopy() int
}

// NewAsset constructs the asset kind matching group and filename.
func NewAsset(site *Site, plugin *Plugin, group, filename string) (Asset, error) {
	switch kindOf(group, filename) {
	case KindStylesheet:
		return NewStylesheetAsset(site, plugin, group, filename)
	case KindMarkdown:
		return NewMarkdownAsset(site, plugin, group, filename)
	default:
		return NewFileAsset(site, plugin, group, filename)
	}
}

func kindOf(group, filename string) string {
	if sass.IsSass(filename) {
		return KindStylesheet
	}
	if sass.SyntaxOf(filename) == sass.SyntaxCSS && (group == GroupStylesheets || group == GroupSass) {
		return KindStylesheet
	}
	if group == GroupPages {
		switch strings.ToLower(path.Ext(filename)) {
		case ".md", ".markdown":
			return KindMarkdown
		}
	}
	return KindFile
}

// FileAsset is the generic asset: copied as is, or rendered through the
// template engine when it has front matter.
type FileAsset struct {
	site       *Site
	plugin     *Plugin
	group      string
	filename   string
	path       string
	pluginPath string

	rawDone bool
	raw     []byte
	rawErr  error

	docDone bool
	doc     frontmatter.Document
	docErr  error

	payloadDone bool
	payload     render.Payload

	renderDone bool
	rendered   string
	renderErr  error
}

// NewFileAsset resolves a generic asset.
func NewFileAsset(site *Site, plugin *Plugin, group, filename string) (*FileAsset, error) {
	return newFileAsset(site, plugin, group, filename, []string{filename})
}

// newFileAsset resolves filename, accepting any of variants as override.
// variants[0] must be filename.
func newFileAsset(site *Site, plugin *Plugin, group, filename string, variants []string) (*FileAsset, error) {
	a := &FileAsset{
		site:     site,
		plugin:   plugin,
		group:    group,
		filename: filename,
	}

	req := assets.Request{
		Plugin:      plugin.Name,
		Group:       group,
		Filenames:   variants,
		PluginDir:   plugin.GroupDir(group),
		OverrideDir: site.OverrideDir(plugin.Slug, group),
	}
	a.pluginPath = filepath.Join(req.PluginDir, filepath.FromSlash(filename))

	resolved, err := site.newResolver().Resolve(req)
	if err != nil {
		return nil, a.fail("resolve", err)
	}
	a.path = resolved
	return a, nil
}

// fail wraps err as an *AssetError for a.
func (a *FileAsset) fail(op string, err error) error {
	p := a.path
	if p == "" {
		p = path.Join(a.group, a.filename)
	}
	return &AssetError{
		Op:     op,
		Plugin: a.plugin.Slug,
		Group:  a.group,
		Path:   p,
		Err:    convertAssetError(err),
	}
}

func (a *FileAsset) Kind() string        { return KindFile }
func (a *FileAsset) Plugin() *Plugin     { return a.plugin }
func (a *FileAsset) Group() string       { return a.group }
func (a *FileAsset) Filename() string    { return a.filename }
func (a *FileAsset) Path() string        { return a.path }
func (a *FileAsset) PluginPath() string  { return a.pluginPath }
func (a *FileAsset) Overridden() bool    { return a.path != a.pluginPath }
func (a *FileAsset) Disabled() bool      { return a.plugin.Disable.Has(a.group, a.filename) }
func (a *FileAsset) Destination() string { return path.Join(a.plugin.Slug, a.group, a.filename) }

// URL returns the expanded URL of Destination.
func (a *FileAsset) URL() string {
	return a.site.urls.ExpandURL(a.Destination())
}

// Info returns a one-line status: the filename, then "disabled" or the
// override location.
func (a *FileAsset) Info() string {
	return a.info(a.Disabled(), "")
}

// info formats the status line. urlInfo, when set, replaces the override
// location.
func (a *FileAsset) info(disabled bool, urlInfo string) string {
	msg := fmt.Sprintf("%-*s", infoWidth, a.filename)
	switch {
	case disabled:
		msg += "disabled"
	case urlInfo != "":
		msg += urlInfo
	case a.Overridden():
		msg += "from: " + path.Join(a.site.customDir, a.plugin.Slug, a.group, a.filename)
	}
	return strings.TrimRight(msg, " ")
}

// Read returns the raw bytes of the resolved file.
func (a *FileAsset) Read() ([]byte, error) {
	if !a.rawDone {
		data, err := os.ReadFile(a.path) // #nosec G304 -- path comes from the resolver
		if err != nil {
			a.rawErr = a.fail("read", fmt.Errorf("%w: %v", assets.ErrAssetRead, err))
		}
		a.raw = data
		a.rawDone = true
	}
	return a.raw, a.rawErr
}

// Document returns the front matter split of the file.
func (a *FileAsset) Document() (frontmatter.Document, error) {
	if !a.docDone {
		raw, err := a.Read()
		if err != nil {
			a.docErr = err
		} else {
			a.doc, err = frontmatter.Extract(raw)
			if err != nil {
				a.docErr = a.fail("parse", err)
			}
		}
		a.docDone = true
	}
	return a.doc, a.docErr
}

// Body returns the content after the front matter.
func (a *FileAsset) Body() (string, error) {
	doc, err := a.Document()
	return doc.Body, err
}

// Metadata returns the front matter, or nil when there is none.
func (a *FileAsset) Metadata() (map[string]any, error) {
	doc, err := a.Document()
	return doc.Metadata, err
}

// HasFrontMatter reports whether the file starts with a front matter block.
func (a *FileAsset) HasFrontMatter() (bool, error) {
	doc, err := a.Document()
	return doc.HasFrontMatter(), err
}

// Payload returns the template context. It is built once, so later changes
// to the site configuration are not seen.
func (a *FileAsset) Payload() (render.Payload, error) {
	doc, err := a.Document()
	if err != nil {
		return nil, err
	}
	return a.buildPayload(doc), nil
}

func (a *FileAsset) buildPayload(doc frontmatter.Document) render.Payload {
	if !a.payloadDone {
		in := a.site.payloadInput()
		in.Page = doc.Metadata
		in.Plugin = render.PluginInfo{Name: a.plugin.Name, Slug: a.plugin.Slug}
		a.payload = render.BuildPayload(in)
		a.payloadDone = true
	}
	return a.payload
}

// Render returns the body, expanded through the template engine when the
// file has front matter. The result, including a failure, is kept.
func (a *FileAsset) Render() (string, error) {
	if !a.renderDone {
		doc, err := a.Document()
		if err != nil {
			a.renderErr = err
		} else {
			name := path.Join(a.plugin.Slug, a.group, a.filename)
			a.rendered, err = a.site.renderer.Render(name, doc, func() render.Payload {
				return a.buildPayload(doc)
			})
			if err != nil {
				a.renderErr = a.fail("render", err)
			}
		}
		a.renderDone = true
	}
	return a.rendered, a.renderErr
}

// Add registers a raw copy of the file, or its rendered content when it
// has front matter.
func (a *FileAsset) Add(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	hasFM, err := a.HasFrontMatter()
	if err != nil {
		return err
	}
	if !hasFM {
		a.site.static.Add(StaticFile{
			SourcePath:  a.path,
			Destination: a.Destination(),
			Plugin:      a.plugin.Slug,
		})
		return nil
	}

	content, err := a.Render()
	if err != nil {
		return err
	}
	a.site.static.Add(StaticFile{
		Content:     []byte(content),
		Destination: a.Destination(),
		Plugin:      a.plugin.Slug,
	})
	return nil
}

// RemoveHostCopy drops any host raw-copy entry of the resolved file, so an
// override is not emitted twice.
func (a *FileAsset) RemoveHostCopy() int {
	return a.site.static.Remove(a.path)
}

// Compile-time interface checks.
var (
	_ Asset = (*FileAsset)(nil)
	_ Asset = (*StylesheetAsset)(nil)
	_ Asset = (*MarkdownAsset)(nil)
)
