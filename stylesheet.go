package assetkit

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/alnah/go-assetkit/internal/fileutil"
	"github.com/alnah/go-assetkit/internal/sass"
)

// StylesheetAsset is a Sass or CSS file. Sass is compiled to CSS; plain CSS
// goes through the template pass only. Both register an inclusion tag.
type StylesheetAsset struct {
	*FileAsset

	media  string
	output string

	compileDone bool
	css         string
	compileErr  error
}

// NewStylesheetAsset resolves a stylesheet. A Sass override may use either
// syntax: for "main.scss", "main.sass" in the override directory is
// accepted too.
func NewStylesheetAsset(site *Site, plugin *Plugin, group, filename string) (*StylesheetAsset, error) {
	variants := []string{filename}
	if alt := sass.AlternateSyntax(filename); alt != "" {
		variants = append(variants, alt)
	}

	fa, err := newFileAsset(site, plugin, group, filename, variants)
	if err != nil {
		return nil, err
	}

	return &StylesheetAsset{
		FileAsset: fa,
		media:     sass.Media(filename),
		output:    sass.OutputFilename(filename),
	}, nil
}

func (a *StylesheetAsset) Kind() string { return KindStylesheet }

// Media returns the media type from the filename marker, or "all".
func (a *StylesheetAsset) Media() string { return a.media }

// IsPartial reports whether the file is include-only.
func (a *StylesheetAsset) IsPartial() bool {
	return sass.IsPartial(a.filename)
}

// Syntax returns the syntax of the resolved file, which differs from the
// declared one when the override uses the other Sass syntax.
func (a *StylesheetAsset) Syntax() sass.Syntax {
	return sass.SyntaxOf(a.path)
}

// Destination returns <group>/<slug>/<output filename>.
func (a *StylesheetAsset) Destination() string {
	return path.Join(a.group, a.plugin.Slug, a.output)
}

// URL returns the expanded URL of Destination.
func (a *StylesheetAsset) URL() string {
	return a.site.urls.ExpandURL(a.Destination())
}

// Tag returns the <link> element for the compiled stylesheet.
func (a *StylesheetAsset) Tag() string {
	return fmt.Sprintf("<link href='%s' media='%s' rel='stylesheet' type='text/css'>", a.URL(), a.media)
}

// Disabled reports whether the file is disabled under "sass",
// "stylesheets", or its own group.
func (a *StylesheetAsset) Disabled() bool {
	return a.plugin.Disable.AnyOf(a.filename, GroupSass, GroupStylesheets, a.group)
}

func (a *StylesheetAsset) Info() string {
	return a.info(a.Disabled(), "url: "+a.URL())
}

// LoadPaths returns the include paths for compilation: the user override
// directory of the file, when it exists, then the plugin's group directory.
func (a *StylesheetAsset) LoadPaths() []string {
	var paths []string

	user := filepath.Join(a.site.OverrideDir(a.plugin.Slug, a.group), filepath.Dir(filepath.FromSlash(a.filename)))
	if fileutil.DirExists(user) {
		paths = append(paths, user)
	}

	theme, err := filepath.Abs(a.plugin.GroupDir(a.group))
	if err != nil {
		theme = a.plugin.GroupDir(a.group)
	}
	return append(paths, theme)
}

// Compile returns the stylesheet as CSS. Front matter, if any, is rendered
// first. Plain CSS is not passed to the compiler. The result is kept,
// except when ctx ended the compilation.
func (a *StylesheetAsset) Compile(ctx context.Context) (string, error) {
	if a.compileDone {
		return a.css, a.compileErr
	}

	source, err := a.Render()
	if err != nil {
		a.compileErr, a.compileDone = err, true
		return "", err
	}

	syntax := a.Syntax()
	if syntax == sass.SyntaxCSS {
		a.css, a.compileDone = source, true
		return a.css, nil
	}

	css, err := a.site.compiler.Compile(ctx, sass.Request{
		Path:         a.path,
		Source:       source,
		Syntax:       syntax,
		IncludePaths: a.LoadPaths(),
		Style:        a.site.sassStyle,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		a.compileErr, a.compileDone = a.fail("compile", err), true
		return "", a.compileErr
	}

	a.css, a.compileDone = css, true
	return css, nil
}

// Add compiles the stylesheet, registers its CSS, and records its tag.
// Partials register nothing.
func (a *StylesheetAsset) Add(ctx context.Context) error {
	if a.IsPartial() {
		return nil
	}

	css, err := a.Compile(ctx)
	if err != nil {
		return err
	}

	a.site.tags.Add(a.plugin.Slug, a.Tag())
	a.site.static.Add(StaticFile{
		Content:     []byte(css),
		Destination: a.Destination(),
		Plugin:      a.plugin.Slug,
	})
	return nil
}
