package assetkit

import (
	"context"
	"errors"
	"fmt"
	"html"
	"path"
	"strings"
)

// markdownDocument wraps a converted page so stylesheet tags have a <head>
// to go into.
const markdownDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// MarkdownAsset is a page written in Markdown. The body is rendered through
// the template engine when it has front matter, then converted to HTML.
type MarkdownAsset struct {
	*FileAsset

	htmlDone bool
	html     string
	htmlErr  error
}

// NewMarkdownAsset resolves a Markdown page.
func NewMarkdownAsset(site *Site, plugin *Plugin, group, filename string) (*MarkdownAsset, error) {
	fa, err := NewFileAsset(site, plugin, group, filename)
	if err != nil {
		return nil, err
	}
	return &MarkdownAsset{FileAsset: fa}, nil
}

func (a *MarkdownAsset) Kind() string { return KindMarkdown }

// Destination replaces the Markdown extension with ".html".
func (a *MarkdownAsset) Destination() string {
	name := strings.TrimSuffix(a.filename, path.Ext(a.filename)) + ".html"
	return path.Join(a.plugin.Slug, a.group, name)
}

// URL returns the expanded URL of Destination.
func (a *MarkdownAsset) URL() string {
	return a.site.urls.ExpandURL(a.Destination())
}

// HTML returns the page as a complete HTML document titled with
// page.title, or the filename when unset.
func (a *MarkdownAsset) HTML(ctx context.Context) (string, error) {
	if a.htmlDone {
		return a.html, a.htmlErr
	}

	body, err := a.Render()
	if err != nil {
		a.htmlErr, a.htmlDone = err, true
		return "", err
	}

	fragment, err := a.site.markdown.ToHTML(ctx, body)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		a.htmlErr, a.htmlDone = a.fail("render", fmt.Errorf("%w: %v", ErrTemplateRender, err)), true
		return "", a.htmlErr
	}

	a.html = fmt.Sprintf(markdownDocument, html.EscapeString(a.title()), fragment)
	a.htmlDone = true
	return a.html, nil
}

func (a *MarkdownAsset) title() string {
	if meta, _ := a.Metadata(); meta != nil {
		if t, ok := meta["title"].(string); ok && t != "" {
			return t
		}
	}
	return path.Base(a.filename)
}

// Add registers the converted page.
func (a *MarkdownAsset) Add(ctx context.Context) error {
	page, err := a.HTML(ctx)
	if err != nil {
		return err
	}
	a.site.static.Add(StaticFile{
		Content:     []byte(page),
		Destination: a.Destination(),
		Plugin:      a.plugin.Slug,
	})
	return nil
}
