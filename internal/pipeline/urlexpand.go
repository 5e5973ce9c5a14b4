package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// urlAttrs lists the attributes rewritten per element.
var urlAttrs = map[atom.Atom]string{
	atom.A:      "href",
	atom.Link:   "href",
	atom.Img:    "src",
	atom.Script: "src",
	atom.Source: "src",
	atom.Video:  "src",
	atom.Audio:  "src",
}

// ExpandURLs passes every root-relative href/src value ("/css/x.css", not
// "//cdn/x.css") through expand. Other values are left alone.
// A nil expand returns the content unchanged.
func ExpandURLs(htmlContent string, expand func(string) string) (string, error) {
	if expand == nil {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	expandNode(doc, expand)

	return renderHTML(doc, isFragment)
}

func parseHTML(content string) (*html.Node, bool, error) {
	if IsHTMLDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders doc; fragments render their children only so no
// <html><body> wrapper is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func expandNode(n *html.Node, expand func(string) string) {
	if n.Type == html.ElementNode {
		if key, ok := urlAttrs[n.DataAtom]; ok {
			for i, attr := range n.Attr {
				if attr.Key == key && isRootRelative(attr.Val) {
					n.Attr[i].Val = expand(attr.Val)
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		expandNode(c, expand)
	}
}

func isRootRelative(v string) bool {
	return strings.HasPrefix(v, "/") && !strings.HasPrefix(v, "//")
}
