// Package frontmatter splits a file into its YAML header and its body.
package frontmatter

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/alnah/go-assetkit/internal/yamlutil"
)

// ErrParse indicates the header matched but is not a valid YAML mapping.
var ErrParse = errors.New("malformed front matter")

// pattern matches a header opened by a "---" line and closed by the first
// following "---" or "..." line. Group 1 is the opening line plus the
// metadata text; group 2 is the terminator line including its newline.
//
// The metadata part is lazy, so the first terminator wins: a body that
// itself contains a "---" line keeps it.
var pattern = regexp.MustCompile(`(?s)\A(---[ \t]*\r?\n.*?\n?)(?m:^)((?:---|\.\.\.)[ \t]*\r?(?m:$)\n?)`)

// openingLine matches the "---" line that starts group 1.
var openingLine = regexp.MustCompile(`\A---[ \t]*\r?\n`)

// Document is the result of splitting raw content.
type Document struct {
	// Metadata is nil when the content has no header, and non-nil
	// (possibly empty) when it has one.
	Metadata map[string]any

	// Body is everything after the terminator line, or the whole input
	// when there is no header.
	Body string
}

// HasFrontMatter reports whether a header was found.
func (d Document) HasFrontMatter() bool {
	return d.Metadata != nil
}

// Split locates the header without parsing it. ok is false when the
// content does not start with a header; body is then raw unchanged.
func Split(raw []byte) (meta, body string, ok bool) {
	loc := pattern.FindSubmatchIndex(raw)
	if loc == nil {
		return "", string(raw), false
	}
	header := raw[loc[2]:loc[3]]
	open := openingLine.Find(header)
	return string(header[len(open):]), string(raw[loc[1]:]), true
}

// Extract splits raw and parses the header as a YAML mapping.
func Extract(raw []byte) (Document, error) {
	meta, body, ok := Split(raw)
	if !ok {
		return Document{Body: body}, nil
	}

	data, err := yamlutil.Mapping([]byte(meta))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return Document{Metadata: data, Body: body}, nil
}
