package sass

import (
	"path"
	"regexp"
	"strings"
)

// Syntax identifies a stylesheet source syntax.
type Syntax string

const (
	SyntaxSCSS Syntax = "scss"
	SyntaxSass Syntax = "sass"
	SyntaxCSS  Syntax = "css"
)

// DefaultMedia is the media type of a stylesheet without a media marker.
const DefaultMedia = "all"

// mediaMarker matches the first "@media." segment of a filename.
var mediaMarker = regexp.MustCompile(`@(.+?)\.`)

// SyntaxOf returns the syntax implied by name's extension, or "" if name
// is not a stylesheet.
func SyntaxOf(name string) Syntax {
	switch strings.ToLower(path.Ext(name)) {
	case ".scss":
		return SyntaxSCSS
	case ".sass":
		return SyntaxSass
	case ".css":
		return SyntaxCSS
	default:
		return ""
	}
}

// IsSass reports whether name needs compilation.
func IsSass(name string) bool {
	s := SyntaxOf(name)
	return s == SyntaxSCSS || s == SyntaxSass
}

// IsPartial reports whether name is include-only.
func IsPartial(name string) bool {
	return strings.HasPrefix(path.Base(name), "_")
}

// Media returns the media marker of name, or DefaultMedia.
func Media(name string) string {
	m := mediaMarker.FindStringSubmatch(path.Base(name))
	if m == nil {
		return DefaultMedia
	}
	return m[1]
}

// OutputFilename strips the media marker from name and maps a Sass
// extension to ".css". Directory components are kept.
func OutputFilename(name string) string {
	dir, base := path.Split(name)
	if loc := mediaMarker.FindStringIndex(base); loc != nil {
		base = base[:loc[0]] + "." + base[loc[1]:]
	}
	if IsSass(base) {
		base = strings.TrimSuffix(base, path.Ext(base)) + ".css"
	}
	return dir + base
}

// AlternateSyntax returns name with the other Sass extension, or "" when
// name is not a Sass file.
func AlternateSyntax(name string) string {
	ext := path.Ext(name)
	switch strings.ToLower(ext) {
	case ".scss":
		return strings.TrimSuffix(name, ext) + ".sass"
	case ".sass":
		return strings.TrimSuffix(name, ext) + ".scss"
	default:
		return ""
	}
}
