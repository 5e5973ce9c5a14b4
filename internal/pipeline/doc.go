// Package pipeline holds the HTML stages applied to rendered assets:
//   - Markdown to HTML fragment conversion via Goldmark
//   - syntax-highlighting stylesheet generation via Chroma
//   - stylesheet tag injection into HTML documents
//   - root-relative URL expansion in href/src attributes
//
// Templating and Sass compilation happen before these stages, in the render
// and sass packages.
package pipeline
