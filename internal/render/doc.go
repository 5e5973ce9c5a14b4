// Package render runs the single templating pass applied to assets that
// carry front matter.
//
// Assets without front matter never reach the template engine: their body
// is returned as-is. For the others, the body is expanded once against a
// Payload holding the generator facts, the site configuration and data, and
// the asset's own metadata under "page".
package render
