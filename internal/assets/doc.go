// Package assets picks the physical file behind a plugin asset.
//
// # Resolution Order
//
// A plugin ships its files under its asset root; a site may shadow any of
// them by placing a file with the same name under its override directory:
//
//	{pluginRoot}/{group}/{file}                      # bundled default
//	{siteSource}/{customDir}/{slug}/{group}/{file}   # user override
//
// Resolver builds the candidate list (every override variant first, in the
// order given, then the single bundled path) and returns the first one that
// exists. Existence checks are memoized per path string for the lifetime of
// the Resolver, which is owned by one asset.
//
// # Security
//
// Filenames and groups are validated before any path is joined, so a
// declaration cannot escape the plugin root or the override directory.
package assets
