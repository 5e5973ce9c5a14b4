// Package assetkit resolves, renders, compiles, and registers the assets
// that site plugins ship.
//
// # Quick Start
//
// Create a site context, describe the plugins, and run a build:
//
//	site := assetkit.NewSite(
//	    assetkit.WithSource("."),
//	    assetkit.WithBaseURL("/blog"),
//	)
//	defer site.Close()
//
//	theme, err := assetkit.NewPlugin("theme", assetkit.PluginConfig{
//	    AssetsPath: "vendor/theme/assets",
//	    Disable:    []string{"javascripts"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := assetkit.NewBuilder(site).Build(ctx, []*assetkit.Plugin{theme})
//	if err != nil {
//	    log.Print(err) // every asset failure, joined
//	}
//	site.StaticFiles().Write("_site")
//
// # Resolution
//
// Each asset is a (group, filename) pair under a plugin's asset root. A file
// at <source>/_plugins/<slug>/<group>/<filename> overrides the bundled
// <assets>/<group>/<filename>. For Sass files the override may use either
// syntax. Resolution happens when the asset is constructed.
//
// # Processing
//
//   - Generic files are copied as is, unless they start with YAML front
//     matter; then the body is rendered with Liquid against a payload of
//     site, page, generator, and plugin data.
//   - Stylesheets (.scss, .sass, .css) are rendered the same way, compiled
//     with Dart Sass, written to <group>/<slug>/<name>.css, and contribute a
//     <link> tag. A "name@print.scss" file gets media "print". Partials
//     ("_name.scss") are never written.
//   - Markdown pages are rendered, converted with Goldmark, and written as
//     HTML documents with the stylesheet tags injected.
//
// # Errors
//
// Failures are *AssetError values. Use errors.Is with ErrNotFound,
// ErrConfigParse, ErrTemplateRender, ErrCompile, or ErrInvalidAsset.
package assetkit
