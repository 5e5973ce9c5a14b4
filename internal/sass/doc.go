// Package sass compiles Sass stylesheets to CSS and owns the stylesheet
// naming rules.
//
// # Naming
//
// Sass comes in two interchangeable syntaxes, ".scss" and ".sass". A
// filename may carry a media marker introduced by "@":
//
//	theme@print.scss  ->  theme.css, media "print"
//	style.sass        ->  style.css, media "all"
//	_mixins.scss      ->  partial: include-only, never emitted
//
// # Compilation
//
// Compiler is the boundary to the preprocessor. DartSass drives the Dart
// Sass embedded protocol through godartsass; CachedCompiler memoizes
// results in an LRU keyed by the full request.
package sass
