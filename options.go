package assetkit

import (
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-assetkit/internal/pipeline"
	"github.com/alnah/go-assetkit/internal/render"
	"github.com/alnah/go-assetkit/internal/sass"
)

// SiteOption configures a Site.
type SiteOption func(*Site)

// WithSource sets the site source directory (default ".").
func WithSource(dir string) SiteOption {
	return func(s *Site) {
		s.source = dir
	}
}

// WithCustomDir sets the override directory name under the source
// (default "_plugins").
func WithCustomDir(name string) SiteOption {
	if name == "" {
		panic("assetkit: WithCustomDir name must not be empty")
	}
	return func(s *Site) {
		s.customDir = name
	}
}

// WithEnvironment sets generator.environment for templates.
func WithEnvironment(env string) SiteOption {
	return func(s *Site) {
		s.environment = env
	}
}

// WithSiteConfig sets the configuration tree exposed as site.*.
func WithSiteConfig(cfg map[string]any) SiteOption {
	return func(s *Site) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithSiteData sets the data tree exposed as site.data.
func WithSiteData(data map[string]any) SiteOption {
	return func(s *Site) {
		if data != nil {
			s.data = data
		}
	}
}

// WithBaseURL installs a BaseURLExpander for baseURL.
func WithBaseURL(baseURL string) SiteOption {
	return WithURLExpander(BaseURLExpander{BaseURL: baseURL})
}

// WithURLExpander replaces the URL expander.
func WithURLExpander(e URLExpander) SiteOption {
	return func(s *Site) {
		s.urls = e
	}
}

// WithTemplateEngine replaces the Liquid engine.
func WithTemplateEngine(e render.TemplateEngine) SiteOption {
	return func(s *Site) {
		s.engine = e
	}
}

// WithMarkdownConverter replaces the Goldmark converter.
func WithMarkdownConverter(c pipeline.HTMLConverter) SiteOption {
	return func(s *Site) {
		s.markdown = c
	}
}

// WithCompiler sets the Sass compiler. The caller keeps ownership: Site.Close
// does not close it.
func WithCompiler(c sass.Compiler) SiteOption {
	return func(s *Site) {
		s.compiler = c
	}
}

// WithDartSass configures the Dart Sass pool the site starts when no
// compiler is given.
func WithDartSass(opts sass.DartSassOptions) SiteOption {
	return func(s *Site) {
		s.sassOpts = opts
	}
}

// WithOutputStyle sets the compiled CSS style.
func WithOutputStyle(style sass.OutputStyle) SiteOption {
	return func(s *Site) {
		s.sassStyle = style
	}
}

// WithCompileCacheSize bounds the per-site compile cache.
// Zero uses the default size; a negative size disables caching.
func WithCompileCacheSize(n int) SiteOption {
	return func(s *Site) {
		s.cacheSize = n
	}
}

// WithHighlightStyle emits a syntax-highlighting stylesheet in the named
// Chroma style with every build.
func WithHighlightStyle(name string) SiteOption {
	return func(s *Site) {
		s.highlightStyle = name
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logrus.Logger) SiteOption {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStaticFiles shares an existing output set, e.g. one the host already
// filled with raw copies of site files.
func WithStaticFiles(set *StaticFileSet) SiteOption {
	return func(s *Site) {
		if set != nil {
			s.static = set
		}
	}
}

// withStat replaces the existence check used by resolvers.
func withStat(stat func(path string) bool) SiteOption {
	return func(s *Site) {
		s.stat = stat
	}
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithWorkers sets how many plugins build in parallel.
// Zero uses ResolvePoolSize(0).
func WithWorkers(n int) BuilderOption {
	if n < 0 {
		panic("assetkit: WithWorkers count must not be negative")
	}
	return func(b *Builder) {
		b.workers = n
	}
}

// WithMetrics records build metrics into m.
func WithMetrics(m *Metrics) BuilderOption {
	return func(b *Builder) {
		b.metrics = m
	}
}
