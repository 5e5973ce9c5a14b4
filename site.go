package assetkit

import (
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-assetkit/internal/assets"
	"github.com/alnah/go-assetkit/internal/fileutil"
	"github.com/alnah/go-assetkit/internal/pipeline"
	"github.com/alnah/go-assetkit/internal/render"
	"github.com/alnah/go-assetkit/internal/sass"
)

// GeneratorName is exposed to templates as generator.name.
const GeneratorName = "assetkit"

// Version is exposed to templates as generator.version.
// Set at build time via -ldflags "-X github.com/alnah/go-assetkit.Version=...".
var Version = "dev"

// Site defaults.
const (
	DefaultCustomDir   = "_plugins"
	DefaultEnvironment = "development"
)

// URLExpander turns a site-relative path into the URL used in markup.
type URLExpander interface {
	ExpandURL(path string) string
}

// BaseURLExpander prefixes paths with the site's base URL.
// Absolute URLs and paths already under the base URL are returned as is.
type BaseURLExpander struct {
	BaseURL string
}

func (e BaseURLExpander) ExpandURL(p string) string {
	if fileutil.IsURL(p) {
		return p
	}
	base := strings.Trim(e.BaseURL, "/")
	rel := strings.TrimPrefix(p, "/")
	if base == "" {
		return "/" + rel
	}
	base = "/" + base
	if p == base || strings.HasPrefix(p, base+"/") {
		return p
	}
	return base + "/" + rel
}

// TagSet collects stylesheet inclusion tags. Tags are grouped by plugin in
// the order given to SetOrder and keep registration order within a plugin.
// It is safe for concurrent use.
type TagSet struct {
	mu      sync.Mutex
	order   []string
	entries []tagEntry
}

type tagEntry struct {
	plugin string
	tag    string
}

// NewTagSet creates an empty set.
func NewTagSet() *TagSet {
	return &TagSet{}
}

// SetOrder fixes the plugin order used by Tags. Unknown plugins sort last.
func (t *TagSet) SetOrder(slugs []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.order = slices.Clone(slugs)
}

// Add records tag for plugin.
func (t *TagSet) Add(plugin, tag string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, tagEntry{plugin: plugin, tag: tag})
}

// Tags returns the collected tags.
func (t *TagSet) Tags() []string {
	t.mu.Lock()
	entries := slices.Clone(t.entries)
	order := t.order
	t.mu.Unlock()

	rank := func(plugin string) int {
		if i := slices.Index(order, plugin); i >= 0 {
			return i
		}
		return len(order)
	}
	slices.SortStableFunc(entries, func(a, b tagEntry) int {
		return rank(a.plugin) - rank(b.plugin)
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.tag
	}
	return out
}

// Site is the build context shared by every asset of one build pass:
// locations, site data, collaborators, and the output sets.
// Create one per build with NewSite and Close it when done.
type Site struct {
	source         string
	customDir      string
	environment    string
	config         map[string]any
	data           map[string]any
	highlightStyle string

	urls      URLExpander
	engine    render.TemplateEngine
	renderer  *render.Renderer
	markdown  pipeline.HTMLConverter
	compiler  sass.Compiler
	sassStyle sass.OutputStyle
	sassOpts  sass.DartSassOptions
	cacheSize int
	logger    *logrus.Logger
	stat      func(path string) bool

	static *StaticFileSet
	tags   *TagSet
	owned  []io.Closer
}

// NewSite creates a build context. Without WithCompiler, stylesheets are
// compiled by a lazily started pool of Dart Sass processes owned by the site.
func NewSite(opts ...SiteOption) *Site {
	s := &Site{
		source:      ".",
		customDir:   DefaultCustomDir,
		environment: DefaultEnvironment,
		config:      map[string]any{},
		data:        map[string]any{},
		urls:        BaseURLExpander{},
		markdown:    pipeline.NewGoldmarkConverter(),
		sassStyle:   sass.StyleExpanded,
		logger:      discardLogger(),
		stat:        fileutil.FileExists,
		static:      NewStaticFileSet(),
		tags:        NewTagSet(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.engine == nil {
		liquid := render.NewLiquidEngine()
		liquid.RegisterFilter("expand_url", s.urls.ExpandURL)
		s.engine = liquid
	}
	s.renderer = render.NewRenderer(s.engine)

	if s.compiler == nil {
		opts := s.sassOpts
		if opts.OnLog == nil {
			opts.OnLog = s.logSass
		}
		pool := NewCompilerPool(ResolvePoolSize(0), DartSassFactory(opts))
		s.compiler = pool
		s.owned = append(s.owned, pool)
	}
	if s.cacheSize >= 0 {
		s.compiler = sass.NewCachedCompiler(s.compiler, s.cacheSize)
	}

	return s
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (s *Site) logSass(level, message string) {
	entry := s.logger.WithField("component", "sass")
	if level == "debug" {
		entry.Debug(message)
		return
	}
	entry.Warn(message)
}

// Source returns the site source directory.
func (s *Site) Source() string { return s.source }

// CustomDir returns the override directory name under the source.
func (s *Site) CustomDir() string { return s.customDir }

// OverrideRoot returns <source>/<customDir>.
func (s *Site) OverrideRoot() string {
	return filepath.Join(s.source, s.customDir)
}

// OverrideDir returns the user override directory for a plugin group.
func (s *Site) OverrideDir(slug, group string) string {
	return filepath.Join(s.OverrideRoot(), slug, group)
}

// StaticFiles returns the output set.
func (s *Site) StaticFiles() *StaticFileSet { return s.static }

// Tags returns the stylesheet tag set.
func (s *Site) Tags() *TagSet { return s.tags }

// URLs returns the URL expander.
func (s *Site) URLs() URLExpander { return s.urls }

// Logger returns the site logger.
func (s *Site) Logger() *logrus.Logger { return s.logger }

func (s *Site) newResolver() *assets.Resolver {
	return assets.NewResolverWithStat(s.stat)
}

func (s *Site) payloadInput() render.PayloadInput {
	return render.PayloadInput{
		Generator: render.Generator{
			Name:        GeneratorName,
			Version:     Version,
			Environment: s.environment,
		},
		SiteConfig: s.config,
		SiteData:   s.data,
	}
}

// Close releases collaborators the site started itself.
func (s *Site) Close() error {
	var errs []error
	for _, c := range s.owned {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.owned = nil
	return errors.Join(errs...)
}
