package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-assetkit"
	"github.com/alnah/go-assetkit/internal/config"
	"github.com/alnah/go-assetkit/internal/hints"
	"github.com/alnah/go-assetkit/internal/pipeline"
	"github.com/alnah/go-assetkit/internal/sass"
)

// loadConfig resolves the configuration for one pass.
// Priority: CLI flags > env vars > config file > defaults.
// A missing default config file is fine; a missing explicit one is not.
func loadConfig(common commonFlags, site siteFlags, envCfg *envConfig) (*config.Config, error) {
	source := firstNonEmpty(common.source, envCfg.Source, ".")
	path := firstNonEmpty(common.config, envCfg.ConfigPath)
	explicit := path != ""
	if !explicit {
		path = filepath.Join(source, config.DefaultFilename)
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
		if common.source != "" || envCfg.Source != "" {
			cfg.Source = source
		}
	case !explicit && errors.Is(err, config.ErrConfigNotFound):
		cfg = config.Default()
		cfg.Source = source
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound())
	default:
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	applySiteFlags(site, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Templates see the effective values.
	cfg.Raw["baseurl"] = cfg.BaseURL
	cfg.Raw["environment"] = cfg.Environment
	return cfg, nil
}

// applySiteFlags overrides config values with set flags.
func applySiteFlags(f siteFlags, cfg *config.Config) {
	if f.destination != "" {
		cfg.Destination = f.destination
	}
	if f.baseURL != "" {
		cfg.BaseURL = f.baseURL
	}
	if f.env != "" {
		cfg.Environment = f.env
	}
	if f.highlight != "" {
		cfg.Highlight.Style = f.highlight
	}
}

// loadPlugins creates the configured plugins in slug order.
func loadPlugins(cfg *config.Config) ([]*assetkit.Plugin, error) {
	plugins := make([]*assetkit.Plugin, 0, len(cfg.Plugins))
	for _, slug := range cfg.PluginSlugs() {
		pc := cfg.Plugins[slug]
		p, err := assetkit.NewPlugin(slug, assetkit.PluginConfig{
			Name:       pc.Name,
			AssetsPath: cfg.AssetsRoot(slug),
			Disable:    pc.Disable,
		})
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// newSite creates the build context for cfg. compiler is shared across
// passes and stays owned by the caller.
func newSite(cfg *config.Config, compiler sass.Compiler, logger *logrus.Logger) (*assetkit.Site, error) {
	data, err := config.LoadData(cfg.DataPath())
	if err != nil {
		return nil, err
	}

	return assetkit.NewSite(
		assetkit.WithSource(cfg.Source),
		assetkit.WithCustomDir(cfg.PluginsDir),
		assetkit.WithEnvironment(cfg.Environment),
		assetkit.WithSiteConfig(cfg.Raw),
		assetkit.WithSiteData(data),
		assetkit.WithBaseURL(cfg.BaseURL),
		assetkit.WithCompiler(compiler),
		assetkit.WithOutputStyle(sass.ParseOutputStyle(cfg.Sass.Style)),
		assetkit.WithCompileCacheSize(cfg.Sass.CacheSize),
		assetkit.WithHighlightStyle(cfg.Highlight.Style),
		assetkit.WithLogger(logger),
	), nil
}

// newCompiler returns env's compiler, or a Dart Sass pool sized for
// workers. The returned close function releases the pool.
func newCompiler(env *Environment, cfg *config.Config, timeout time.Duration, workers int, logger *logrus.Logger) (sass.Compiler, func()) {
	if env.Compiler != nil {
		return env.Compiler, func() {}
	}

	pool := assetkit.NewCompilerPool(assetkit.ResolvePoolSize(workers), assetkit.DartSassFactory(sass.DartSassOptions{
		Binary:  cfg.Sass.Binary,
		Timeout: timeout,
		OnLog: func(level, message string) {
			entry := logger.WithField("component", "sass")
			if level == "debug" {
				entry.Debug(message)
				return
			}
			entry.Warn(message)
		},
	}))
	return pool, func() {
		if err := pool.Close(); err != nil {
			logger.WithError(err).Warn("stopping sass")
		}
	}
}

// withHints appends actionable hints for the failures in err.
func withHints(err error, cfg *config.Config, report *assetkit.Report) error {
	if err == nil {
		return nil
	}

	var extra string
	if report != nil {
		for _, r := range report.Assets {
			if errors.Is(r.Err, assetkit.ErrNotFound) {
				extra += hints.ForAssetNotFound(cfg.OverrideRoot(), r.Plugin, r.Group, r.Filename)
			}
		}
	}
	switch {
	case errors.Is(err, assetkit.ErrCompilerUnavailable):
		extra += hints.ForSassBinary()
	case errors.Is(err, pipeline.ErrUnknownStyle):
		extra += hints.ForHighlightStyle(styles.Names())
	case errors.Is(err, assetkit.ErrWrite):
		extra += hints.ForOutputDirectory()
	case errors.Is(err, context.DeadlineExceeded):
		extra += hints.ForTimeout()
	}

	if extra == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, extra)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
