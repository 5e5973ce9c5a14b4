package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-assetkit"
	"github.com/alnah/go-assetkit/internal/config"
	"github.com/alnah/go-assetkit/internal/sass"
	"github.com/alnah/go-assetkit/internal/watch"
)

// shutdownTimeout bounds the metrics server shutdown.
const shutdownTimeout = 5 * time.Second

// rebuilder runs one build pass per batch of changes. The configuration is
// reloaded every pass; the compiler lives for the whole session.
type rebuilder struct {
	env      *Environment
	flags    *watchFlags
	envCfg   *envConfig
	compiler sass.Compiler
	logger   *logrus.Logger
	metrics  *assetkit.Metrics
	workers  int
}

// pass loads the configuration and builds. Errors are logged, never
// returned: a broken edit must not stop the session.
func (r *rebuilder) pass(ctx context.Context) *config.Config {
	cfg, err := loadConfig(r.flags.build.common, r.flags.build.site, r.envCfg)
	if err != nil {
		r.logger.WithError(err).Error("loading config")
		return nil
	}

	res, err := buildOnce(ctx, cfg, r.compiler, r.logger, r.workers, r.metrics)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error(err.Error())
		}
		return cfg
	}
	if res != nil && !r.flags.build.common.quiet {
		printBuildResult(r.env.Stdout, res, r.flags.build.stats)
	}
	return cfg
}

// runWatch builds once, then rebuilds on every change until ctx is done.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	envCfg := loadEnvConfig()
	logger := newLogger(env, flags.build.common.quiet, flags.build.common.verbose)

	cfg, err := loadConfig(flags.build.common, flags.build.site, envCfg)
	if err != nil {
		return err
	}

	workers := resolveWorkers(flags.build.workers, envCfg)
	compiler, closeCompiler := newCompiler(env, cfg, resolveTimeout(flags.build.timeout, envCfg), workers, logger)
	defer closeCompiler()

	reg := prometheus.NewRegistry()
	r := &rebuilder{
		env:      env,
		flags:    flags,
		envCfg:   envCfg,
		compiler: compiler,
		logger:   logger,
		metrics:  assetkit.NewMetrics(reg),
		workers:  workers,
	}

	if initial := r.pass(ctx); initial != nil {
		cfg = initial
	}

	w, err := newSiteWatcher(cfg, flags.debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	w.OnChange = func(ctx context.Context, paths []string) {
		logger.WithField("files", len(paths)).Info("change detected, rebuilding")
		for _, p := range paths {
			logger.WithField("path", p).Debug("changed")
		}
		r.pass(ctx)
	}
	w.OnError = func(err error) {
		logger.WithError(err).Warn("watcher")
	}

	logger.WithField("directories", len(w.WatchList())).Info("watching for changes")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx)
	})
	if flags.metricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(gctx, flags.metricsAddr, reg, logger)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// Interrupted by the user: a normal way to stop watching.
		return nil
	}
	return err
}

// newSiteWatcher watches the site source and every plugin's asset root,
// ignoring the destination.
func newSiteWatcher(cfg *config.Config, debounce time.Duration) (*watch.Watcher, error) {
	w, err := watch.NewWatcher(debounce, cfg.DestinationPath())
	if err != nil {
		return nil, err
	}

	roots := []string{cfg.Source}
	for _, slug := range cfg.PluginSlugs() {
		roots = append(roots, cfg.AssetsRoot(slug))
	}
	for _, root := range roots {
		if err := w.AddTree(root); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	return w, nil
}

// serveMetrics serves /metrics until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *logrus.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.WithField("addr", ln.Addr().String()).Info("serving metrics")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
