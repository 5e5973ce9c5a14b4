package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-assetkit"
	"github.com/alnah/go-assetkit/internal/config"
	"github.com/alnah/go-assetkit/internal/sass"
)

// buildResult is the outcome of one pass.
type buildResult struct {
	report  *assetkit.Report
	written int
	dest    string
}

// runBuild runs one build pass and writes the output.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	envCfg := loadEnvConfig()
	logger := newLogger(env, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(flags.common, flags.site, envCfg)
	if err != nil {
		return err
	}

	workers := resolveWorkers(flags.workers, envCfg)
	compiler, closeCompiler := newCompiler(env, cfg, resolveTimeout(flags.timeout, envCfg), workers, logger)
	defer closeCompiler()

	var (
		reg     *prometheus.Registry
		metrics *assetkit.Metrics
	)
	if flags.metricsFile != "" {
		reg = prometheus.NewRegistry()
		metrics = assetkit.NewMetrics(reg)
	}

	res, err := buildOnce(ctx, cfg, compiler, logger, workers, metrics)

	if reg != nil {
		if werr := prometheus.WriteToTextfile(flags.metricsFile, reg); werr != nil {
			logger.WithError(werr).Error("writing metrics")
		}
	}

	if res != nil && !flags.common.quiet {
		printBuildResult(env.Stdout, res, flags.stats)
	}
	return err
}

// buildOnce loads plugins and data, builds, and writes the destination.
// The result is non-nil whenever a build pass ran.
func buildOnce(ctx context.Context, cfg *config.Config, compiler sass.Compiler, logger *logrus.Logger, workers int, metrics *assetkit.Metrics) (*buildResult, error) {
	plugins, err := loadPlugins(cfg)
	if err != nil {
		return nil, err
	}

	site, err := newSite(cfg, compiler, logger)
	if err != nil {
		return nil, err
	}
	defer site.Close()

	builder := assetkit.NewBuilder(site, assetkit.WithWorkers(workers), assetkit.WithMetrics(metrics))
	report, buildErr := builder.Build(ctx, plugins)

	res := &buildResult{report: report, dest: cfg.DestinationPath()}
	if ctx.Err() != nil {
		return res, withHints(buildErr, cfg, report)
	}

	written, writeErr := site.StaticFiles().Write(res.dest)
	res.written = written

	return res, withHints(errors.Join(buildErr, writeErr), cfg, report)
}

// printBuildResult prints the one-line outcome, and the summary with stats.
func printBuildResult(w io.Writer, res *buildResult, stats bool) {
	fmt.Fprintf(w, "Wrote %d files to %s\n", res.written, res.dest)
	if !stats || res.report == nil {
		return
	}

	r := res.report
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Build %s\n", r.BuildID)
	fmt.Fprintf(w, "  plugins:     %d\n", r.Plugins)
	fmt.Fprintf(w, "  registered:  %d\n", r.Count(assetkit.StatusRegistered))
	fmt.Fprintf(w, "  disabled:    %d\n", r.Count(assetkit.StatusDisabled))
	fmt.Fprintf(w, "  partials:    %d\n", r.Count(assetkit.StatusPartial))
	fmt.Fprintf(w, "  failed:      %d\n", r.Count(assetkit.StatusFailed))
	fmt.Fprintf(w, "  overrides:   %d\n", r.Overrides())
	fmt.Fprintf(w, "  duration:    %s\n", r.Duration.Round(time.Millisecond))
}

// resolveWorkers applies flag > env > auto.
func resolveWorkers(flagWorkers int, envCfg *envConfig) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envCfg.Workers > 0 {
		return min(envCfg.Workers, maxWorkers)
	}
	return 0
}

// resolveTimeout applies flag > env > none.
func resolveTimeout(flagTimeout time.Duration, envCfg *envConfig) time.Duration {
	if flagTimeout > 0 {
		return flagTimeout
	}
	return envCfg.Timeout
}
