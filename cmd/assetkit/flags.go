package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag validation.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers caps --workers. Plugins build in parallel, each Sass compile
// holding one Dart Sass process.
const maxWorkers = 32

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	source  string
	quiet   bool
	verbose bool
}

// siteFlags override site configuration values.
type siteFlags struct {
	destination string
	baseURL     string
	env         string
	highlight   string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common      commonFlags
	site        siteFlags
	workers     int
	timeout     time.Duration
	stats       bool
	metricsFile string
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	build       buildFlags
	debounce    time.Duration
	metricsAddr string
}

// listFlags holds flags for the list command.
type listFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file (default <source>/_config.yml)")
	fs.StringVarP(&f.source, "source", "s", "", "site source directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every asset")
}

// addSiteFlags adds configuration override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.destination, "destination", "d", "", "output directory")
	fs.StringVar(&f.baseURL, "baseurl", "", "URL prefix for generated links")
	fs.StringVarP(&f.env, "env", "e", "", "generator.environment for templates")
	fs.StringVar(&f.highlight, "highlight-style", "", "emit a Chroma highlighting stylesheet")
}

// addBuildFlags adds build flags to a FlagSet.
func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.IntVarP(&f.workers, "workers", "w", 0, "plugins built in parallel (0 = auto)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-stylesheet compile timeout (e.g. 30s)")
	fs.BoolVar(&f.stats, "stats", false, "print a build summary")
	fs.StringVar(&f.metricsFile, "metrics", "", "write Prometheus metrics to this file")
}

// validateWorkers checks the --workers range.
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// parseArgs parses a command FlagSet and rejects positional arguments.
// -h and --help return flag.ErrHelp after printing the usage.
func parseArgs(fs *flag.FlagSet, args []string, usage func(io.Writer), stderr io.Writer) error {
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

// parseBuildFlags parses build command flags.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}
	addBuildFlags(fs, f)

	if err := parseArgs(fs, args, printBuildUsage, stderr); err != nil {
		return nil, err
	}
	if err := validateWorkers(f.workers); err != nil {
		return nil, err
	}
	return f, nil
}

// parseWatchFlags parses watch command flags.
func parseWatchFlags(args []string, stderr io.Writer) (*watchFlags, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	f := &watchFlags{}
	addBuildFlags(fs, &f.build)
	fs.DurationVar(&f.debounce, "debounce", 0, "quiet period before rebuilding (default 300ms)")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	if err := parseArgs(fs, args, printWatchUsage, stderr); err != nil {
		return nil, err
	}
	if err := validateWorkers(f.build.workers); err != nil {
		return nil, err
	}
	return f, nil
}

// parseListFlags parses list command flags.
func parseListFlags(args []string, stderr io.Writer) (*listFlags, error) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	f := &listFlags{}
	addCommonFlags(fs, &f.common)

	if err := parseArgs(fs, args, printListUsage, stderr); err != nil {
		return nil, err
	}
	return f, nil
}
