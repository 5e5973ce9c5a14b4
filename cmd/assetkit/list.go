package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-assetkit"
)

// Colors
var (
	accent = lipgloss.Color("#FF5F87")
	muted  = lipgloss.Color("#666666")
	warn   = lipgloss.Color("#FFAF00")
)

// Styles
var (
	pluginStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(accent)
	disabledStyle = lipgloss.NewStyle().Foreground(muted)
	overrideStyle = lipgloss.NewStyle().Foreground(warn)
)

// runList prints every discovered asset of every configured plugin.
// Assets that fail to resolve are listed with their error and make the
// command fail once all plugins are printed.
func runList(args []string, env *Environment) error {
	flags, err := parseListFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	envCfg := loadEnvConfig()
	logger := newLogger(env, flags.common.quiet, flags.common.verbose)

	cfg, err := loadConfig(flags.common, siteFlags{}, envCfg)
	if err != nil {
		return err
	}

	plugins, err := loadPlugins(cfg)
	if err != nil {
		return err
	}

	site, err := newSite(cfg, env.Compiler, logger)
	if err != nil {
		return err
	}
	defer site.Close()

	if len(plugins) == 0 {
		fmt.Fprintln(env.Stdout, "No plugins configured.")
		return nil
	}

	var errs []error
	for _, p := range plugins {
		errs = append(errs, listPlugin(env.Stdout, site, p)...)
	}
	return withHints(errors.Join(errs...), cfg, nil)
}

// listPlugin prints one plugin section and returns its asset errors.
func listPlugin(w io.Writer, site *assetkit.Site, p *assetkit.Plugin) []error {
	fmt.Fprintf(w, "%s (%s)\n", pluginStyle.Render(p.Name), p.Slug)

	decls, err := p.Discover()
	if err != nil {
		fmt.Fprintf(w, "  %s\n", errorStyle.Render(err.Error()))
		return []error{err}
	}
	if len(decls) == 0 {
		fmt.Fprintf(w, "  %s\n", disabledStyle.Render("no assets"))
		return nil
	}

	var errs []error
	for _, d := range decls {
		a, err := assetkit.NewAsset(site, p, d.Group, d.Filename)
		if err != nil {
			fmt.Fprintf(w, "  - %s\n", errorStyle.Render(err.Error()))
			errs = append(errs, err)
			continue
		}

		line := a.Info()
		switch {
		case a.Disabled():
			line = disabledStyle.Render(line)
		case a.Overridden():
			line = overrideStyle.Render(line)
		}
		fmt.Fprintf(w, "  - %s\n", line)
	}
	return errs
}
