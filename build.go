package assetkit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-assetkit/internal/pipeline"
)

// HighlightDestination is where the highlighting stylesheet is written.
const HighlightDestination = "stylesheets/highlight.css"

// Status is the outcome of one asset in a build.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusDisabled   Status = "disabled"
	StatusPartial    Status = "partial"
	StatusFailed     Status = "failed"
)

// AssetResult records what happened to one declared asset.
type AssetResult struct {
	Plugin      string
	Group       string
	Filename    string
	Kind        string
	Destination string
	Overridden  bool
	Status      Status
	Err         error
}

// Report summarizes a build pass.
type Report struct {
	BuildID  string
	Started  time.Time
	Duration time.Duration
	Plugins  int
	Assets   []AssetResult // plugin order, then declaration order
}

// Count returns the number of assets with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, a := range r.Assets {
		if a.Status == s {
			n++
		}
	}
	return n
}

// Overrides returns the number of assets resolved to a user override.
func (r *Report) Overrides() int {
	n := 0
	for _, a := range r.Assets {
		if a.Overridden && a.Status != StatusFailed {
			n++
		}
	}
	return n
}

// Builder runs build passes over a set of plugins.
type Builder struct {
	site    *Site
	workers int
	metrics *Metrics
}

// NewBuilder creates a Builder registering into site.
func NewBuilder(site *Site, opts ...BuilderOption) *Builder {
	b := &Builder{site: site}
	for _, opt := range opts {
		opt(b)
	}
	b.workers = ResolvePoolSize(b.workers)
	return b
}

// Build processes plugins in parallel, and each plugin's assets in
// declaration order. A missing asset aborts its plugin; any other failure
// skips only that asset. The returned error joins every failure.
func (b *Builder) Build(ctx context.Context, plugins []*Plugin) (*Report, error) {
	report := &Report{
		BuildID: uuid.NewString(),
		Started: time.Now(),
		Plugins: len(plugins),
	}
	log := b.site.logger.WithField("build_id", report.BuildID)

	slugs := make([]string, len(plugins))
	for i, p := range plugins {
		slugs[i] = p.Slug
	}
	b.site.tags.SetOrder(slugs)

	results := make([][]AssetResult, len(plugins))
	failures := make([][]error, len(plugins))

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, p := range plugins {
		g.Go(func() error {
			results[i], failures[i] = b.buildPlugin(ctx, log.WithField("plugin", p.Slug), p)
			return ctx.Err()
		})
	}

	var errs []error
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}
	for i := range plugins {
		report.Assets = append(report.Assets, results[i]...)
		errs = append(errs, failures[i]...)
	}

	if ctx.Err() == nil {
		if err := b.addHighlight(); err != nil {
			errs = append(errs, err)
		}
		if err := b.finalize(); err != nil {
			errs = append(errs, err)
		}
	}

	report.Duration = time.Since(report.Started)
	err := errors.Join(errs...)
	b.metrics.observeBuild(err, report.Duration)

	log.WithFields(logrus.Fields{
		"plugins":    report.Plugins,
		"registered": report.Count(StatusRegistered),
		"disabled":   report.Count(StatusDisabled),
		"failed":     report.Count(StatusFailed),
		"duration":   report.Duration.Round(time.Millisecond).String(),
	}).Info("build finished")

	return report, err
}

func (b *Builder) buildPlugin(ctx context.Context, log *logrus.Entry, p *Plugin) ([]AssetResult, []error) {
	decls, err := p.declarations()
	if err != nil {
		log.WithError(err).Error("listing assets")
		return nil, []error{err}
	}

	var (
		results []AssetResult
		errs    []error
	)

	for _, d := range decls {
		if err := ctx.Err(); err != nil {
			return results, errs
		}

		res := AssetResult{Plugin: p.Slug, Group: d.Group, Filename: d.Filename, Kind: kindOf(d.Group, d.Filename)}
		alog := log.WithFields(logrus.Fields{"group": d.Group, "file": d.Filename})

		asset, err := NewAsset(b.site, p, d.Group, d.Filename)
		if err != nil {
			res.Status, res.Err = StatusFailed, err
			results = append(results, res)
			errs = append(errs, err)
			b.metrics.observeAsset(res.Kind, res.Status, 0)

			if errors.Is(err, ErrNotFound) {
				alog.WithError(err).Error("asset not found, skipping remaining assets of plugin")
				return results, errs
			}
			alog.WithError(err).Error("asset rejected")
			continue
		}

		res.Destination = asset.Destination()
		res.Overridden = asset.Overridden()

		switch {
		case asset.Disabled():
			res.Status = StatusDisabled
			alog.Warn("asset disabled")
		case isPartial(asset):
			res.Status = StatusPartial
			alog.Debug("partial, not registered")
		default:
			if res.Overridden {
				removed := asset.RemoveHostCopy()
				alog.WithFields(logrus.Fields{"path": asset.Path(), "host_copies_removed": removed}).Warn("using override")
			}

			start := time.Now()
			if err := asset.Add(ctx); err != nil {
				res.Status, res.Err = StatusFailed, err
				errs = append(errs, err)
				alog.WithError(err).Error("asset failed")
			} else {
				res.Status = StatusRegistered
				alog.WithField("destination", res.Destination).Debug("asset registered")
			}
			b.metrics.observeAsset(res.Kind, res.Status, time.Since(start))
			results = append(results, res)
			continue
		}

		b.metrics.observeAsset(res.Kind, res.Status, 0)
		results = append(results, res)
	}

	log.WithField("assets", len(results)).Info("plugin processed")
	return results, errs
}

func isPartial(a Asset) bool {
	s, ok := a.(*StylesheetAsset)
	return ok && s.IsPartial()
}

// addHighlight registers the code highlighting stylesheet when a style is
// configured.
func (b *Builder) addHighlight() error {
	if b.site.highlightStyle == "" {
		return nil
	}
	css, err := pipeline.HighlightCSS(b.site.highlightStyle)
	if err != nil {
		return fmt.Errorf("highlight stylesheet: %w", err)
	}
	b.site.static.Add(StaticFile{Content: []byte(css), Destination: HighlightDestination})
	b.site.tags.Add("", fmt.Sprintf("<link href='%s' media='all' rel='stylesheet' type='text/css'>",
		b.site.urls.ExpandURL(HighlightDestination)))
	return nil
}

// finalize expands root-relative URLs in rendered HTML entries and injects
// the collected stylesheet tags into complete documents.
func (b *Builder) finalize() error {
	tags := b.site.tags.Tags()

	return b.site.static.Transform(func(f StaticFile) (StaticFile, error) {
		if f.Plugin == "" || !strings.HasSuffix(f.Destination, ".html") {
			return f, nil
		}

		content, err := pipeline.ExpandURLs(string(f.Content), b.site.urls.ExpandURL)
		if err != nil {
			return f, fmt.Errorf("%s: expanding URLs: %w", f.Destination, err)
		}
		if pipeline.IsHTMLDocument(content) {
			content = pipeline.InjectTags(content, tags)
		}
		f.Content = []byte(content)
		return f, nil
	})
}
