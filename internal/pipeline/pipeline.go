// Package pipeline sequences the build phases. Each phase is fatal at its
// boundary: a later phase never runs against a partially failed earlier one.
package pipeline

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/discovery"
	"git.home.luguber.info/inful/sitebuilder/internal/document"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/linkcheck"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/parallel"
	"git.home.luguber.info/inful/sitebuilder/internal/publish"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

// Run executes a full site build: clean output, discover content, generate
// CSS partials, process documents, render and publish, copy assets, backfill
// index placeholders, then crawl the result for broken links.
func Run(site *config.Site) error {
	start := time.Now()
	slog.Info("Building site",
		logfields.Site(site.Name),
		slog.String("env", site.Env),
		slog.String("output", site.OutputDir))

	if err := timed("clean", func() error { return publish.CleanOutput(site) }); err != nil {
		return err
	}

	var reg *discovery.Registry
	if err := timed("discovery", func() error {
		var err error
		reg, err = discovery.Discover(site)
		return err
	}); err != nil {
		return err
	}
	assets := reg.Assets()

	// CSS partials are written into the site template tree before rendering
	// so templates can inline them through the partial helper.
	if err := timed("css-partials", func() error {
		return publish.WriteCSSPartials(site, assets["css"])
	}); err != nil {
		return err
	}

	var col *document.Collection
	if err := timed("documents", func() error {
		var err error
		col, err = document.Process(site, reg)
		return err
	}); err != nil {
		return err
	}

	if err := timed("render", func() error { return renderAll(site, col) }); err != nil {
		return err
	}

	if err := timed("assets", func() error { return publish.CopyAssets(site, assets) }); err != nil {
		return err
	}
	if err := timed("index-fill", func() error {
		return publish.FillIndexPlaceholders(site.OutputDir)
	}); err != nil {
		return err
	}

	if site.ValidateSite() {
		if err := timed("linkcheck", func() error {
			return linkcheck.Verify(site, site.OutputDir)
		}); err != nil {
			return err
		}
	}

	slog.Info("Build complete",
		logfields.Site(site.Name),
		logfields.Count(len(col.All())),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

// RunSingle rebuilds one content file into the existing output tree. Cross
// document state (navigation, tag pages, link validation) is skipped, so this
// is a drafting aid, not a production build.
func RunSingle(site *config.Site, file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "resolve content file").
			WithContext("file", file)
	}
	stub := discovery.Stub{
		FilePath:    abs,
		ContentType: contentTypeOf(site, abs),
		Name:        strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
	}

	col, err := document.ProcessSingle(site, stub)
	if err != nil {
		return err
	}
	return renderAll(site, col)
}

// contentTypeOf classifies a file by its location under the site's content
// tree. Anything outside content/posts is treated as a page.
func contentTypeOf(site *config.Site, path string) discovery.ContentType {
	postsRoot := site.ContentDir("posts")
	if rel, err := filepath.Rel(postsRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
		return discovery.Posts
	}
	return discovery.Pages
}

// renderAll renders every document in parallel and writes each result.
func renderAll(site *config.Site, col *document.Collection) error {
	env := render.NewEnvironment(site, col)
	return parallel.RunVoid(col.All(), site.MaxWorkers, func(doc *document.Document) error {
		out, err := env.Render(doc)
		if err != nil {
			return err
		}
		return publish.WriteDocument(site, doc, out)
	})
}

// timed runs one phase and logs its duration on success.
func timed(phase string, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		slog.Error("Phase failed", logfields.Phase(phase), logfields.Error(err))
		return err
	}
	slog.Debug("Phase complete", logfields.Phase(phase),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}
