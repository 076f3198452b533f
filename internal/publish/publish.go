// Package publish writes rendered documents and assets into the output tree.
package publish

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/document"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/parallel"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
)

// CleanOutput clears and recreates the output root. Full rebuilds only.
func CleanOutput(site *config.Site) error {
	if err := os.RemoveAll(site.OutputDir); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "clear output directory").
			WithContext("dir", site.OutputDir)
	}
	if err := os.MkdirAll(site.OutputDir, 0o755); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "create output directory").
			WithContext("dir", site.OutputDir)
	}
	return nil
}

// WriteDocument writes rendered bytes to the document's output path: the
// explicit target file when set, otherwise {url}/index.html.
func WriteDocument(site *config.Site, doc *document.Document, rendered []byte) error {
	var path string
	if doc.TargetFile != "" {
		path = filepath.Join(site.OutputDir, filepath.FromSlash(doc.TargetFile))
	} else {
		path = filepath.Join(site.OutputDir, filepath.FromSlash(doc.URL), "index.html")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "create output directory").
			WithContext("document", doc.Name)
	}
	if err := os.WriteFile(path, rendered, 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "write document").
			WithContext("document", doc.Name).
			WithContext("path", path)
	}
	slog.Debug("Wrote document", logfields.Document(doc.Name), logfields.File(path))
	return nil
}

type assetCopy struct {
	src string
	dst string
}

func (a assetCopy) String() string { return a.src }

// CopyAssets mirrors every asset bucket into output/assets/{bucket}/. A file
// literally named favicon.ico in the favicon bucket lands at the output root.
func CopyAssets(site *config.Site, assets map[string][]string) error {
	var copies []assetCopy
	for bucket, paths := range assets {
		for _, src := range paths {
			name := filepath.Base(src)
			dst := filepath.Join(site.OutputDir, "assets", bucket, name)
			if bucket == "favicon" && name == "favicon.ico" {
				dst = filepath.Join(site.OutputDir, name)
			}
			copies = append(copies, assetCopy{src: src, dst: dst})
		}
	}

	return parallel.RunVoid(copies, site.MaxWorkers, func(c assetCopy) error {
		return copyFile(c.src, c.dst)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "open asset").
			WithContext("path", src)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "create asset directory").
			WithContext("path", dst)
	}
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "create asset").
			WithContext("path", dst)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "copy asset").
			WithContext("path", dst)
	}
	return nil
}

// WriteCSSPartials minifies every stylesheet asset and wraps it into an
// inline <style> partial under the site's auto-generated templates, where
// page templates pick it up through the partial helper.
func WriteCSSPartials(site *config.Site, cssPaths []string) error {
	dir := filepath.Join(site.TemplatesDir(), "partials", "auto-generated")
	if len(cssPaths) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "create partials directory")
	}

	return parallel.RunVoid(cssPaths, site.MaxWorkers, func(src string) error {
		raw, err := os.ReadFile(src)
		if err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "read stylesheet").
				WithContext("path", src)
		}
		stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		partial := "<style>" + render.MinifyCSS(string(raw)) + "</style>"
		path := filepath.Join(dir, "_"+stem+"_css.html")
		if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "write css partial").
				WithContext("path", path)
		}
		return nil
	})
}

// FillIndexPlaceholders writes an empty index.html into every output
// directory lacking one, to suppress server directory listings.
func FillIndexPlaceholders(outputDir string) error {
	return filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		index := filepath.Join(path, "index.html")
		if _, statErr := os.Stat(index); statErr == nil {
			return nil
		}
		return os.WriteFile(index, nil, 0o644)
	})
}
