package linkcheck

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/parallel"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

type finding struct {
	url       string
	file      string
	malformed bool
}

// Verify crawls every generated HTML page and checks each internal link
// against the set of URLs the build produced. External links are left alone.
// One aggregate error comes back naming every broken link and its source.
func Verify(site *config.Site, outputDir string) error {
	valid, err := BuildValidURLs(outputDir)
	if err != nil {
		return err
	}
	files, err := htmlFiles(outputDir)
	if err != nil {
		return err
	}
	slog.Debug("Crawling generated pages", logfields.Count(len(files)), logfields.Site(site.Name))

	results, err := parallel.Run(files, site.MaxWorkers, func(file string) (*[]finding, error) {
		found, checkErr := checkFile(site, outputDir, file, valid)
		if checkErr != nil {
			return nil, checkErr
		}
		if len(found) == 0 {
			return nil, nil
		}
		return &found, nil
	})
	if err != nil {
		return err
	}

	agg := errors.NewAggregate("link validation")
	seen := sets.New[string]()
	for _, findings := range results {
		for _, f := range findings {
			key := f.file + "\x00" + f.url
			if seen.Has(key) {
				continue
			}
			seen.Add(key)
			if f.malformed {
				agg.Add(errors.MalformedLink(f.url, f.file))
			} else {
				agg.Add(errors.BrokenLink(f.url, f.file))
			}
		}
	}
	return agg.Err()
}

func checkFile(site *config.Site, outputDir, file string, valid sets.Set[string]) ([]finding, error) {
	f, err := os.Open(filepath.Join(outputDir, filepath.FromSlash(file)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "open generated page").
			WithContext("file", file)
	}
	defer func() { _ = f.Close() }()

	urls, err := ExtractURLs(f)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryLinks, errors.SeverityError, "parse generated page").
			WithContext("file", file)
	}

	var findings []finding
	for _, u := range urls {
		if !isInternal(site, u) {
			continue
		}
		if hasDoubledSeparator(u) {
			findings = append(findings, finding{url: u, file: file, malformed: true})
			continue
		}
		path := normalize(site, u)
		if !valid.Has(path) {
			findings = append(findings, finding{url: u, file: file})
		}
	}
	return findings, nil
}

// isInternal reports whether the URL targets this site: absolute under the
// configured base URL, or site-relative.
func isInternal(site *config.Site, u string) bool {
	if strings.HasPrefix(u, site.URL+"/") || u == site.URL {
		return true
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return false
	}
	if strings.HasPrefix(u, "//") || strings.HasPrefix(u, "mailto:") || strings.HasPrefix(u, "tel:") ||
		strings.HasPrefix(u, "data:") || strings.HasPrefix(u, "#") {
		return false
	}
	return strings.HasPrefix(u, "/") || strings.HasPrefix(u, "./")
}

// hasDoubledSeparator flags paths like /en//posts, the typical symptom of a
// url assembled from an empty fragment. The scheme's own // is exempt.
func hasDoubledSeparator(u string) bool {
	if _, rest, ok := strings.Cut(u, "://"); ok {
		u = rest
	}
	return strings.Contains(u, "//")
}

// normalize maps a link to the slash-trimmed output path it must resolve to.
func normalize(site *config.Site, u string) string {
	u = strings.TrimPrefix(u, site.URL)
	u = strings.TrimPrefix(u, "./")
	if q, _, ok := strings.Cut(u, "?"); ok {
		u = q
	}
	if f, _, ok := strings.Cut(u, "#"); ok {
		u = f
	}
	if strings.HasSuffix(u, "/index.html") || u == "index.html" {
		u = strings.TrimSuffix(u, "index.html")
	}
	return strings.Trim(u, "/")
}
