// Package linkcheck crawls the generated output and verifies that every
// internal link points at something the build actually produced.
package linkcheck

import (
	"io/fs"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// BuildValidURLs walks the output tree and collects every path an internal
// link may legally resolve to: each directory (served as {dir}/index.html),
// each index.html's directory, and every other file verbatim. Paths are
// slash-separated and trimmed of surrounding slashes; the site root is "".
func BuildValidURLs(outputDir string) (sets.Set[string], error) {
	valid := sets.New[string]()
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = ""
		}
		if d.IsDir() {
			valid.Add(rel)
			return nil
		}
		if d.Name() == "index.html" {
			valid.Add(strings.Trim(strings.TrimSuffix(rel, "index.html"), "/"))
		}
		valid.Add(rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "scan output for valid urls").
			WithContext("dir", outputDir)
	}
	return valid, nil
}

// htmlFiles lists every .html file under outputDir, paths relative to it.
func htmlFiles(outputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "list generated pages").
			WithContext("dir", outputDir)
	}
	return files, nil
}
