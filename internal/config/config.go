// Package config resolves the layered site configuration: built-in defaults,
// environment/CLI overrides, and the site's directory of YAML fragments, all
// merged into one tree that every later build phase consumes.
package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/confmap"
)

// Site is the resolved configuration handed through the pipeline. No phase
// reads ambient global state; everything flows through this value.
type Site struct {
	// Tree is the merged configuration tree, the single source of truth.
	Tree confmap.Tree

	Name       string // site name (lowercased directory name)
	Dir        string // absolute site directory
	ThemeDir   string // absolute theme directory
	Env        string // active build environment (dev, prod)
	URL        string // base URL for the active environment
	OutputDir  string // output root for the active environment
	MaxWorkers int    // bounded pool size shared by all fan-out phases
}

// Languages returns the per-language configuration subtree.
func (s *Site) Languages() confmap.Tree {
	return s.Tree.Map("content.languages")
}

// Language returns the configuration for one language code.
func (s *Site) Language(code string) confmap.Tree {
	return s.Tree.Map("content.languages." + code)
}

// SkipLanguagePath reports whether URLs for code omit the language prefix.
func (s *Site) SkipLanguagePath(code string) bool {
	return s.Language(code).Bool("skip_language_path_in_url", false)
}

// WordsPerMinute returns the read-time divisor.
func (s *Site) WordsPerMinute() int {
	return s.Tree.Int("build.settings.read_time_words_per_minute", 200)
}

// PrettifyHTML reports whether output is pretty-printed instead of minified.
func (s *Site) PrettifyHTML() bool {
	return s.Tree.Bool("build.settings.prettify_html", true)
}

// ValidateSite reports whether the post-build link crawler runs.
func (s *Site) ValidateSite() bool {
	return s.Tree.Bool("build.settings.validate_site", true)
}

// TagsEnabled reports whether tag listing pages are synthesized.
func (s *Site) TagsEnabled() bool {
	return s.Tree.Bool("content.pages.tags.enabled", false)
}

// TagLanguages returns the languages tag pages are generated for.
func (s *Site) TagLanguages() []string {
	return s.Tree.Strings("content.pages.tags.languages")
}

// ContentDir returns a path under the site's content directory.
func (s *Site) ContentDir(parts ...string) string {
	return filepath.Join(append([]string{s.Dir, "content"}, parts...)...)
}

// AssetsDir returns the site's asset directory.
func (s *Site) AssetsDir() string { return filepath.Join(s.Dir, "assets") }

// TemplatesDir returns the site's template directory.
func (s *Site) TemplatesDir() string { return filepath.Join(s.Dir, "templates") }

// ThemeTemplatesDir returns the theme's template directory.
func (s *Site) ThemeTemplatesDir() string { return filepath.Join(s.ThemeDir, "templates") }

// ThemePagesDir returns the theme's content pages directory.
func (s *Site) ThemePagesDir() string { return filepath.Join(s.ThemeDir, "content", "pages") }

// ThemeAssetsDir returns the theme's asset directory.
func (s *Site) ThemeAssetsDir() string { return filepath.Join(s.ThemeDir, "assets") }
