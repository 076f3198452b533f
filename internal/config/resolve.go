package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/confmap"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// Options carries CLI-level overrides. CLI values take precedence over
// environment variables.
type Options struct {
	SiteName string // overrides SITEBUILDER_SITE
	SitesDir string // overrides SITEBUILDER_SITES_DIR, default "sites"
	Env      string // build environment name, default "dev"
}

var configExtensions = map[string]bool{".yml": true, ".yaml": true}

// Resolve builds the configuration for one site: defaults, then env/CLI
// overrides into the env subtree, then every YAML fragment under the site's
// config directory deep-merged at its path-derived dotted key.
func Resolve(opts Options) (*Site, error) {
	loadDotEnv()

	siteName := opts.SiteName
	if siteName == "" {
		siteName = os.Getenv(EnvSite)
	}
	if siteName == "" {
		return nil, errors.ConfigRequired(EnvSite)
	}
	siteName = strings.ToLower(siteName)

	sitesDir := opts.SitesDir
	if sitesDir == "" {
		sitesDir = os.Getenv(EnvSitesDir)
	}
	if sitesDir == "" {
		sitesDir = "sites"
	}

	env := opts.Env
	if env == "" {
		env = "dev"
	}

	siteDir, err := filepath.Abs(filepath.Join(sitesDir, siteName))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "resolve site directory")
	}

	tree := defaultTree()
	tree.SetPath("env.name", env)
	tree.SetPath("env.site_name", siteName)
	tree.SetPath("env.sites_dir", sitesDir)

	configDir := filepath.Join(siteDir, "config")
	if info, statErr := os.Stat(configDir); statErr != nil || !info.IsDir() {
		return nil, errors.ConfigDirNotFound(configDir)
	}
	if err := mergeFragments(tree, configDir); err != nil {
		return nil, err
	}

	site := &Site{
		Tree: tree,
		Name: siteName,
		Dir:  siteDir,
		Env:  env,
	}
	deriveComputed(site)
	return site, nil
}

// mergeFragments walks the config directory and merges each YAML file at the
// dotted key derived from its relative path. WalkDir enumerates in lexical
// order, which fixes the merge order for conflicting fragments.
func mergeFragments(tree confmap.Tree, configDir string) error {
	return filepath.WalkDir(configDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "walk config directory")
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if !configExtensions[ext] {
			return nil
		}

		key := fragmentKey(configDir, path, ext)
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return errors.Wrap(readErr, errors.CategoryFileSystem, errors.SeverityFatal, "read config file").
				WithContext("file", path)
		}

		var value any
		if yamlErr := yaml.Unmarshal(raw, &value); yamlErr != nil {
			return errors.ConfigParse(path, yamlErr)
		}
		if value == nil {
			return nil
		}

		tree.SetPath(key, unwrapSingleKey(key, value))
		return nil
	})
}

// fragmentKey converts a fragment's path relative to the config root into a
// dotted key: config/content/languages/en.yml -> content.languages.en.
// Dots inside the file stem add depth: content/pages.tags.yml -> content.pages.tags.
func fragmentKey(configDir, path, ext string) string {
	rel, err := filepath.Rel(configDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, ext)
	rel = strings.ReplaceAll(rel, string(filepath.Separator), ".")
	return rel
}

// unwrapSingleKey removes a redundant top-level wrapper: a fragment whose
// top-level is a single-key mapping matching the target key's last segment
// contributes its value, not the wrapper. The key name must match exactly;
// anything else stays wrapped.
func unwrapSingleKey(key string, value any) any {
	m, ok := value.(map[string]any)
	if !ok || len(m) != 1 {
		return value
	}
	segments := strings.Split(key, ".")
	last := segments[len(segments)-1]
	if inner, ok := m[last]; ok {
		return inner
	}
	return value
}

// deriveComputed fills the fields computed after the merge: theme directory,
// and per-environment url/output/workers.
func deriveComputed(site *Site) {
	theme := site.Tree.String("content.site.theme", "default")
	themesDir := site.Tree.String("build.themes_dir", "themes")
	site.ThemeDir, _ = filepath.Abs(filepath.Join(themesDir, theme))

	envKey := "build.envs." + site.Env
	site.URL = strings.TrimRight(site.Tree.String(envKey+".url", ""), "/")
	site.OutputDir = site.Tree.String(envKey+".output_dir", filepath.Join(site.Dir, "z-public", site.Env))
	site.MaxWorkers = site.Tree.Int("build.envs.max_workers", 8)

	site.Tree.SetPath("env.url", site.URL)
	site.Tree.SetPath("env.output_dir", site.OutputDir)
}
