package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSiteConfig(t *testing.T, siteDir string, rel string, content string) {
	t.Helper()
	path := filepath.Join(siteDir, "config", rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestSite(t *testing.T) (sitesDir string) {
	t.Helper()
	sitesDir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sitesDir, "demosite", "config"), 0o755))
	return sitesDir
}

func TestResolve_MissingSiteName_Fails(t *testing.T) {
	t.Setenv(EnvSite, "")

	_, err := Resolve(Options{SitesDir: t.TempDir()})
	require.Error(t, err)
	require.Contains(t, err.Error(), EnvSite)
}

func TestResolve_MissingConfigDir_Fails(t *testing.T) {
	sitesDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sitesDir, "nosite"), 0o755))

	_, err := Resolve(Options{SiteName: "nosite", SitesDir: sitesDir})
	require.Error(t, err)
	require.Contains(t, err.Error(), "config directory")
}

func TestResolve_SiteNameFromEnvironment(t *testing.T) {
	sitesDir := newTestSite(t)
	t.Setenv(EnvSite, "DemoSite")

	site, err := Resolve(Options{SitesDir: sitesDir})
	require.NoError(t, err)
	require.Equal(t, "demosite", site.Name)
}

func TestResolve_CLINameOverridesEnvironment(t *testing.T) {
	sitesDir := newTestSite(t)
	t.Setenv(EnvSite, "othersite")

	site, err := Resolve(Options{SiteName: "DemoSite", SitesDir: sitesDir})
	require.NoError(t, err)
	require.Equal(t, "demosite", site.Name)
}

func TestResolve_FragmentKeyFromPath(t *testing.T) {
	sitesDir := newTestSite(t)
	siteDir := filepath.Join(sitesDir, "demosite")
	writeSiteConfig(t, siteDir, "content/site.yml", "name: Demo\ntheme: dark\n")
	writeSiteConfig(t, siteDir, "content/languages/en.yml", "en:\n  tag_url_prefix: tag\n")

	site, err := Resolve(Options{SiteName: "demosite", SitesDir: sitesDir})
	require.NoError(t, err)
	require.Equal(t, "Demo", site.Tree.String("content.site.name", ""))
	// single-key wrapper "en" matches the last segment and is unwrapped
	require.Equal(t, "tag", site.Tree.String("content.languages.en.tag_url_prefix", ""))
}

func TestResolve_DottedFileStem_AddsDepth(t *testing.T) {
	sitesDir := newTestSite(t)
	writeSiteConfig(t, filepath.Join(sitesDir, "demosite"), "content/pages.tags.yml", "enabled: true\n")

	site, err := Resolve(Options{SiteName: "demosite", SitesDir: sitesDir})
	require.NoError(t, err)
	require.True(t, site.TagsEnabled())
}

func TestResolve_SingleKeyNotMatchingTarget_StaysWrapped(t *testing.T) {
	sitesDir := newTestSite(t)
	// top-level key "fi" does not match target segment "en": no unwrap
	writeSiteConfig(t, filepath.Join(sitesDir, "demosite"), "content/languages/en.yml", "fi:\n  html: fi\n")

	site, err := Resolve(Options{SiteName: "demosite", SitesDir: sitesDir})
	require.NoError(t, err)
	require.Equal(t, "fi", site.Tree.String("content.languages.en.fi.html", ""))
	_, found := site.Tree.GetPath("content.languages.en.html")
	require.False(t, found)
}

func TestResolve_MalformedYAML_FailsNamingFile(t *testing.T) {
	sitesDir := newTestSite(t)
	writeSiteConfig(t, filepath.Join(sitesDir, "demosite"), "build.yml", "envs: [unclosed\n")

	_, err := Resolve(Options{SiteName: "demosite", SitesDir: sitesDir})
	require.Error(t, err)
	require.Contains(t, err.Error(), "build.yml")
}

func TestResolve_DerivedEnvironmentFields(t *testing.T) {
	sitesDir := newTestSite(t)
	writeSiteConfig(t, filepath.Join(sitesDir, "demosite"), "build.yml", `
envs:
  max_workers: 4
  dev:
    url: http://localhost:8000/
    output_dir: out/dev
  prod:
    url: https://demosite.com
    output_dir: out/prod
`)

	site, err := Resolve(Options{SiteName: "demosite", SitesDir: sitesDir, Env: "prod"})
	require.NoError(t, err)
	require.Equal(t, "https://demosite.com", site.URL)
	require.Equal(t, "out/prod", site.OutputDir)
	require.Equal(t, 4, site.MaxWorkers)
	require.Equal(t, "prod", site.Tree.String("env.name", ""))
	require.Equal(t, "https://demosite.com", site.Tree.String("env.url", ""))
}

func TestResolve_ThemeDirDerivedFromSiteTheme(t *testing.T) {
	sitesDir := newTestSite(t)
	writeSiteConfig(t, filepath.Join(sitesDir, "demosite"), "content/site.yml", "theme: minimal\n")

	site, err := Resolve(Options{SiteName: "demosite", SitesDir: sitesDir})
	require.NoError(t, err)
	require.Equal(t, "minimal", filepath.Base(site.ThemeDir))
}

func TestResolve_DefaultsSurviveWithoutFragments(t *testing.T) {
	sitesDir := newTestSite(t)

	site, err := Resolve(Options{SiteName: "demosite", SitesDir: sitesDir})
	require.NoError(t, err)
	require.Equal(t, 200, site.WordsPerMinute())
	require.True(t, site.PrettifyHTML())
	require.True(t, site.ValidateSite())
	require.Equal(t, 8, site.MaxWorkers)
	require.Equal(t, "default", filepath.Base(site.ThemeDir))
}

func TestResolve_FragmentOverridesDefaultScalar(t *testing.T) {
	sitesDir := newTestSite(t)
	writeSiteConfig(t, filepath.Join(sitesDir, "demosite"), "build.yml", `
settings:
  read_time_words_per_minute: 150
  prettify_html: false
`)

	site, err := Resolve(Options{SiteName: "demosite", SitesDir: sitesDir})
	require.NoError(t, err)
	require.Equal(t, 150, site.WordsPerMinute())
	require.False(t, site.PrettifyHTML())
	// untouched sibling defaults survive the structural merge
	require.True(t, site.ValidateSite())
}
