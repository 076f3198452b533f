package publish

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/confmap"
	"git.home.luguber.info/inful/sitebuilder/internal/document"
)

func publishSite(t *testing.T) *config.Site {
	t.Helper()
	return &config.Site{
		Tree:       confmap.Tree{},
		Name:       "demosite",
		Dir:        t.TempDir(),
		OutputDir:  t.TempDir(),
		MaxWorkers: 2,
	}
}

func TestWriteDocument_URLBecomesIndexHTML(t *testing.T) {
	site := publishSite(t)
	doc := &document.Document{Name: "hello", URL: "en/posts/hello"}

	require.NoError(t, WriteDocument(site, doc, []byte("<p>hi</p>")))

	got, err := os.ReadFile(filepath.Join(site.OutputDir, "en", "posts", "hello", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<p>hi</p>", string(got))
}

func TestWriteDocument_TargetFileWrittenVerbatim(t *testing.T) {
	site := publishSite(t)
	doc := &document.Document{Name: "feed", URL: "feed", TargetFile: "feed.xml"}

	require.NoError(t, WriteDocument(site, doc, []byte("<feed/>")))

	got, err := os.ReadFile(filepath.Join(site.OutputDir, "feed.xml"))
	require.NoError(t, err)
	require.Equal(t, "<feed/>", string(got))
	_, err = os.Stat(filepath.Join(site.OutputDir, "feed", "index.html"))
	require.True(t, os.IsNotExist(err))
}

func TestCopyAssets_FlattensIntoBuckets(t *testing.T) {
	site := publishSite(t)
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "logo.png"), []byte("png"), 0o644))

	assets := map[string][]string{
		"css":    {filepath.Join(src, "main.css")},
		"images": {filepath.Join(src, "logo.png")},
	}
	require.NoError(t, CopyAssets(site, assets))

	require.FileExists(t, filepath.Join(site.OutputDir, "assets", "css", "main.css"))
	require.FileExists(t, filepath.Join(site.OutputDir, "assets", "images", "logo.png"))
}

func TestCopyAssets_FaviconLandsAtOutputRoot(t *testing.T) {
	site := publishSite(t)
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "favicon.ico"), []byte("icon"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "favicon-32.png"), []byte("png"), 0o644))

	assets := map[string][]string{
		"favicon": {filepath.Join(src, "favicon.ico"), filepath.Join(src, "favicon-32.png")},
	}
	require.NoError(t, CopyAssets(site, assets))

	require.FileExists(t, filepath.Join(site.OutputDir, "favicon.ico"))
	require.FileExists(t, filepath.Join(site.OutputDir, "assets", "favicon", "favicon-32.png"))
	_, err := os.Stat(filepath.Join(site.OutputDir, "assets", "favicon", "favicon.ico"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteCSSPartials_MinifiedStyleFragment(t *testing.T) {
	site := publishSite(t)
	src := t.TempDir()
	css := "/* site styles */\nbody {\n  margin: 0;\n}\n"
	path := filepath.Join(src, "main.css")
	require.NoError(t, os.WriteFile(path, []byte(css), 0o644))

	require.NoError(t, WriteCSSPartials(site, []string{path}))

	got, err := os.ReadFile(filepath.Join(site.TemplatesDir(), "partials", "auto-generated", "_main_css.html"))
	require.NoError(t, err)
	require.Equal(t, "<style>body{margin:0;}</style>", string(got))
}

func TestFillIndexPlaceholders_OnlyMissingDirsGetOne(t *testing.T) {
	site := publishSite(t)
	withIndex := filepath.Join(site.OutputDir, "en")
	without := filepath.Join(site.OutputDir, "assets", "css")
	require.NoError(t, os.MkdirAll(withIndex, 0o755))
	require.NoError(t, os.MkdirAll(without, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(withIndex, "index.html"), []byte("<p>real</p>"), 0o644))

	require.NoError(t, FillIndexPlaceholders(site.OutputDir))

	kept, err := os.ReadFile(filepath.Join(withIndex, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<p>real</p>", string(kept))

	placeholder, err := os.ReadFile(filepath.Join(without, "index.html"))
	require.NoError(t, err)
	require.Empty(t, placeholder)
	require.FileExists(t, filepath.Join(site.OutputDir, "index.html"))
}

func TestCleanOutput_RemovesStaleFiles(t *testing.T) {
	site := publishSite(t)
	stale := filepath.Join(site.OutputDir, "old", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))

	require.NoError(t, CleanOutput(site))

	_, err := os.Stat(stale)
	require.True(t, os.IsNotExist(err))
	require.DirExists(t, site.OutputDir)
}
