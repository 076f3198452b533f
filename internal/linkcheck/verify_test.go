package linkcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/confmap"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

func crawlSite(t *testing.T) (*config.Site, string) {
	t.Helper()
	out := t.TempDir()
	site := &config.Site{
		Tree:       confmap.Tree{},
		Name:       "demosite",
		URL:        "http://localhost:8000",
		OutputDir:  out,
		MaxWorkers: 2,
	}
	return site, out
}

func writePage(t *testing.T, outputDir, rel, body string) {
	t.Helper()
	path := filepath.Join(outputDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestVerify_AllSpellingsOfAPageAreValid(t *testing.T) {
	site, out := crawlSite(t)
	writePage(t, out, "about/index.html", "<p>about</p>")
	writePage(t, out, "index.html",
		`<a href="/about/">a</a> <a href="/about">b</a> <a href="/about/index.html">c</a> <a href="http://localhost:8000/about/">d</a>`)

	require.NoError(t, Verify(site, out))
}

func TestVerify_BrokenLinkReportedOnce(t *testing.T) {
	site, out := crawlSite(t)
	writePage(t, out, "index.html",
		`<a href="/aboot/">x</a> <p><a href="/aboot/">again</a></p>`)

	err := Verify(site, out)
	require.Error(t, err)

	var agg *errors.Aggregate
	require.ErrorAs(t, err, &agg)
	require.Equal(t, 1, agg.Len())
	require.Contains(t, err.Error(), "/aboot/")
	require.Contains(t, err.Error(), "index.html")
}

func TestVerify_ExternalLinksIgnored(t *testing.T) {
	site, out := crawlSite(t)
	writePage(t, out, "index.html",
		`<a href="https://example.com/nowhere">x</a> <a href="mailto:a@b.c">m</a> <a href="#top">f</a>`)

	require.NoError(t, Verify(site, out))
}

func TestVerify_DoubledSeparatorIsMalformed(t *testing.T) {
	site, out := crawlSite(t)
	writePage(t, out, "en/posts/index.html", "<p>list</p>")
	writePage(t, out, "index.html", `<a href="/en//posts/">x</a>`)

	err := Verify(site, out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed link")
	require.Contains(t, err.Error(), "/en//posts/")
}

func TestVerify_SchemeSlashesAreNotMalformed(t *testing.T) {
	site, out := crawlSite(t)
	writePage(t, out, "about/index.html", "<p>about</p>")
	writePage(t, out, "index.html", `<a href="http://localhost:8000/about/">x</a>`)

	require.NoError(t, Verify(site, out))
}

func TestVerify_QueryAndFragmentStripped(t *testing.T) {
	site, out := crawlSite(t)
	writePage(t, out, "search/index.html", "<p>search</p>")
	writePage(t, out, "index.html", `<a href="/search/?q=go#results">x</a>`)

	require.NoError(t, Verify(site, out))
}

func TestVerify_AssetReferencesChecked(t *testing.T) {
	site, out := crawlSite(t)
	writePage(t, out, "assets/css/main.css", "body{}")
	writePage(t, out, "index.html",
		`<link href="/assets/css/main.css"><img src="/assets/images/missing.png">`)

	err := Verify(site, out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "/assets/images/missing.png")
	require.NotContains(t, err.Error(), "main.css")
}

func TestVerify_MultipleSourcePagesEachReported(t *testing.T) {
	site, out := crawlSite(t)
	writePage(t, out, "a/index.html", `<a href="/gone/">x</a>`)
	writePage(t, out, "b/index.html", `<a href="/gone/">x</a>`)

	err := Verify(site, out)
	require.Error(t, err)

	var agg *errors.Aggregate
	require.ErrorAs(t, err, &agg)
	require.Equal(t, 2, agg.Len())
}

func TestExtractURLs_MetaAndJSONLD(t *testing.T) {
	page := `<html><head>
<meta property="og:url" content="/en/posts/hello/">
<meta name="description" content="just words, not a url">
<script type="application/ld+json">{"@id":"/en/","author":{"url":"/en/about/"},"items":[{"href":"/en/posts/"}]}</script>
</head><body><a href="/x">a</a><img src="/y.png"></body></html>`

	urls, err := ExtractURLs(strings.NewReader(page))
	require.NoError(t, err)
	require.Contains(t, urls, "/en/posts/hello/")
	require.Contains(t, urls, "/en/")
	require.Contains(t, urls, "/en/about/")
	require.Contains(t, urls, "/en/posts/")
	require.Contains(t, urls, "/x")
	require.Contains(t, urls, "/y.png")
	require.NotContains(t, urls, "just words, not a url")
}

func TestBuildValidURLs_RootIsEmptyString(t *testing.T) {
	_, out := crawlSite(t)
	writePage(t, out, "index.html", "<p>home</p>")

	valid, err := BuildValidURLs(out)
	require.NoError(t, err)
	require.True(t, valid.Has(""))
	require.True(t, valid.Has("index.html"))
}
