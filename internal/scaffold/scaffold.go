// Package scaffold creates a new site skeleton: directory layout, config
// fragments, sample content and asset placeholders.
package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/document"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// scaffold directories created empty. Content and config directories come
// into existence through the files written into them.
var directories = []string{
	"config/content/languages",
	"content/posts",
	"content/pages",
	"content/drafts",
	"templates/partials/auto-generated",
	"assets/images",
	"assets/css",
	"assets/fonts",
	"assets/favicon",
}

// Create lays out a new site under sitesDir. The site directory must not
// already exist; scaffolding never overwrites.
func Create(name, sitesDir string) error {
	if sitesDir == "" {
		sitesDir = "sites"
	}
	siteDir := filepath.Join(sitesDir, strings.ToLower(name))
	if _, err := os.Stat(siteDir); err == nil {
		return errors.New(errors.CategoryConfig, errors.SeverityFatal, "site directory already exists").
			WithContext("dir", siteDir)
	}

	for _, dir := range directories {
		if err := os.MkdirAll(filepath.Join(siteDir, filepath.FromSlash(dir)), 0o755); err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "create site directory").
				WithContext("dir", dir)
		}
	}

	now := time.Now()
	for rel, content := range siteFiles(name, now) {
		path := filepath.Join(siteDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "create content directory").
				WithContext("file", rel)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "write scaffold file").
				WithContext("file", rel)
		}
		slog.Debug("Scaffolded file", logfields.File(rel))
	}

	slog.Info("Site scaffolded", logfields.Site(strings.ToLower(name)), logfields.File(siteDir))
	return nil
}

// siteFiles returns every scaffolded file keyed by site-relative path. YAML
// fragments are literal so key order and comments survive as written.
func siteFiles(name string, now time.Time) map[string]string {
	lower := strings.ToLower(name)
	year := now.Year()
	stamp := now.Format(document.DateFormat)

	files := map[string]string{
		"config/build.yml":                   buildYML(lower),
		"config/content/site.yml":            siteYML(name),
		"config/content/pages.yml":           pagesYML(stamp),
		"config/content/posts.yml":           postsYML(),
		"config/content/languages/en.yml":    languageEnYML(name),
		"content/pages/landing/landing.html": landingPage(name, stamp),
		"content/pages/about/about.html":     aboutPage(name, stamp),
		"content/pages/archive/blog.html":    archivePage(stamp),
		"assets/css/main.css":                mainCSS,
		"assets/css/archive.css":             archiveCSS,
		"assets/favicon/favicon.ico":         "Replace with a real favicon.ico\n",
		"README.md":                          readme(name),
	}

	postDir := fmt.Sprintf("content/posts/%d/%d-01-01-welcome-post", year, year)
	files[postDir+fmt.Sprintf("/%d-01-01-welcome-post.md", year)] = welcomePost(name, year)
	files[postDir+"/images/placeholder.placeholder"] = "Add your post images here\n"

	return files
}

func buildYML(lower string) string {
	return fmt.Sprintf(`envs:
  max_workers: 8
  dev:
    output_dir: sites/%[1]s/z-public/dev
    url: http://localhost:8000
  prod:
    output_dir: sites/%[1]s/z-public/prod
    url: https://%[1]s.com
settings:
  create_config: true
  validate_site: true
  prettify_html: true
  front_matter_parts: 3
  read_time_words_per_minute: 200
`, lower)
}

func siteYML(name string) string {
	return fmt.Sprintf(`logo: %[1]s
name: %[1]s
img: default.jpg
theme: default
contact:
  email: contact@%[2]s.com
  subscribe_url: ""
  twitter: ""
  linkedin: ""
`, name, strings.ToLower(name))
}

func pagesYML(stamp string) string {
	return fmt.Sprintf(`defaults:
  date: "%s"
  template: page.html
  language: en
tags:
  enabled: true
  template: tag.html
  languages: [en]
items:
  "404":
    name: "404"
    title: Page Not Found
    description: 404 - Page not found
    template_page: 404/404.html
    target_file: 404.html
    url: "404"
  feed:
    name: feed
    template_page: feed/feed.xml
    target_file: feed.xml
  sitemap:
    name: sitemap
    template_page: sitemap/sitemap.xml
    target_file: sitemap.xml
  robots:
    name: robots
    template_page: robots/robots.txt
    target_file: robots.txt
`, stamp)
}

func postsYML() string {
	return `defaults:
  template: post.html
  language: en
  draft: false
`
}

func languageEnYML(name string) string {
	return fmt.Sprintf(`en:
  site_title: Welcome to %s
  site_description: Your site description here
  skip_language_path_in_url: true
  tag_url_prefix: tag
  html: en
  xml: en
  table_of_contents_title: Table of Contents
  latest: "Latest blog:"
  read: min read
  archive:
    no_posts: No articles available.
    tag_title: Tag
    tag_description: Posts tagged with '{tag}'
`, name)
}

func welcomePost(name string, year int) string {
	return fmt.Sprintf(`---
title: "Welcome to %[1]s"
date: "%[2]d-01-01 12:00:00 +0000"
url: "welcome-post"
description: "Welcome to your new site"
tags: ["welcome", "first-post"]
language: "en"
---

# Welcome to %[1]s

This is your first post. Edit this file to add your content.

## Getting Started

1. Edit this post under content/posts/%[2]d/
2. Add images to the images/ subdirectory
3. Customize the config/ fragments
4. Run the builder to generate your site

Happy blogging!
`, name, year)
}

func landingPage(name, stamp string) string {
	return fmt.Sprintf(`---
title: "%[1]s"
description: "Welcome to %[1]s"
url: "landing"
target_file: "index.html"
date: "%[2]s"
template_page: "landing/landing.html"
language: "en"
---
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Doc.Title}}</title>
  {{partial "partials/auto-generated/_main_css.html"}}
</head>
<body>
<main>
  <section class="hero">
    <h1>{{.Doc.Title}}</h1>
    <p>{{.Doc.Description}}</p>
  </section>
  {{with index .Latest "en"}}
  <section class="latest-post">
    <h2>Latest Post</h2>
    <article>
      <h3><a href="/{{.URL}}/">{{.Title}}</a></h3>
      <p>{{.Description}}</p>
      <time>{{.DateHTML}}</time>
    </article>
  </section>
  {{end}}
</main>
</body>
</html>
`, name, stamp)
}

func aboutPage(name, stamp string) string {
	return fmt.Sprintf(`---
title: "About %[1]s"
description: "Learn more about %[1]s"
url: "about"
date: "%[2]s"
template_page: "about/about.html"
nav_title: "About"
language: "en"
---
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Doc.Title}}</title>
  {{partial "partials/auto-generated/_main_css.html"}}
</head>
<body>
<main>
  <h1>{{.Doc.Title}}</h1>
  <p>{{.Doc.Description}}</p>
  <p>This is a sample about page. Customize this content.</p>
</main>
</body>
</html>
`, name, stamp)
}

func archivePage(stamp string) string {
	return fmt.Sprintf(`---
title: "Blog"
description: "All blog posts"
url: "blog"
date: "%s"
template_page: "archive/blog.html"
nav_title: "Blog"
language: "en"
---
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Doc.Title}}</title>
  {{partial "partials/auto-generated/_archive_css.html"}}
</head>
<body>
<div class="archive">
  <h1>{{.Doc.Title}}</h1>
  <div class="posts-list">
  {{range .Posts}}{{if eq .Language $.Doc.Language}}
    <article class="post-summary">
      <h2><a href="/{{.URL}}/">{{.Title}}</a></h2>
      <div class="post-meta">{{.DateHTML}} - {{.ReadTime}} min read</div>
      {{with .Description}}<p class="post-description">{{.}}</p>{{end}}
    </article>
  {{end}}{{end}}
  </div>
</div>
</body>
</html>
`, stamp)
}

const mainCSS = `/* Main CSS file for your site */
body {
    font-family: Arial, sans-serif;
    line-height: 1.6;
    margin: 0;
    padding: 20px;
}

h1 {
    color: #333;
}

/* Customize your styles here */
`

const archiveCSS = `/* archive */
.archive {
    max-width: 780px;
    margin: 0 auto;
}

.post-summary {
    margin-bottom: 2rem;
    padding-bottom: 1.5rem;
    border-bottom: 1px solid #eee;
}

.post-meta {
    color: #666;
    font-size: 0.9rem;
}
/* end archive */
`

func readme(name string) string {
	return fmt.Sprintf(`# %s

This site was created with sitebuilder.

## Structure

- config/ - site configuration fragments, merged by path into one tree
- content/posts/YYYY/ - posts, one directory per post with optional images/
- content/pages/ - pages, overriding theme pages of the same name
- content/drafts/ - never built
- assets/ - css, images, fonts and favicon buckets
- z-public/ - generated output per environment

## Building

    sitebuilder build --site %s

Standard pages (feed.xml, sitemap.xml, robots.txt, 404.html) come from the
theme. Site templates under templates/ shadow theme templates.
`, name, strings.ToLower(name))
}
