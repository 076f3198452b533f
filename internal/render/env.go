// Package render builds the template environment and renders each document in
// two passes: the document's own content as a template, then the selected
// page template around it.
package render

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/document"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// defaultTemplateExt is appended to extension-less template names.
const defaultTemplateExt = ".html"

// Environment holds the global template bindings and the template search
// path. Site templates shadow theme templates of the same name; this is a
// lookup precedence, not a merge.
type Environment struct {
	site    *config.Site
	globals map[string]any

	mu    sync.Mutex
	cache map[string]string // template name -> file contents
}

// NewEnvironment binds the globals every render sees: environment info, site
// settings, the page and tag registries, the post list, latest posts, the
// language registry, and the full configuration tree.
func NewEnvironment(site *config.Site, col *document.Collection) *Environment {
	return &Environment{
		site: site,
		globals: map[string]any{
			"Env":       site.Tree.Map("env"),
			"Site":      site.Tree.Map("content.site"),
			"Pages":     col.Pages,
			"Posts":     col.Posts,
			"Tags":      col.TagsByLanguage(),
			"Latest":    col.Latest,
			"Languages": site.Languages(),
			"Config":    site.Tree,
		},
		cache: map[string]string{},
	}
}

// context builds the per-document render data: the shared globals plus the
// document itself.
func (e *Environment) context(doc *document.Document) map[string]any {
	ctx := make(map[string]any, len(e.globals)+2)
	for k, v := range e.globals {
		ctx[k] = v
	}
	ctx["Doc"] = doc
	return ctx
}

// funcs returns the helper FuncMap registered on every template.
func (e *Environment) funcs() template.FuncMap {
	return template.FuncMap{
		// formatdate renders a time in the given layout, e.g.
		// {{formatdate "02.01.2006" .Doc.Date}}
		"formatdate": func(layout string, t time.Time) string {
			return t.Format(layout)
		},
		// partial returns the contents of a template partial, e.g. the
		// auto-generated inline CSS wrappers.
		"partial": func(name string) (string, error) {
			return e.lookup(name)
		},
	}
}

// lookup finds a template file by name, site templates first, then theme
// templates. Results are cached for the lifetime of the build.
func (e *Environment) lookup(name string) (string, error) {
	e.mu.Lock()
	if cached, ok := e.cache[name]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	for _, dir := range []string{e.site.TemplatesDir(), e.site.ThemeTemplatesDir()} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		content := string(raw)
		e.mu.Lock()
		e.cache[name] = content
		e.mu.Unlock()
		return content, nil
	}
	return "", errors.TemplateNotFound(name, "")
}

// normalizeTemplateName appends the default extension when the name has none.
func normalizeTemplateName(name string) string {
	if filepath.Ext(name) == "" {
		return name + defaultTemplateExt
	}
	return name
}

// parse compiles template source with the environment's helpers.
func (e *Environment) parse(name, src string) (*template.Template, error) {
	return template.New(name).Funcs(e.funcs()).Parse(src)
}

// isArtifact reports whether the document produces a non-HTML artifact (feed,
// sitemap, robots) that skips formatting and structural validation.
func isArtifact(doc *document.Document) bool {
	target := doc.TargetFile
	if target == "" {
		return false
	}
	switch strings.ToLower(filepath.Ext(target)) {
	case ".xml", ".txt", ".json":
		return true
	}
	return false
}
