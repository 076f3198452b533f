package render

import (
	"bytes"

	"git.home.luguber.info/inful/sitebuilder/internal/document"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// Render produces the final bytes for one document. The two passes are
// deliberately separate stages: content self-references must resolve before
// page-level composition sees the content.
func (e *Environment) Render(doc *document.Document) ([]byte, error) {
	content, err := e.renderContent(doc)
	if err != nil {
		return nil, err
	}
	page, err := e.renderPage(doc, content)
	if err != nil {
		return nil, err
	}

	out, err := e.format(doc, page)
	if err != nil {
		return nil, err
	}
	if !isArtifact(doc) {
		if !isStructurallyValid(out) {
			return nil, errors.OutputInvalid(doc.Name)
		}
	}
	return out, nil
}

// renderContent is the first pass: the document's own HTML content treated as
// a template and rendered with the document in context, so content files can
// reference their own and global fields.
func (e *Environment) renderContent(doc *document.Document) (string, error) {
	tpl, err := e.parse(doc.Name+":content", doc.HTMLContent)
	if err != nil {
		return "", errors.RenderFailed(doc.Name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, e.context(doc)); err != nil {
		return "", errors.RenderFailed(doc.Name, err)
	}
	return buf.String(), nil
}

// renderPage is the second pass: either the rendered content is itself the
// page template (template_page), or a named template file wraps it.
func (e *Environment) renderPage(doc *document.Document, content string) ([]byte, error) {
	var src string
	if doc.TemplatePage != "" {
		src = content
	} else {
		name := normalizeTemplateName(doc.Template)
		if doc.Template == "" {
			return nil, errors.TemplateNotFound("(unset)", doc.Name)
		}
		loaded, err := e.lookup(name)
		if err != nil {
			return nil, errors.TemplateNotFound(name, doc.Name)
		}
		src = loaded
	}

	tpl, err := e.parse(doc.Name+":page", src)
	if err != nil {
		return nil, errors.RenderFailed(doc.Name, err)
	}

	ctx := e.context(doc)
	ctx["Content"] = content

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, ctx); err != nil {
		return nil, errors.RenderFailed(doc.Name, err)
	}
	return buf.Bytes(), nil
}

// format applies the configured output formatting: pretty-printing or
// whitespace minification. Non-HTML artifacts pass through untouched.
func (e *Environment) format(doc *document.Document, raw []byte) ([]byte, error) {
	if isArtifact(doc) {
		return raw, nil
	}
	if e.site.PrettifyHTML() {
		return Prettify(raw)
	}
	return Minify(raw), nil
}
