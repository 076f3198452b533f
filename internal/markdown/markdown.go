// Package markdown converts Markdown content bodies to HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/toc"
)

// DefaultTOCTitle is used when a language config does not set
// table_of_contents_title.
const DefaultTOCTitle = "Table of Contents"

// Extension is the source extension treated as Markdown.
const Extension = ".md"

// Convert renders Markdown to HTML with GFM extensions and a prepended table
// of contents titled tocTitle. Raw HTML in the source is passed through;
// content files are authored, not untrusted input.
func Convert(src []byte, tocTitle string) (string, error) {
	if tocTitle == "" {
		tocTitle = DefaultTOCTitle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&toc.Extender{Title: tocTitle},
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
