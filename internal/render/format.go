package render

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var interTagWhitespace = regexp.MustCompile(`>\s+<`)

// Minify collapses whitespace between tags. Good enough for generated pages;
// inline scripts and preformatted blocks keep their internal whitespace.
func Minify(raw []byte) []byte {
	out := interTagWhitespace.ReplaceAll(raw, []byte("><"))
	return bytes.TrimSpace(out)
}

// isStructurallyValid reports whether the rendered output parses to at least
// one element. The x/net/html parser is lenient, so this catches empty and
// grossly broken output rather than every malformation.
func isStructurallyValid(raw []byte) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return false
	}
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return false
	}
	return countElements(doc) > 0
}

func countElements(n *html.Node) int {
	count := 0
	if n.Type == html.ElementNode {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c)
	}
	return count
}

var (
	voidElements = map[string]bool{
		"area": true, "base": true, "br": true, "col": true, "embed": true,
		"hr": true, "img": true, "input": true, "link": true, "meta": true,
		"source": true, "track": true, "wbr": true,
	}
	rawTextElements = map[string]bool{
		"pre": true, "script": true, "style": true, "textarea": true,
	}
)

// Prettify re-renders HTML with two-space indentation. Raw-text elements
// (pre, script, style, textarea) keep their contents verbatim.
func Prettify(raw []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	printNode(&buf, doc, 0)
	return buf.Bytes(), nil
}

func printNode(buf *bytes.Buffer, n *html.Node, depth int) {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			printNode(buf, c, depth)
		}
	case html.DoctypeNode:
		buf.WriteString("<!DOCTYPE " + n.Data + ">\n")
	case html.CommentNode:
		writeIndent(buf, depth)
		buf.WriteString("<!--" + n.Data + "-->\n")
	case html.TextNode:
		// Node.Data holds decoded text; entities must be re-escaped on output.
		text := strings.TrimSpace(n.Data)
		if text != "" {
			writeIndent(buf, depth)
			buf.WriteString(html.EscapeString(text))
			buf.WriteByte('\n')
		}
	case html.ElementNode:
		writeIndent(buf, depth)
		writeOpenTag(buf, n)
		switch {
		case voidElements[n.Data]:
			buf.WriteByte('\n')
		case rawTextElements[n.Data]:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				_ = html.Render(buf, c)
			}
			buf.WriteString("</" + n.Data + ">\n")
		case hasOnlyTextChildren(n):
			var text strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				text.WriteString(c.Data)
			}
			buf.WriteString(html.EscapeString(strings.TrimSpace(text.String())))
			buf.WriteString("</" + n.Data + ">\n")
		default:
			buf.WriteByte('\n')
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				printNode(buf, c, depth+1)
			}
			writeIndent(buf, depth)
			buf.WriteString("</" + n.Data + ">\n")
		}
	}
}

func writeOpenTag(buf *bytes.Buffer, n *html.Node) {
	buf.WriteByte('<')
	buf.WriteString(n.Data)
	for _, attr := range n.Attr {
		buf.WriteByte(' ')
		buf.WriteString(attr.Key)
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(attr.Val))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
}

func hasOnlyTextChildren(n *html.Node) bool {
	if n.FirstChild == nil {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			return false
		}
	}
	return true
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for range depth {
		buf.WriteString("  ")
	}
}

var (
	cssComments   = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssWhitespace = regexp.MustCompile(`\s+`)
	cssSeparators = regexp.MustCompile(`\s*([{};:,>])\s*`)
)

// MinifyCSS strips comments and collapses whitespace. Used for the inline
// <style> template partials generated from asset stylesheets.
func MinifyCSS(css string) string {
	css = cssComments.ReplaceAllString(css, "")
	css = cssWhitespace.ReplaceAllString(css, " ")
	css = cssSeparators.ReplaceAllString(css, "$1")
	return strings.TrimSpace(css)
}
