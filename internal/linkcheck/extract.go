package linkcheck

import (
	"encoding/json"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ExtractURLs pulls every linkable URL out of an HTML document: href and src
// attributes on any element, meta content values that look like URLs, and
// url/href/@id strings inside JSON-LD script blocks.
func ExtractURLs(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	var urls []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			urls = append(urls, elementURLs(n)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return urls, nil
}

func elementURLs(n *html.Node) []string {
	var urls []string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "href", "src":
			if attr.Val != "" {
				urls = append(urls, attr.Val)
			}
		case "content":
			if n.Data == "meta" && looksLikeURL(attr.Val) {
				urls = append(urls, attr.Val)
			}
		}
	}
	if n.Data == "script" && scriptType(n) == "application/ld+json" {
		urls = append(urls, jsonLDURLs(n)...)
	}
	return urls
}

func scriptType(n *html.Node) string {
	for _, attr := range n.Attr {
		if attr.Key == "type" {
			return attr.Val
		}
	}
	return ""
}

// looksLikeURL filters meta content values: only absolute URLs and
// site-relative paths count, not arbitrary descriptions.
func looksLikeURL(v string) bool {
	return strings.HasPrefix(v, "http://") ||
		strings.HasPrefix(v, "https://") ||
		strings.HasPrefix(v, "/") ||
		strings.HasPrefix(v, "./")
}

// jsonLDURLs extracts URL-bearing keys from a JSON-LD block. Parse failures
// are ignored: malformed structured data is not a broken link.
func jsonLDURLs(n *html.Node) []string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	var data any
	if err := json.Unmarshal([]byte(text.String()), &data); err != nil {
		return nil
	}
	var urls []string
	collectJSONURLs(data, &urls)
	return urls
}

func collectJSONURLs(v any, urls *[]string) {
	switch val := v.(type) {
	case map[string]any:
		for key, child := range val {
			switch key {
			case "url", "href", "@id":
				if s, ok := child.(string); ok && s != "" {
					*urls = append(*urls, s)
					continue
				}
			}
			collectJSONURLs(child, urls)
		}
	case []any:
		for _, child := range val {
			collectJSONURLs(child, urls)
		}
	}
}
