// Package document turns discovered content stubs into enriched, renderable
// documents: front matter parsing, defaults merging, multi-language fan-out,
// HTML conversion, URL/date/read-time/navigation derivation, tag page
// synthesis and URL uniqueness validation.
package document

import (
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/confmap"
	"git.home.luguber.info/inful/sitebuilder/internal/discovery"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// Document is one enriched, renderable content unit: a post, a page, or a
// synthesized tag page. Render consumes it read-only.
type Document struct {
	// Identity
	Name        string
	ContentType discovery.ContentType
	Language    string

	// Source
	FilePath string
	Content  string // raw body after front matter removal

	// Derived
	HTMLContent string // body after Markdown conversion (or passthrough)
	URL         string
	TargetFile  string // explicit output path, overrides {url}/index.html

	// Presentation metadata
	Title        string
	NavTitle     string
	Description  string
	Template     string // named page template file
	TemplatePage string // inline page template: the content is the page

	// Temporal
	RawDate     any // front matter value, string or time.Time
	Date        time.Time
	DateHTML    string // 02.01.2006
	DateISO     string // RFC 3339
	DateXMLFeed string // RFC 822 style, for syndication

	ReadTime int
	Tags     sets.Set[string]
	Draft    bool

	// Navigation within the language group, filled after sorting
	PrevPostURL   string
	PrevPostTitle string
	NextPostURL   string
	NextPostTitle string

	// Extra carries pass-through front matter fields for templates.
	Extra map[string]any
}

// reserved front matter keys lifted into typed Document fields.
var reservedKeys = sets.New(
	"name", "title", "nav_title", "description", "url", "target_file",
	"template", "template_page", "date", "tags", "language", "draft",
	"content", "languages",
)

// fromFields materializes a Document from the merged field map built out of
// type defaults, stub fields, config item overrides and front matter.
func fromFields(fields confmap.Tree, stub discovery.Stub) *Document {
	doc := &Document{
		Name:         fields.String("name", stub.Name),
		ContentType:  stub.ContentType,
		Language:     fields.String("language", ""),
		FilePath:     stub.FilePath,
		Content:      fields.String("content", ""),
		URL:          fields.String("url", ""),
		TargetFile:   fields.String("target_file", ""),
		Title:        fields.String("title", ""),
		NavTitle:     fields.String("nav_title", ""),
		Description:  fields.String("description", ""),
		Template:     fields.String("template", ""),
		TemplatePage: fields.String("template_page", ""),
		Draft:        fields.Bool("draft", false),
		Tags:         sets.New[string](),
		Extra:        map[string]any{},
	}
	if raw, ok := fields.GetPath("date"); ok {
		doc.RawDate = raw
	}
	for _, tag := range fields.Strings("tags") {
		doc.Tags.Add(tag)
	}
	for key, value := range fields {
		if !reservedKeys.Has(key) {
			doc.Extra[key] = value
		}
	}
	return doc
}

// String identifies the document in logs and aggregated errors.
func (d *Document) String() string { return d.Name }

// Clone returns a deep-enough copy for language fan-out: value fields are
// copied, the tag set and extra map are duplicated.
func (d *Document) Clone() *Document {
	out := *d
	out.Tags = d.Tags.Clone()
	out.Extra = make(map[string]any, len(d.Extra))
	for k, v := range d.Extra {
		out.Extra[k] = v
	}
	return &out
}
