package document

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/discovery"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/util/sets"
)

// Collection holds every processed document plus the cross-document state
// computed after enrichment.
type Collection struct {
	Posts []*Document
	Pages []*Document

	// Latest maps language code to the newest post of that language.
	Latest map[string]*Document
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{Latest: map[string]*Document{}}
}

// Add routes a document into its content-type slice.
func (c *Collection) Add(doc *Document) {
	switch doc.ContentType {
	case discovery.Posts:
		c.Posts = append(c.Posts, doc)
	default:
		c.Pages = append(c.Pages, doc)
	}
}

// All returns posts then pages.
func (c *Collection) All() []*Document {
	out := make([]*Document, 0, len(c.Posts)+len(c.Pages))
	out = append(out, c.Posts...)
	out = append(out, c.Pages...)
	return out
}

// SortAndLink applies the deterministic orders and derives navigation and
// latest-post state. Posts sort by date descending; pages by nav title, with
// untitled pages after all titled ones, alphabetically by name.
func (c *Collection) SortAndLink() {
	sort.SliceStable(c.Posts, func(i, j int) bool {
		return c.Posts[i].Date.After(c.Posts[j].Date)
	})
	sort.SliceStable(c.Pages, func(i, j int) bool {
		a, b := c.Pages[i], c.Pages[j]
		switch {
		case a.NavTitle != "" && b.NavTitle != "":
			return a.NavTitle < b.NavTitle
		case a.NavTitle != "":
			return true
		case b.NavTitle != "":
			return false
		default:
			return a.Name < b.Name
		}
	})

	c.Latest = map[string]*Document{}
	groups := c.postsByLanguage()
	for lang, posts := range groups {
		if len(posts) > 0 {
			c.Latest[lang] = posts[0]
		}
		linkNeighbours(posts)
	}
}

// linkNeighbours assigns prev/next links by adjacency in the date-descending
// order: the first post has no newer neighbour, the last no older one.
func linkNeighbours(posts []*Document) {
	for i, doc := range posts {
		if i > 0 {
			doc.NextPostURL = posts[i-1].URL
			doc.NextPostTitle = posts[i-1].Title
		} else {
			doc.NextPostURL = ""
			doc.NextPostTitle = ""
		}
		if i < len(posts)-1 {
			doc.PrevPostURL = posts[i+1].URL
			doc.PrevPostTitle = posts[i+1].Title
		} else {
			doc.PrevPostURL = ""
			doc.PrevPostTitle = ""
		}
	}
}

// postsByLanguage groups the already-sorted posts, preserving order.
func (c *Collection) postsByLanguage() map[string][]*Document {
	groups := map[string][]*Document{}
	for _, doc := range c.Posts {
		groups[doc.Language] = append(groups[doc.Language], doc)
	}
	return groups
}

// Tags returns the union of tags across all posts, sorted.
func (c *Collection) Tags() []string {
	union := sets.New[string]()
	for _, doc := range c.Posts {
		union.AddAll(doc.Tags)
	}
	return sets.Sorted(union)
}

// TagsByLanguage returns the sorted tag union per language.
func (c *Collection) TagsByLanguage() map[string][]string {
	perLang := map[string]sets.Set[string]{}
	for _, doc := range c.Posts {
		set, ok := perLang[doc.Language]
		if !ok {
			set = sets.New[string]()
			perLang[doc.Language] = set
		}
		set.AddAll(doc.Tags)
	}
	out := make(map[string][]string, len(perLang))
	for lang, set := range perLang {
		out[lang] = sets.Sorted(set)
	}
	return out
}

// SynthesizeTagPages creates one listing page per (tag, enabled language)
// pair. The body is a placeholder; the tag template fills it at render time.
func (c *Collection) SynthesizeTagPages(site *config.Site) {
	template := site.Tree.String("content.pages.tags.template", "tag.html")
	byLang := c.TagsByLanguage()

	for _, lang := range site.TagLanguages() {
		tags, ok := byLang[lang]
		if !ok {
			continue
		}
		langCfg := site.Language(lang)
		prefix := langCfg.String("tag_url_prefix", "tag")
		caser := cases.Title(language.Make(lang))

		date := time.Now()
		if latest, ok := c.Latest[lang]; ok {
			date = latest.Date
		}

		for _, tag := range tags {
			url := prefix + "/" + tag
			if !site.SkipLanguagePath(lang) {
				url = lang + "/" + url
			}
			description := langCfg.String("archive.tag_description", "")
			description = strings.ReplaceAll(description, "{tag}", tag)

			doc := &Document{
				Name:        "tag-" + tag + "-" + lang,
				ContentType: discovery.Pages,
				Language:    lang,
				Title:       caser.String(tag),
				Description: description,
				Template:    template,
				URL:         url,
				Date:        date,
				DateHTML:    date.Format(dateHTMLFormat),
				DateISO:     date.Format(time.RFC3339),
				DateXMLFeed: date.Format(time.RFC1123Z),
				ReadTime:    1,
				Tags:        sets.New(tag),
				Extra:       map[string]any{},
			}
			c.Pages = append(c.Pages, doc)
		}
	}
}

// ValidateURLs checks global URL uniqueness across all posts and pages,
// reporting every missing and duplicate URL with content type and title.
func (c *Collection) ValidateURLs() error {
	agg := errors.NewAggregate("url validation")
	seen := map[string]*Document{}

	for _, doc := range c.All() {
		if doc.URL == "" {
			agg.Add(errors.MissingURL(string(doc.ContentType), doc.Title))
			continue
		}
		if prior, dup := seen[doc.URL]; dup {
			agg.Add(errors.DuplicateURL(doc.URL, string(doc.ContentType), doc.Title).
				WithContext("conflicts_with", prior.Title))
			continue
		}
		seen[doc.URL] = doc
	}
	return agg.Err()
}
