package document

import (
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
)

// DateFormat is the accepted front matter date layout.
const DateFormat = "2006-01-02 15:04:05 -0700"

// Derived date layouts.
const (
	dateHTMLFormat = "02.01.2006"
)

// Enrich applies the per-document derivation steps in their required order:
// HTML conversion, URL computation, date parsing, read time. Each step
// depends on the previous one.
func Enrich(site *config.Site, doc *Document) error {
	if err := enrichHTML(site, doc); err != nil {
		return err
	}
	if err := enrichURL(site, doc); err != nil {
		return err
	}
	if err := enrichDates(doc); err != nil {
		return err
	}
	enrichReadTime(site, doc)
	return nil
}

// enrichHTML converts Markdown sources to HTML; other source types pass
// through unchanged.
func enrichHTML(site *config.Site, doc *Document) error {
	if filepath.Ext(doc.FilePath) != markdown.Extension {
		doc.HTMLContent = doc.Content
		return nil
	}
	tocTitle := site.Language(doc.Language).String("table_of_contents_title", markdown.DefaultTOCTitle)
	html, err := markdown.Convert([]byte(doc.Content), tocTitle)
	if err != nil {
		return errors.Wrap(err, errors.CategoryContent, errors.SeverityError, "markdown conversion failed").
			WithContext("file", doc.FilePath)
	}
	doc.HTMLContent = html
	return nil
}

// enrichURL seeds the URL from the target file when absent and applies the
// language path prefix unless the language opts out.
func enrichURL(site *config.Site, doc *Document) error {
	if doc.URL == "" && doc.TargetFile != "" {
		doc.URL = doc.TargetFile
	}
	if doc.Language == "" {
		return errors.MissingLanguage(doc.Name)
	}
	if !site.SkipLanguagePath(doc.Language) {
		doc.URL = doc.Language + "/" + strings.TrimPrefix(doc.URL, "/")
		if doc.TargetFile != "" {
			doc.TargetFile = doc.Language + "/" + strings.TrimPrefix(doc.TargetFile, "/")
		}
	}
	doc.URL = strings.Trim(doc.URL, "/")
	return nil
}

// enrichDates requires a date field, accepting an already-structured value or
// the fixed string layout, and derives the presentation formats.
func enrichDates(doc *Document) error {
	switch v := doc.RawDate.(type) {
	case nil:
		return errors.DateParse(doc.FilePath, "", errors.New(errors.CategoryContent, errors.SeverityError, "missing date field"))
	case time.Time:
		doc.Date = v
	case string:
		parsed, err := time.Parse(DateFormat, v)
		if err != nil {
			return errors.DateParse(doc.FilePath, v, err)
		}
		doc.Date = parsed
	default:
		return errors.DateParse(doc.FilePath, "", errors.New(errors.CategoryContent, errors.SeverityError, "unsupported date value"))
	}

	doc.DateHTML = doc.Date.Format(dateHTMLFormat)
	doc.DateISO = doc.Date.Format(time.RFC3339)
	doc.DateXMLFeed = doc.Date.Format(time.RFC1123Z)
	return nil
}

// enrichReadTime floors word count over words-per-minute with a minimum of 1.
func enrichReadTime(site *config.Site, doc *Document) {
	words := len(strings.Fields(doc.Content))
	wpm := site.WordsPerMinute()
	if wpm < 1 {
		wpm = 1
	}
	rt := words / wpm
	if rt < 1 {
		rt = 1
	}
	doc.ReadTime = rt
}
