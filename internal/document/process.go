package document

import (
	"log/slog"
	"os"
	"sort"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/confmap"
	"git.home.luguber.info/inful/sitebuilder/internal/discovery"
	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/parallel"
)

// Process expands every stub into enriched documents, then computes the
// cross-document state: sorting, navigation, latest posts, tag pages and URL
// uniqueness. Any failed document fails the phase after all documents ran.
func Process(site *config.Site, reg *discovery.Registry) (*Collection, error) {
	stubs := append(reg.Stubs(discovery.Posts), reg.Stubs(discovery.Pages)...)

	groups, err := parallel.RunWith(stubs, site, site.MaxWorkers,
		func(stub discovery.Stub, s *config.Site) (*[]*Document, error) {
			docs, perr := ProcessStub(s, stub)
			if perr != nil {
				slog.Error("Dropping document after processing failure",
					logfields.File(stub.FilePath), logfields.Error(perr))
				return nil, perr
			}
			if len(docs) == 0 {
				return nil, nil
			}
			return &docs, nil
		})
	if err != nil {
		return nil, err
	}

	col := NewCollection()
	for _, group := range groups {
		for _, doc := range group {
			col.Add(doc)
		}
	}

	col.SortAndLink()
	if site.TagsEnabled() {
		col.SynthesizeTagPages(site)
	}
	if err := col.ValidateURLs(); err != nil {
		return nil, err
	}
	return col, nil
}

// ProcessSingle processes exactly one content file, skipping cross-document
// computation (tags, navigation, uniqueness). Unsafe for production builds.
func ProcessSingle(site *config.Site, stub discovery.Stub) (*Collection, error) {
	docs, err := ProcessStub(site, stub)
	if err != nil {
		return nil, err
	}
	col := NewCollection()
	for _, doc := range docs {
		col.Add(doc)
	}
	col.SortAndLink()
	return col, nil
}

// ProcessStub reads and parses one source file and returns its enriched
// documents: one per language when the front matter declares a languages
// mapping, otherwise a single document. Draft documents are dropped.
func ProcessStub(site *config.Site, stub discovery.Stub) ([]*Document, error) {
	raw, err := os.ReadFile(stub.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "read content file").
			WithContext("file", stub.FilePath)
	}

	fmRaw, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return nil, errors.FrontMatterParse(stub.FilePath, err)
	}
	fmFields, err := frontmatter.ParseYAML(fmRaw)
	if err != nil {
		return nil, errors.FrontMatterParse(stub.FilePath, err)
	}

	fields := baseFields(site, stub)
	fields = confmap.Merge(fields, confmap.Tree(fmFields))
	fields["content"] = string(body)

	var docs []*Document
	if langs, ok := fields.GetPath("languages"); ok {
		docs = fanOut(fields, langs, stub)
	} else {
		docs = []*Document{fromFields(fields, stub)}
	}

	out := docs[:0]
	for _, doc := range docs {
		if doc.Draft {
			slog.Debug("Skipping draft", logfields.Document(doc.Name))
			continue
		}
		if err := Enrich(site, doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// baseFields builds the pre-front-matter layer: type defaults, then the
// per-item config overrides for pages, then the stub identity.
func baseFields(site *config.Site, stub discovery.Stub) confmap.Tree {
	fields := site.Tree.Map("content." + string(stub.ContentType) + ".defaults").Clone()
	if stub.ContentType == discovery.Pages {
		if item, ok := site.Tree.GetPath("content.pages.items." + stub.Name); ok {
			if m, isMap := item.(map[string]any); isMap {
				fields = confmap.Merge(fields, confmap.Tree(m).Clone())
			}
		}
	}
	fields["name"] = stub.Name
	return fields
}

// fanOut clones the base field map once per declared language, applying that
// language's overrides and renaming to {base}-{language}.
func fanOut(base confmap.Tree, langs any, stub discovery.Stub) []*Document {
	overrides, ok := langs.(map[string]any)
	if !ok {
		return []*Document{fromFields(base, stub)}
	}

	codes := make([]string, 0, len(overrides))
	for code := range overrides {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	docs := make([]*Document, 0, len(codes))
	for _, code := range codes {
		fields := base.Clone()
		delete(fields, "languages")
		if langFields, ok := overrides[code].(map[string]any); ok {
			fields = confmap.Merge(fields, confmap.Tree(langFields))
		}
		fields["language"] = code
		fields["name"] = fields.String("name", stub.Name) + "-" + code
		docs = append(docs, fromFields(fields, stub))
	}
	return docs
}
