package discovery

import (
	"path/filepath"
	"sort"
	"sync"
)

// ContentType partitions discovered content.
type ContentType string

const (
	Posts ContentType = "posts"
	Pages ContentType = "pages"
)

// Stub is a minimal discovered-content record, keyed by file stem. The
// document processor later replaces it with one or more full documents.
type Stub struct {
	FilePath    string
	ContentType ContentType
	Name        string
}

func (s Stub) String() string { return s.FilePath }

type assetEntry struct {
	path     string
	fromSite bool
}

// Registry is the shared discovery result. Walk workers mutate it directly;
// a mutex guards the maps because Go maps are unsafe for concurrent writes
// even when workers touch disjoint keys.
type Registry struct {
	mu     sync.Mutex
	stubs  map[ContentType]map[string]Stub
	assets map[string][]assetEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		stubs:  map[ContentType]map[string]Stub{Posts: {}, Pages: {}},
		assets: map[string][]assetEntry{},
	}
}

// AddStub records a stub. Site content always replaces an existing entry for
// the same stem; theme content only fills gaps. This converges to
// site-overrides-theme regardless of worker scheduling order.
func (r *Registry) AddStub(stub Stub, override bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bucket := r.stubs[stub.ContentType]
	if _, exists := bucket[stub.Name]; exists && !override {
		return
	}
	bucket[stub.Name] = stub
}

// AddAsset appends a source path to the named asset bucket.
func (r *Registry) AddAsset(bucket, path string, fromSite bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[bucket] = append(r.assets[bucket], assetEntry{path: path, fromSite: fromSite})
}

// Stubs returns the stubs of one content type, sorted by name.
func (r *Registry) Stubs(ct ContentType) []Stub {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Stub, 0, len(r.stubs[ct]))
	for _, stub := range r.stubs[ct] {
		out = append(out, stub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Assets returns the asset manifest: bucket name to ordered source paths,
// theme entries before site entries, each group sorted by path. The favicon
// bucket applies site-over-theme precedence on basename collisions.
func (r *Registry) Assets() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]string, len(r.assets))
	for bucket, entries := range r.assets {
		ordered := make([]assetEntry, len(entries))
		copy(ordered, entries)
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].fromSite != ordered[j].fromSite {
				return !ordered[i].fromSite
			}
			return ordered[i].path < ordered[j].path
		})

		if bucket == "favicon" {
			ordered = applyFaviconPrecedence(ordered)
		}

		paths := make([]string, len(ordered))
		for i, e := range ordered {
			paths[i] = e.path
		}
		out[bucket] = paths
	}
	return out
}

// applyFaviconPrecedence drops a theme favicon file when the site provides a
// file with the same basename.
func applyFaviconPrecedence(entries []assetEntry) []assetEntry {
	siteNames := map[string]bool{}
	for _, e := range entries {
		if e.fromSite {
			siteNames[filepath.Base(e.path)] = true
		}
	}
	out := entries[:0:0]
	for _, e := range entries {
		if !e.fromSite && siteNames[filepath.Base(e.path)] {
			continue
		}
		out = append(out, e)
	}
	return out
}
