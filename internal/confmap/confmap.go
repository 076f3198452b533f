// Package confmap models the configuration value tree: nested string-keyed
// maps holding scalars, lists and further maps. The tree is the single shared
// structure every build phase consumes and extends.
package confmap

import (
	"strings"
)

// Tree is a nested configuration mapping.
type Tree map[string]any

// Merge deep-merges src into dst and returns dst. When both sides of a key
// hold maps the maps are merged recursively, preserving existing entries and
// adding new ones; any other combination is replaced by the incoming value.
func Merge(dst, src Tree) Tree {
	if dst == nil {
		dst = Tree{}
	}
	for key, incoming := range src {
		existing, ok := dst[key]
		if !ok {
			dst[key] = incoming
			continue
		}
		em, eok := asTree(existing)
		im, iok := asTree(incoming)
		if eok && iok {
			dst[key] = Merge(em, im)
			continue
		}
		dst[key] = incoming
	}
	return dst
}

// SetPath deep-merges value into the tree at the dotted key path, creating
// intermediate maps as needed. A non-map value at the path is replaced.
func (t Tree) SetPath(path string, value any) {
	segments := strings.Split(path, ".")
	node := t
	for _, seg := range segments[:len(segments)-1] {
		child, ok := asTree(node[seg])
		if !ok {
			child = Tree{}
			node[seg] = child
		}
		node = child
	}
	last := segments[len(segments)-1]
	if vm, ok := asTree(value); ok {
		if em, ok := asTree(node[last]); ok {
			node[last] = Merge(em, vm)
			return
		}
	}
	node[last] = value
}

// GetPath resolves a dotted key path. The second result is false when any
// segment is absent or a non-map is traversed.
func (t Tree) GetPath(path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = t
	for _, seg := range segments {
		node, ok := asTree(current)
		if !ok {
			return nil, false
		}
		current, ok = node[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Map returns the subtree at path, or an empty tree when absent.
func (t Tree) Map(path string) Tree {
	v, ok := t.GetPath(path)
	if !ok {
		return Tree{}
	}
	if m, ok := asTree(v); ok {
		return m
	}
	return Tree{}
}

// String returns the string at path or fallback.
func (t Tree) String(path, fallback string) string {
	if v, ok := t.GetPath(path); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Bool returns the bool at path or fallback.
func (t Tree) Bool(path string, fallback bool) bool {
	if v, ok := t.GetPath(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Int returns the int at path or fallback. YAML decodes integers as int,
// but float64 is accepted for values that arrived through JSON-ish sources.
func (t Tree) Int(path string, fallback int) int {
	v, ok := t.GetPath(path)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return fallback
}

// Strings returns the string list at path, or nil when absent. Scalar list
// members of other types are skipped.
func (t Tree) Strings(path string) []string {
	v, ok := t.GetPath(path)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy of the tree. Lists are copied shallowly per
// element; list members are scalars or maps in practice.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Tree:
		return val.Clone()
	case map[string]any:
		return Tree(val).Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// asTree widens both Tree and the raw map type produced by yaml.v3 decoding.
func asTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	default:
		return nil, false
	}
}
