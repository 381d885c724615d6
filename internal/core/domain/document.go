package domain

import (
	"sort"
	"strings"
)

// Document is the extraction surface over a parsed manifest or cargo config
// file: nested string-keyed sections looked up by dotted path. Only the
// shapes the core needs are exposed: scalar strings, string lists and section
// key enumeration. The zero value is the "document absent" result.
type Document struct {
	root map[string]any
}

// NewDocument wraps a decoded table tree.
func NewDocument(root map[string]any) Document {
	return Document{root: root}
}

// Empty reports whether the document has no content.
func (d Document) Empty() bool { return len(d.root) == 0 }

// Get resolves a dotted path to a string value.
func (d Document) Get(path string) (string, bool) {
	v, ok := d.lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringList resolves a dotted path to a list of strings. Non-string
// elements are skipped, best-effort.
func (d Document) StringList(path string) []string {
	v, ok := d.lookup(path)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SectionKeys lists the sub-section names under a dotted path, sorted.
func (d Document) SectionKeys(path string) []string {
	v, ok := d.lookup(path)
	if !ok {
		return nil
	}
	section, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(section))
	for k := range section {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d Document) lookup(path string) (any, bool) {
	var current any = d.root
	for _, part := range strings.Split(path, ".") {
		table, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = table[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
