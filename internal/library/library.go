// Package library filters and summarises the user's generation history.
package library

import (
	"strings"
	"unicode/utf8"

	"github.com/jywlabs/kalam/internal/api"
)

// PreviewLength is the number of characters shown per history entry.
const PreviewLength = 150

// Filter narrows a history listing. Zero values match everything.
type Filter struct {
	Search string // Case-insensitive substring of title or content
	Type   string // Exact content type tag
}

// Match reports whether item passes the filter.
func (f Filter) Match(item api.ContentItem) bool {
	if f.Type != "" && !strings.EqualFold(item.Type, f.Type) {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Content), q)
}

// Apply returns the items that pass the filter, in their original order.
func (f Filter) Apply(items []api.ContentItem) []api.ContentItem {
	out := make([]api.ContentItem, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Types lists the distinct content types present, in first-seen order.
func Types(items []api.ContentItem) []string {
	seen := make(map[string]bool)
	var types []string
	for _, item := range items {
		if item.Type == "" || seen[item.Type] {
			continue
		}
		seen[item.Type] = true
		types = append(types, item.Type)
	}
	return types
}

// Preview returns the first n characters of content on a single line,
// followed by "..." when anything was cut.
func Preview(content string, n int) string {
	flat := strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(flat) <= n {
		return flat
	}
	runes := []rune(flat)
	return string(runes[:n]) + "..."
}

// Find returns the item with the given id.
func Find(items []api.ContentItem, id string) (api.ContentItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return api.ContentItem{}, false
}

// Remove returns items without the entry whose id matches.
func Remove(items []api.ContentItem, id string) []api.ContentItem {
	out := make([]api.ContentItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}
