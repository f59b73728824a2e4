package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is the structured front matter of a post
type Header map[string]any

// Strings reads field as a list of strings. A scalar becomes a one-element
// list, a missing or empty field yields nil. Duplicates are dropped.
func (h Header) Strings(field string) []string {
	raw, ok := h[field]
	if !ok || raw == nil {
		return nil
	}

	var values []string
	switch v := raw.(type) {
	case string:
		values = []string{v}
	case []string:
		values = v
	case []any:
		for _, elem := range v {
			if elem == nil {
				continue
			}
			values = append(values, formatValue(elem))
		}
	default:
		values = []string{formatValue(v)}
	}

	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		result = append(result, value)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// String reads field as a single string ("" when absent)
func (h Header) String(field string) string {
	raw, ok := h[field]
	if !ok || raw == nil {
		return ""
	}
	return formatValue(raw)
}

// formatValue prints a header value the same way whether it was decoded
// from YAML (ints) or read back from JSON (float64)
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// Item is a post as extracted by the artifact generator
type Item struct {
	Fingerprint string
	Source      string // Source path relative to the input root
	URL         string
	Header      Header
	Body        string
}

// Entry is the projection of an Item stored inside an index
type Entry struct {
	Fingerprint string `json:"fingerprint"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	Header      Header `json:"structuredHeader"`
	Excerpt     string `json:"excerpt,omitempty"`
}

// Page is one paginated slice of an index bucket
type Page struct {
	PageCount int     `json:"pageCount"`
	Current   int     `json:"current"`
	Items     []Entry `json:"posts"`
	URL       string  `json:"url"`
	Prev      string  `json:"prev,omitempty"`
	Next      string  `json:"next,omitempty"`
}

// Bucket is a named list of entries together with its generated pages
type Bucket struct {
	Items    []Entry  `json:"items"`
	PageURLs []string `json:"pageUrls"`
}

// SamePost reports whether e was projected from the post item describes.
// A post is identified by its fingerprint, its source path or its artifact
// URL; empty fields never match.
func (e Entry) SamePost(item *Item) bool {
	switch {
	case item == nil:
		return false
	case item.Fingerprint != "" && e.Fingerprint == item.Fingerprint:
		return true
	case item.Source != "" && e.Source == item.Source:
		return true
	default:
		return item.URL != "" && e.URL == item.URL
	}
}

// RemovePost drops every entry of item's post and reports whether anything
// was removed
func RemovePost(entries []Entry, item *Item) ([]Entry, bool) {
	kept := entries[:0]
	removed := false
	for _, e := range entries {
		if e.SamePost(item) {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed
}
