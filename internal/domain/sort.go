package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortRule names one of the comparator presets
type SortRule string

const (
	SortNone        SortRule = ""
	SortDateAscend  SortRule = "date ascend"
	SortDateDescend SortRule = "date descend"
	SortLexAscend   SortRule = "lex ascend"
	SortLexDescend  SortRule = "lex descend"
)

// Comparator orders two entries
type Comparator func(a, b Entry) int

// SortRules lists every accepted rule name
var SortRules = []SortRule{SortNone, SortDateAscend, SortDateDescend, SortLexAscend, SortLexDescend}

// ParseSortRule validates a configured sort name
func ParseSortRule(name string) (SortRule, error) {
	rule := SortRule(strings.TrimSpace(name))
	if slices.Contains(SortRules, rule) {
		return rule, nil
	}
	return SortNone, fmt.Errorf("unknown sort rule: %q", name)
}

// Comparator returns the comparator for the rule, nil for SortNone
func (r SortRule) Comparator() Comparator {
	switch r {
	case SortDateAscend:
		return compareDate
	case SortDateDescend:
		return func(a, b Entry) int { return compareDateDesc(a, b) }
	case SortLexAscend:
		return compareTitle
	case SortLexDescend:
		return func(a, b Entry) int { return compareTitle(b, a) }
	default:
		return nil
	}
}

// SortEntries sorts in place with a stable sort; a nil comparator keeps order
func SortEntries(entries []Entry, cmp Comparator) {
	if cmp == nil {
		return
	}
	slices.SortStableFunc(entries, cmp)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// EntryDate parses the "date" header of an entry
func EntryDate(e Entry) (time.Time, bool) {
	switch v := e.Header["date"].(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// compareDate puts undated entries last and breaks ties by source
func compareDate(a, b Entry) int {
	return compareDateDirection(a, b, 1)
}

func compareDateDesc(a, b Entry) int {
	return compareDateDirection(a, b, -1)
}

func compareDateDirection(a, b Entry, direction int) int {
	ta, okA := EntryDate(a)
	tb, okB := EntryDate(b)
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	case okA && okB && !ta.Equal(tb):
		return direction * ta.Compare(tb)
	}
	return strings.Compare(a.Source, b.Source)
}

func compareTitle(a, b Entry) int {
	if c := strings.Compare(a.Header.String("title"), b.Header.String("title")); c != 0 {
		return c
	}
	return strings.Compare(a.Source, b.Source)
}
