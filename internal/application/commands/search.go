package commands

import (
	"context"
	"sort"
	"strings"

	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

// SearchResult is a matching entry with its relevance score
type SearchResult struct {
	Entry domain.Entry
	Score int
}

// SearchCommand searches the collection with fuzzy matching
type SearchCommand struct {
	reader   ports.IndexReader
	Query    string
	TagField string
}

// NewSearchCommand creates a new SearchCommand. tagField names the header
// field tags are read from ("tags" when empty).
func NewSearchCommand(reader ports.IndexReader, query, tagField string) *SearchCommand {
	if tagField == "" {
		tagField = "tags"
	}
	return &SearchCommand{
		reader:   reader,
		Query:    query,
		TagField: tagField,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	entries, err := c.reader.Posts()
	if err != nil {
		return nil, err
	}

	return FuzzySort(entries, c.Query, c.TagField), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '.' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores entries by title, source path and the tags in tagField,
// dropping entries that do not match at all
func FuzzySort(entries []domain.Entry, query, tagField string) []SearchResult {
	scored := make([]SearchResult, 0, len(entries))

	for _, e := range entries {
		best := max(
			FuzzyScore(e.Header.String("title"), query),
			FuzzyScore(e.Source, query),
			FuzzyScore(strings.Join(e.Header.Strings(tagField), " "), query),
		)

		if best > 0 {
			scored = append(scored, SearchResult{
				Entry: e,
				Score: best,
			})
		}
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
