package commands

import (
	"context"
	"testing"

	"postsmith/internal/domain"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Generics",
			query:     "Generics",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Generics in Go",
			query:     "Generics",
			wantScore: 150,
		},
		{
			name:      "substring match",
			target:    "Go Generics",
			query:     "Generics",
			wantScore: 100,
		},
		{
			name:    "fuzzy match all chars at start",
			target:  "Generics",
			query:   "gen",
			wantMin: 100,
		},
		{
			name:      "no match",
			target:    "Generics",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Generics",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "GENERICS",
			query:   "generics",
			wantMin: 100,
		},
		{
			name:    "path match",
			target:  "lang/go/intro.md",
			query:   "go/intro",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	query := "channels"

	exactScore := FuzzyScore("channels", query)
	prefixScore := FuzzyScore("channels explained", query)
	containsScore := FuzzyScore("buffered channels", query)
	fuzzyScore := FuzzyScore("c.h.a.n.n.e.l.s", query)

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestSearchCommand(t *testing.T) {
	reader := &fakeReader{posts: []domain.Entry{
		{Fingerprint: "1", Source: "misc/cooking.md", Header: domain.Header{"title": "Cooking"}},
		{Fingerprint: "2", Source: "go/channels.md", Header: domain.Header{"title": "Channels Explained"}},
		{Fingerprint: "3", Source: "go/sync.md", Header: domain.Header{"title": "Sync", "tags": []any{"channels"}}},
	}}

	results, err := NewSearchCommand(reader, "channels", "").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score at index %d", i)
		}
	}

	short, err := NewSearchCommand(reader, "c", "").Execute(context.Background())
	if err != nil || short != nil {
		t.Errorf("single-character query should return nothing, got %v, %v", short, err)
	}
}

func TestSearchCommand_TagField(t *testing.T) {
	reader := &fakeReader{posts: []domain.Entry{
		{Fingerprint: "1", Source: "a.md", Header: domain.Header{"title": "A", "topics": []any{"concurrency"}}},
		{Fingerprint: "2", Source: "b.md", Header: domain.Header{"title": "B", "tags": []any{"concurrency"}}},
	}}

	results, err := NewSearchCommand(reader, "concurrency", "topics").Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(results) != 1 || results[0].Entry.Fingerprint != "1" {
		t.Errorf("expected only the post tagged through topics, got %+v", results)
	}
}
