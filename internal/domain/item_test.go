package domain

import "testing"

func TestHeader_Strings(t *testing.T) {
	h := Header{
		"single": "go",
		"list":   []any{"x", "y", "x", " ", 2024},
		"empty":  []any{},
		"nil":    nil,
	}

	tests := []struct {
		field string
		want  []string
	}{
		{"single", []string{"go"}},
		{"list", []string{"x", "y", "2024"}},
		{"empty", nil},
		{"nil", nil},
		{"absent", nil},
	}

	for _, tt := range tests {
		got := h.Strings(tt.field)
		if !equal(got, tt.want) {
			t.Errorf("Strings(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestHeader_NumbersFormatAlike(t *testing.T) {
	fromYAML := Header{"tags": []any{12345678}, "category": 7}
	fromJSON := Header{"tags": []any{float64(12345678)}, "category": float64(7)}

	if !equal(fromYAML.Strings("tags"), fromJSON.Strings("tags")) {
		t.Errorf("tags differ: %v vs %v", fromYAML.Strings("tags"), fromJSON.Strings("tags"))
	}
	if got := fromJSON.Strings("tags"); !equal(got, []string{"12345678"}) {
		t.Errorf("unexpected float formatting %v", got)
	}
	if got := fromJSON.String("category"); got != "7" {
		t.Errorf("String(category) = %q, want 7", got)
	}
	if got := (Header{"ratio": 0.5}).String("ratio"); got != "0.5" {
		t.Errorf("String(ratio) = %q, want 0.5", got)
	}
}

func TestRemovePost(t *testing.T) {
	entries := []Entry{
		{Fingerprint: "a", Source: "a.md", URL: "/posts/a.json"},
		{Fingerprint: "b", Source: "b.md", URL: "/posts/b.json"},
		{Fingerprint: "c", Source: "c.md", URL: "/posts/c.json"},
	}

	kept, removed := RemovePost(entries, &Item{Fingerprint: "b"})
	if !removed {
		t.Error("expected removal by fingerprint")
	}
	if len(kept) != 2 || kept[0].Fingerprint != "a" || kept[1].Fingerprint != "c" {
		t.Errorf("unexpected result: %+v", kept)
	}

	kept, removed = RemovePost(kept, &Item{Fingerprint: "new", Source: "a.md"})
	if !removed || len(kept) != 1 {
		t.Errorf("expected removal by source, got %+v", kept)
	}

	kept, removed = RemovePost(kept, &Item{URL: "/posts/c.json"})
	if !removed || len(kept) != 0 {
		t.Errorf("expected removal by URL, got %+v", kept)
	}

	_, removed = RemovePost([]Entry{{Fingerprint: "a"}}, &Item{})
	if removed {
		t.Error("an item without identity should match nothing")
	}
	_, removed = RemovePost([]Entry{{Fingerprint: "a"}}, nil)
	if removed {
		t.Error("nil item should match nothing")
	}
}
