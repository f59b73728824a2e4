package domain

import "testing"

func TestExcerptOptions_Apply(t *testing.T) {
	body := "\nline one\nline two\nline three\n"

	tests := []struct {
		name string
		opts ExcerptOptions
		body string
		want string
	}{
		{"custom tag", ExcerptOptions{Rule: ExcerptCustomTag, Tag: "<!--more-->"}, "hello <!--more-->world", "hello "},
		{"custom tag default", ExcerptOptions{Rule: ExcerptCustomTag}, "a<!--more-->b", "a"},
		{"custom tag missing", ExcerptOptions{Rule: ExcerptCustomTag, Tag: "<!--cut-->"}, "no tag here", "no tag here"},
		{"by lines", ExcerptOptions{Rule: ExcerptByLines, Lines: 2}, body, "line one\nline two"},
		{"by lines short body", ExcerptOptions{Rule: ExcerptByLines, Lines: 10}, "only", "only"},
		{"no content", ExcerptOptions{Rule: ExcerptNoContent}, body, ""},
		{"full content", ExcerptOptions{Rule: ExcerptFullContent}, body, body},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Apply(tt.body); got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseExcerptRule(t *testing.T) {
	tests := []struct {
		name    string
		want    ExcerptRule
		wantErr bool
	}{
		{"", ExcerptByLines, false},
		{"ByLines", ExcerptByLines, false},
		{"CustomTag", ExcerptCustomTag, false},
		{"NoContent", ExcerptNoContent, false},
		{"FullContent", ExcerptFullContent, false},
		{"Summary", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseExcerptRule(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseExcerptRule(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseExcerptRule(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
