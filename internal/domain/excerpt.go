package domain

import (
	"fmt"
	"strings"
)

// ExcerptRule selects how an entry's excerpt is cut from the post body
type ExcerptRule int

const (
	ExcerptByLines ExcerptRule = iota + 1
	ExcerptCustomTag
	ExcerptNoContent
	ExcerptFullContent
)

const (
	DefaultExcerptLines = 5
	DefaultExcerptTag   = "<!--more-->"
)

var excerptRuleNames = map[string]ExcerptRule{
	"ByLines":     ExcerptByLines,
	"CustomTag":   ExcerptCustomTag,
	"NoContent":   ExcerptNoContent,
	"FullContent": ExcerptFullContent,
}

// ParseExcerptRule maps a configuration name to a rule. Empty means ByLines.
func ParseExcerptRule(name string) (ExcerptRule, error) {
	if name == "" {
		return ExcerptByLines, nil
	}
	rule, ok := excerptRuleNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown excerpt rule: %s", name)
	}
	return rule, nil
}

// String returns the configuration name of the rule
func (r ExcerptRule) String() string {
	for name, rule := range excerptRuleNames {
		if rule == r {
			return name
		}
	}
	return "unknown"
}

// ExcerptOptions configures excerpt extraction
type ExcerptOptions struct {
	Rule  ExcerptRule
	Lines int
	Tag   string
}

// Apply cuts the excerpt out of body
func (o ExcerptOptions) Apply(body string) string {
	switch o.Rule {
	case ExcerptNoContent:
		return ""
	case ExcerptFullContent:
		return body
	case ExcerptCustomTag:
		tag := o.Tag
		if tag == "" {
			tag = DefaultExcerptTag
		}
		if before, _, found := strings.Cut(body, tag); found {
			return before
		}
		return body
	default:
		lines := o.Lines
		if lines <= 0 {
			lines = DefaultExcerptLines
		}
		parts := strings.SplitN(strings.TrimLeft(body, "\r\n"), "\n", lines+1)
		if len(parts) > lines {
			parts = parts[:lines]
		}
		return strings.Join(parts, "\n")
	}
}
