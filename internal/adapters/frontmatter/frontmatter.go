// Package frontmatter splits markdown sources into a YAML header and body.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"postsmith/internal/domain"
)

const delimiter = "---"

// ErrUnterminated is returned when an opening delimiter has no closing one
var ErrUnterminated = errors.New("unterminated front matter")

// Parse splits data into its header and body. A source without an opening
// "---" line has an empty header and is all body.
func Parse(data []byte) (domain.Header, string, error) {
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if !strings.HasPrefix(text, delimiter+"\n") && text != delimiter {
		return domain.Header{}, text, nil
	}

	rest := strings.TrimPrefix(text, delimiter)
	rest = strings.TrimPrefix(rest, "\n")

	var raw, body string
	switch {
	case strings.HasPrefix(rest, delimiter+"\n") || rest == delimiter:
		body = strings.TrimPrefix(strings.TrimPrefix(rest, delimiter), "\n")
	default:
		end := strings.Index(rest, "\n"+delimiter+"\n")
		switch {
		case end >= 0:
			raw = rest[:end]
			body = rest[end+len(delimiter)+2:]
		case strings.HasSuffix(rest, "\n"+delimiter):
			raw = strings.TrimSuffix(rest, "\n"+delimiter)
		default:
			return nil, "", ErrUnterminated
		}
	}

	header := domain.Header{}
	if strings.TrimSpace(raw) != "" {
		var decoded map[string]any
		if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
			return nil, "", fmt.Errorf("failed to parse front matter: %w", err)
		}
		for k, v := range decoded {
			header[k] = normalize(v)
		}
	}

	return header, body, nil
}

// normalize converts nested YAML maps into JSON-encodable string-keyed maps
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
