// Package markdown renders post excerpts to HTML with goldmark.
package markdown

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// The goldmark instance is safe for concurrent use and its configuration
// never changes, so it is built once.
var (
	engine     goldmark.Markdown
	engineOnce sync.Once
)

func getEngine() goldmark.Markdown {
	engineOnce.Do(func() {
		engine = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		)
	})
	return engine
}

// Renderer implements ports.Renderer with GitHub-flavored markdown
type Renderer struct{}

// NewRenderer creates a Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render converts markdown to HTML
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := getEngine().Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
