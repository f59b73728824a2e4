package ports

// Renderer converts markdown into HTML
type Renderer interface {
	Render(markdown string) (string, error)
}
