package index

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"postsmith/internal/adapters/filesystem"
	"postsmith/internal/domain"
)

// PagesDir is the subdirectory of an index holding its page files
const PagesDir = "pages"

// Paginator splits entry lists into numbered page files named
// "<prefix>_<n>.json". A prefix may contain "/" to nest pages.
type Paginator struct {
	dir          string
	outputRoot   string
	baseURL      string
	itemsPerPage int
}

// NewPaginator creates a paginator writing below dir
func NewPaginator(dir, outputRoot, baseURL string, itemsPerPage int) *Paginator {
	if itemsPerPage < 1 {
		itemsPerPage = 10
	}
	return &Paginator{
		dir:          dir,
		outputRoot:   outputRoot,
		baseURL:      baseURL,
		itemsPerPage: itemsPerPage,
	}
}

// Process writes one page per itemsPerPage chunk and returns the page URLs
// in order. An empty list produces no pages.
func (p *Paginator) Process(items []domain.Entry, prefix string) ([]string, error) {
	count := (len(items) + p.itemsPerPage - 1) / p.itemsPerPage
	paths := make([]string, count)
	urls := make([]string, count)
	for i := range count {
		paths[i] = p.pagePath(prefix, i+1)
		urls[i] = filesystem.PublicURL(p.baseURL, p.outputRoot, paths[i])
	}

	for i := range count {
		start := i * p.itemsPerPage
		end := min(start+p.itemsPerPage, len(items))

		page := domain.Page{
			PageCount: count,
			Current:   i + 1,
			Items:     items[start:end],
			URL:       urls[i],
		}
		if i > 0 {
			page.Prev = urls[i-1]
		}
		if i < count-1 {
			page.Next = urls[i+1]
		}

		if err := filesystem.WriteJSON(paths[i], page); err != nil {
			return nil, fmt.Errorf("failed to write page %d of %s: %w", i+1, prefix, err)
		}
	}

	return urls, nil
}

// Clean removes every page file of prefix
func (p *Paginator) Clean(prefix string) error {
	dir := filepath.Join(p.dir, filepath.FromSlash(path.Dir(prefix)))
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(path.Base(prefix)) + `_\d+\.json$`)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read pages directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove page %s: %w", entry.Name(), err)
		}
	}
	filesystem.RemoveEmptyParents(dir, p.dir)
	return nil
}

func (p *Paginator) pagePath(prefix string, n int) string {
	return filepath.Join(p.dir, filepath.FromSlash(fmt.Sprintf("%s_%d.json", prefix, n)))
}
