// Package index implements the persistent Collection, Tagger and Classifier
// indices and the paginator they share.
package index

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"postsmith/internal/adapters/filesystem"
	"postsmith/internal/domain"
	"postsmith/internal/fingerprint"
	"postsmith/internal/ports"
)

// Options configures one index instance
type Options struct {
	OutputRoot   string
	Dir          string // Subdirectory of OutputRoot owned by the index
	BaseURL      string
	ItemsPerPage int
	Sort         domain.SortRule
	Excerpt      domain.ExcerptOptions
	HTML         bool
	Renderer     ports.Renderer
	Version      string
	Logger       *slog.Logger
}

// Version derives an index version from the base URL and the index's own
// configuration block
func Version(baseURL string, block any) (string, error) {
	return fingerprint.Version(struct {
		BaseURL string `json:"baseUrl"`
		Block   any    `json:"block"`
	}{baseURL, block})
}

// base holds what every index kind shares: its directory, persisted file,
// paginator, entry projection and version bookkeeping
type base struct {
	name       string
	dir        string
	file       string
	paginator  *Paginator
	comparator domain.Comparator
	excerpt    domain.ExcerptOptions
	html       bool
	renderer   ports.Renderer
	current    string
	previous   string
	logger     *slog.Logger
}

func newBase(name, file string, opts Options) base {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Join(opts.OutputRoot, opts.Dir)
	return base{
		name:       name,
		dir:        dir,
		file:       filepath.Join(dir, file),
		paginator:  NewPaginator(filepath.Join(dir, PagesDir), opts.OutputRoot, opts.BaseURL, opts.ItemsPerPage),
		comparator: opts.Sort.Comparator(),
		excerpt:    opts.Excerpt,
		html:       opts.HTML,
		renderer:   opts.Renderer,
		current:    opts.Version,
		logger:     logger.With("index", name),
	}
}

// Name returns the index name
func (b *base) Name() string {
	return b.name
}

// Stale reports whether the persisted version differs from the current one
func (b *base) Stale() bool {
	return b.current != b.previous
}

// Dir returns the index output directory
func (b *base) Dir() string {
	return b.dir
}

// Path returns the persisted index file
func (b *base) Path() string {
	return b.file
}

// Clean removes the whole index subtree, pages included
func (b *base) Clean() error {
	if err := os.RemoveAll(b.dir); err != nil {
		return fmt.Errorf("failed to clean %s index: %w", b.name, err)
	}
	b.previous = ""
	return nil
}

// load decodes the persisted file into doc. Decode failures are reported as
// LoadCorrupt rather than as errors.
func (b *base) load(doc any) (domain.LoadState, error) {
	err := filesystem.ReadJSON(b.file, doc)
	switch {
	case err == nil:
		return domain.LoadLoaded, nil
	case os.IsNotExist(err):
		return domain.LoadMissing, nil
	default:
		if _, statErr := os.Stat(b.file); statErr != nil && !os.IsNotExist(statErr) {
			return domain.LoadCorrupt, fmt.Errorf("failed to read %s index: %w", b.name, statErr)
		}
		b.logger.Warn("index unreadable", "path", b.file, "error", err)
		return domain.LoadCorrupt, nil
	}
}

func (b *base) save(doc any) error {
	if err := filesystem.WriteJSON(b.file, doc); err != nil {
		return fmt.Errorf("failed to save %s index: %w", b.name, err)
	}
	b.previous = b.current
	return nil
}

// entry projects an item into the shape stored in the index
func (b *base) entry(item *domain.Item) (domain.Entry, error) {
	excerpt := b.excerpt.Apply(item.Body)
	if b.html && excerpt != "" && b.renderer != nil {
		rendered, err := b.renderer.Render(excerpt)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("failed to render excerpt of %s: %w", item.Source, err)
		}
		excerpt = rendered
	}
	header := item.Header
	if header == nil {
		header = domain.Header{}
	}
	return domain.Entry{
		Fingerprint: item.Fingerprint,
		URL:         item.URL,
		Source:      item.Source,
		Header:      header,
		Excerpt:     excerpt,
	}, nil
}

// paginate sorts entries in place and rewrites the pages of prefix
func (b *base) paginate(entries []domain.Entry, prefix string) ([]string, error) {
	domain.SortEntries(entries, b.comparator)
	if err := b.paginator.Clean(prefix); err != nil {
		return nil, err
	}
	urls, err := b.paginator.Process(entries, prefix)
	if err != nil {
		return nil, err
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}
