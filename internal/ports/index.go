package ports

import "postsmith/internal/domain"

// Index is a persistent, incrementally maintained view over generated items.
// Mutations only touch memory; Save persists the view and its pages.
type Index interface {
	// Name identifies the index in logs and build stats
	Name() string

	// Lifecycle
	Load() (domain.LoadState, error)
	Init() error
	Clean() error
	Save() error

	// Stale reports whether the effective configuration changed since the
	// persisted state was written
	Stale() bool

	// Mutations
	Collect(item *domain.Item) error
	Delete(item *domain.Item) error
	Modify(newItem, oldItem *domain.Item) error
}

// IndexReader gives read access to persisted indices for listing and browsing
type IndexReader interface {
	Posts() ([]domain.Entry, error)
	Tags() (map[string]domain.Bucket, error)
	Tag(name string) (*domain.Bucket, error)
	Categories() (*domain.CategoryNode, error)
	Category(path []string) (*domain.CategoryNode, error)
}
