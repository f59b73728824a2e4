package ports

import (
	"context"

	"postsmith/internal/domain"
)

// ArtifactGenerator turns source files into per-post artifacts. Every
// operation returns the item(s) it produced or removed so indices can be
// updated from the result.
type ArtifactGenerator interface {
	Create(source *domain.FileNode) (*domain.Item, error)
	Delete(output *domain.FileNode) (*domain.Item, error)
	Modify(source, output *domain.FileNode) (newItem, oldItem *domain.Item, err error)

	// Read loads an existing artifact without touching it
	Read(output *domain.FileNode) (*domain.Item, error)
}

// Snapshotter builds fingerprinted trees of the source and artifact roots
type Snapshotter interface {
	SourceTree(ctx context.Context, root string) (*domain.FileNode, error)
	OutputTree(ctx context.Context, root string) (*domain.FileNode, error)
}
