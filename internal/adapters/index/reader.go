package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"postsmith/internal/adapters/filesystem"
	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

var (
	// ErrDisabled is returned when reading an index the config does not enable
	ErrDisabled = errors.New("index not enabled")
	// ErrNotBuilt is returned when an enabled index has no persisted file yet
	ErrNotBuilt = errors.New("index not built")
	// ErrUnknown is returned for a tag or category that does not exist
	ErrUnknown = errors.New("no such entry")
)

// Reader implements ports.IndexReader over persisted index files. An empty
// directory name marks the index as disabled.
type Reader struct {
	outputRoot    string
	collectionDir string
	tagDir        string
	categoryDir   string
}

var _ ports.IndexReader = (*Reader)(nil)

// NewReader creates a Reader for the given index directories
func NewReader(outputRoot, collectionDir, tagDir, categoryDir string) *Reader {
	return &Reader{
		outputRoot:    outputRoot,
		collectionDir: collectionDir,
		tagDir:        tagDir,
		categoryDir:   categoryDir,
	}
}

func (r *Reader) read(dir, file string, doc any) error {
	if dir == "" {
		return ErrDisabled
	}
	err := filesystem.ReadJSON(filepath.Join(r.outputRoot, dir, file), doc)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: run a build first", ErrNotBuilt)
	}
	return err
}

// Posts returns the collection entries in persisted order
func (r *Reader) Posts() ([]domain.Entry, error) {
	var doc collectionDoc
	if err := r.read(r.collectionDir, "collection.json", &doc); err != nil {
		return nil, fmt.Errorf("collection: %w", err)
	}
	return doc.Items, nil
}

// Tags returns every tag bucket
func (r *Reader) Tags() (map[string]domain.Bucket, error) {
	var doc taggerDoc
	if err := r.read(r.tagDir, "tags.json", &doc); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	tags := make(map[string]domain.Bucket, len(doc.Tags))
	for name, bucket := range doc.Tags {
		if bucket != nil {
			tags[name] = *bucket
		}
	}
	return tags, nil
}

// Tag returns one tag bucket
func (r *Reader) Tag(name string) (*domain.Bucket, error) {
	tags, err := r.Tags()
	if err != nil {
		return nil, err
	}
	bucket, ok := tags[name]
	if !ok {
		return nil, fmt.Errorf("%w: tag %q", ErrUnknown, name)
	}
	return &bucket, nil
}

// Categories returns the root of the category tree
func (r *Reader) Categories() (*domain.CategoryNode, error) {
	var doc classifierDoc
	if err := r.read(r.categoryDir, "categories.json", &doc); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	root := domain.NewCategoryNode()
	if doc.Categories != nil {
		root.Subcategories = doc.Categories
	}
	root.Normalize()
	return root, nil
}

// Category returns the node at path
func (r *Reader) Category(path []string) (*domain.CategoryNode, error) {
	root, err := r.Categories()
	if err != nil {
		return nil, err
	}
	node := root.Descend(path, false)
	if node == nil {
		return nil, fmt.Errorf("%w: category %q", ErrUnknown, strings.Join(path, "/"))
	}
	return node, nil
}
