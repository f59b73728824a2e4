package index

import (
	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

const collectionPrefix = "collection"

type collectionDoc struct {
	Version  string         `json:"version"`
	Items    []domain.Entry `json:"items"`
	PageURLs []string       `json:"pageUrls"`
}

// Collection keeps every post in a single list
type Collection struct {
	base
	items []domain.Entry
}

var _ ports.Index = (*Collection)(nil)

// NewCollection creates a Collection persisted as collection.json
func NewCollection(opts Options) *Collection {
	return &Collection{base: newBase("collection", "collection.json", opts)}
}

// Load hydrates the collection from disk
func (c *Collection) Load() (domain.LoadState, error) {
	var doc collectionDoc
	state, err := c.load(&doc)
	if state != domain.LoadLoaded {
		return state, err
	}
	c.items = doc.Items
	c.previous = doc.Version
	return state, nil
}

// Init resets the collection to an empty list
func (c *Collection) Init() error {
	c.items = nil
	return nil
}

// Collect appends item, replacing any entry already held for the same post
func (c *Collection) Collect(item *domain.Item) error {
	e, err := c.entry(item)
	if err != nil {
		return err
	}
	var replaced bool
	c.items, replaced = domain.RemovePost(c.items, item)
	if replaced {
		c.logger.Debug("replacing stale entry", "source", item.Source)
	}
	c.items = append(c.items, e)
	return nil
}

// Delete removes every entry of item's post
func (c *Collection) Delete(item *domain.Item) error {
	if item == nil {
		return nil
	}
	var removed bool
	c.items, removed = domain.RemovePost(c.items, item)
	if !removed {
		c.logger.Debug("no entry to delete", "source", item.Source)
	}
	return nil
}

// Modify replaces oldItem with newItem
func (c *Collection) Modify(newItem, oldItem *domain.Item) error {
	if err := c.Delete(oldItem); err != nil {
		return err
	}
	return c.Collect(newItem)
}

// Items returns the current entries
func (c *Collection) Items() []domain.Entry {
	return c.items
}

// Save sorts, paginates and persists the collection
func (c *Collection) Save() error {
	if c.items == nil {
		c.items = []domain.Entry{}
	}
	urls, err := c.paginate(c.items, collectionPrefix)
	if err != nil {
		return err
	}
	return c.save(collectionDoc{
		Version:  c.current,
		Items:    c.items,
		PageURLs: urls,
	})
}
