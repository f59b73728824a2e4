package index

import (
	"path"
	"strings"

	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

// Category analyze rules
const (
	RuleFrontmatter = "frontmatter"
	RulePath        = "path"
)

type classifierDoc struct {
	Version    string                          `json:"version"`
	Categories map[string]*domain.CategoryNode `json:"categories"`
}

// Classifier files each post under a nested category path. Entries are
// stored only on the deepest node. Nodes emptied by deletions are kept.
type Classifier struct {
	base
	propName string
	rule     string
	root     *domain.CategoryNode
}

var _ ports.Index = (*Classifier)(nil)

// NewClassifier creates a Classifier. rule selects whether category paths
// come from header field propName or from the source directory.
func NewClassifier(opts Options, propName, rule string) *Classifier {
	if rule == "" {
		rule = RuleFrontmatter
	}
	return &Classifier{
		base:     newBase("categories", "categories.json", opts),
		propName: propName,
		rule:     rule,
		root:     domain.NewCategoryNode(),
	}
}

// Load hydrates the category tree from disk
func (c *Classifier) Load() (domain.LoadState, error) {
	var doc classifierDoc
	state, err := c.load(&doc)
	if state != domain.LoadLoaded {
		return state, err
	}
	c.root = domain.NewCategoryNode()
	if doc.Categories != nil {
		c.root.Subcategories = doc.Categories
	}
	c.root.Normalize()
	c.previous = doc.Version
	return state, nil
}

// Init resets the classifier to an empty tree
func (c *Classifier) Init() error {
	c.root = domain.NewCategoryNode()
	return nil
}

// CategoryPath resolves the category segments of item
func (c *Classifier) CategoryPath(item *domain.Item) []string {
	if c.rule == RulePath {
		dir := path.Dir(item.Source)
		if dir == "." || dir == "/" || dir == "" {
			return nil
		}
		return strings.Split(strings.Trim(dir, "/"), "/")
	}

	if raw, ok := item.Header[c.propName].(string); ok {
		var segments []string
		for _, s := range strings.Split(raw, "/") {
			if s = strings.TrimSpace(s); s != "" {
				segments = append(segments, s)
			}
		}
		return segments
	}
	return item.Header.Strings(c.propName)
}

// Collect files item at the end of its category path, creating every node
// on the way. Entries already held for the same post are dropped first.
func (c *Classifier) Collect(item *domain.Item) error {
	if c.forget(item) {
		c.logger.Debug("replacing stale entry", "source", item.Source)
	}
	segments := c.CategoryPath(item)
	if len(segments) == 0 {
		return nil
	}
	e, err := c.entry(item)
	if err != nil {
		return err
	}
	node := c.root.Descend(segments, true)
	node.Items = append(node.Items, e)
	return nil
}

// Delete removes item from the node its stored header points to, searching
// the whole tree when that node holds nothing for the post
func (c *Classifier) Delete(item *domain.Item) error {
	if item == nil {
		return nil
	}
	removed := false
	if segments := c.CategoryPath(item); len(segments) > 0 {
		if node := c.root.Descend(segments, false); node != nil {
			node.Items, removed = domain.RemovePost(node.Items, item)
		}
	}
	if !removed && !c.forget(item) {
		c.logger.Debug("no entry to delete", "source", item.Source)
	}
	return nil
}

// forget drops item's post from every node. Emptied nodes stay.
func (c *Classifier) forget(item *domain.Item) bool {
	removed := false
	_ = c.root.Walk(func(_ []string, node *domain.CategoryNode) error {
		var hit bool
		node.Items, hit = domain.RemovePost(node.Items, item)
		if hit {
			removed = true
		}
		return nil
	})
	return removed
}

// Modify moves item from its old category to its new one
func (c *Classifier) Modify(newItem, oldItem *domain.Item) error {
	if err := c.Delete(oldItem); err != nil {
		return err
	}
	return c.Collect(newItem)
}

// Root returns the category tree
func (c *Classifier) Root() *domain.CategoryNode {
	return c.root
}

// Save paginates every node and persists the tree
func (c *Classifier) Save() error {
	c.root.Normalize()
	err := c.root.Walk(func(segments []string, node *domain.CategoryNode) error {
		urls, err := c.paginate(node.Items, categoryPrefix(segments))
		if err != nil {
			return err
		}
		node.PageURLs = urls
		return nil
	})
	if err != nil {
		return err
	}
	return c.save(classifierDoc{Version: c.current, Categories: c.root.Subcategories})
}

func categoryPrefix(segments []string) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = segment(s)
	}
	return strings.Join(parts, "/")
}
