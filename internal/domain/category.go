package domain

import "sort"

// CategoryNode is one level of the category tree. Entries live only on the
// node addressed by their full category path; intermediate nodes created on
// the way keep an empty own list.
type CategoryNode struct {
	Items         []Entry                  `json:"items"`
	PageURLs      []string                 `json:"pageUrls"`
	Subcategories map[string]*CategoryNode `json:"subcategories"`
}

// NewCategoryNode creates an empty node
func NewCategoryNode() *CategoryNode {
	return &CategoryNode{
		Items:         []Entry{},
		PageURLs:      []string{},
		Subcategories: make(map[string]*CategoryNode),
	}
}

// Descend follows path from n. With create set, missing nodes are created;
// otherwise a missing segment returns nil.
func (n *CategoryNode) Descend(path []string, create bool) *CategoryNode {
	current := n
	for _, segment := range path {
		if current.Subcategories == nil {
			current.Subcategories = make(map[string]*CategoryNode)
		}
		next, ok := current.Subcategories[segment]
		if !ok {
			if !create {
				return nil
			}
			next = NewCategoryNode()
			current.Subcategories[segment] = next
		}
		current = next
	}
	return current
}

// Walk visits every node below n depth-first in segment order. The root
// itself is not visited.
func (n *CategoryNode) Walk(fn func(path []string, node *CategoryNode) error) error {
	return n.walk(nil, fn)
}

func (n *CategoryNode) walk(prefix []string, fn func(path []string, node *CategoryNode) error) error {
	names := make([]string, 0, len(n.Subcategories))
	for name := range n.Subcategories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		child := n.Subcategories[name]
		path := append(append([]string{}, prefix...), name)
		if err := fn(path, child); err != nil {
			return err
		}
		if err := child.walk(path, fn); err != nil {
			return err
		}
	}
	return nil
}

// Normalize replaces nil slices and maps so the node serializes stably
func (n *CategoryNode) Normalize() {
	if n.Items == nil {
		n.Items = []Entry{}
	}
	if n.PageURLs == nil {
		n.PageURLs = []string{}
	}
	if n.Subcategories == nil {
		n.Subcategories = make(map[string]*CategoryNode)
	}
	for _, child := range n.Subcategories {
		child.Normalize()
	}
}

// Total counts entries in n and every descendant
func (n *CategoryNode) Total() int {
	total := len(n.Items)
	for _, child := range n.Subcategories {
		total += child.Total()
	}
	return total
}
