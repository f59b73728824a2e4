package domain

import (
	"fmt"
	"sort"
)

// FileNode is one entry of a snapshot tree. Leaves carry a fingerprint,
// directories carry a non-nil Children slice.
type FileNode struct {
	Key          string // Path-derived identity, stable across content edits
	FullPath     string
	RelativePath string // Slash-separated, relative to the snapshot root
	Fingerprint  string
	Children     []*FileNode
}

// NewDirNode creates a directory node with an empty child list
func NewDirNode(key, fullPath, relPath string) *FileNode {
	return &FileNode{
		Key:          key,
		FullPath:     fullPath,
		RelativePath: relPath,
		Children:     make([]*FileNode, 0),
	}
}

// NewLeafNode creates a file node
func NewLeafNode(key, fullPath, relPath, fingerprint string) *FileNode {
	return &FileNode{
		Key:          key,
		FullPath:     fullPath,
		RelativePath: relPath,
		Fingerprint:  fingerprint,
	}
}

// IsDir reports whether the node is a directory
func (n *FileNode) IsDir() bool {
	return n.Children != nil
}

// SortChildren orders children by key, recursively
func (n *FileNode) SortChildren() {
	if !n.IsDir() {
		return
	}
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].Key < n.Children[j].Key
	})
	for _, child := range n.Children {
		child.SortChildren()
	}
}

// Leaves flattens the tree below n into a key -> leaf map. The root's own
// key is never included, so two roots with different names compare equal.
// Two leaves sharing a key (e.g. "post.md" and "post.markdown") are an error.
func (n *FileNode) Leaves() (map[string]*FileNode, error) {
	leaves := make(map[string]*FileNode)
	if !n.IsDir() {
		return leaves, nil
	}
	for _, child := range n.Children {
		if err := child.collectLeaves(leaves); err != nil {
			return nil, err
		}
	}
	return leaves, nil
}

func (n *FileNode) collectLeaves(leaves map[string]*FileNode) error {
	if n.IsDir() {
		for _, child := range n.Children {
			if err := child.collectLeaves(leaves); err != nil {
				return err
			}
		}
		return nil
	}
	if prev, exists := leaves[n.Key]; exists {
		return fmt.Errorf("%w: %s and %s", ErrDuplicateKey, prev.RelativePath, n.RelativePath)
	}
	leaves[n.Key] = n
	return nil
}

// Count returns the number of leaves below n
func (n *FileNode) Count() int {
	if !n.IsDir() {
		return 1
	}
	total := 0
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}
