package domain

// NodeKind identifies what a browser tree node stands for
type NodeKind int

const (
	NodeRoot NodeKind = iota
	NodeSection
	NodeTag
	NodeCategory
	NodePost
)

// TreeNode represents a node in the index tree for navigation
type TreeNode struct {
	Kind       NodeKind
	Label      string
	Count      int
	Entry      *Entry // Set for NodePost
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// AddChild appends child and links it back to n
func (n *TreeNode) AddChild(child *TreeNode) *TreeNode {
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// IsLeaf reports whether the node has nothing to expand
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}
