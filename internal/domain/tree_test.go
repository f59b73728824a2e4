package domain

import "testing"

func TestTreeNode_FlattenFollowsExpansion(t *testing.T) {
	root := &TreeNode{Kind: NodeRoot, IsExpanded: true}
	posts := root.AddChild(&TreeNode{Kind: NodeSection, Label: "Posts"})
	posts.AddChild(&TreeNode{Kind: NodePost, Label: "hello"})
	root.AddChild(&TreeNode{Kind: NodeSection, Label: "Tags"})

	if got := len(root.Flatten()); got != 3 {
		t.Fatalf("collapsed section: expected 3 visible nodes, got %d", got)
	}

	posts.Toggle()
	nodes := root.Flatten()
	if len(nodes) != 4 {
		t.Fatalf("expanded section: expected 4 visible nodes, got %d", len(nodes))
	}
	if nodes[2].Label != "hello" || nodes[2].Depth() != 2 {
		t.Errorf("unexpected node %q at depth %d", nodes[2].Label, nodes[2].Depth())
	}
	if !nodes[2].IsLeaf() || posts.IsLeaf() {
		t.Error("leaf detection is wrong")
	}

	posts.Collapse()
	if len(root.Flatten()) != 3 {
		t.Error("collapse should hide children")
	}
}
