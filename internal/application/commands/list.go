package commands

import (
	"context"
	"sort"
	"strings"

	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

// ListPostsCommand lists the collection entries
type ListPostsCommand struct {
	reader ports.IndexReader
}

// NewListPostsCommand creates a new ListPostsCommand
func NewListPostsCommand(reader ports.IndexReader) *ListPostsCommand {
	return &ListPostsCommand{reader: reader}
}

// Execute runs the list posts command
func (c *ListPostsCommand) Execute(ctx context.Context) ([]domain.Entry, error) {
	return c.reader.Posts()
}

// TagSummary is a tag name with its entry and page counts
type TagSummary struct {
	Name  string
	Count int
	Pages int
}

// ListTagsCommand lists every tag, most used first
type ListTagsCommand struct {
	reader ports.IndexReader
}

// NewListTagsCommand creates a new ListTagsCommand
func NewListTagsCommand(reader ports.IndexReader) *ListTagsCommand {
	return &ListTagsCommand{reader: reader}
}

// Execute runs the list tags command
func (c *ListTagsCommand) Execute(ctx context.Context) ([]TagSummary, error) {
	tags, err := c.reader.Tags()
	if err != nil {
		return nil, err
	}

	summaries := make([]TagSummary, 0, len(tags))
	for name, bucket := range tags {
		summaries = append(summaries, TagSummary{
			Name:  name,
			Count: len(bucket.Items),
			Pages: len(bucket.PageURLs),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// GetTagCommand returns one tag bucket
type GetTagCommand struct {
	reader ports.IndexReader
	Name   string
}

// NewGetTagCommand creates a new GetTagCommand
func NewGetTagCommand(reader ports.IndexReader, name string) *GetTagCommand {
	return &GetTagCommand{reader: reader, Name: name}
}

// Execute runs the get tag command
func (c *GetTagCommand) Execute(ctx context.Context) (*domain.Bucket, error) {
	return c.reader.Tag(c.Name)
}

// CategorySummary is one node of the category tree
type CategorySummary struct {
	Path  string
	Depth int
	Count int // Entries filed directly on this node
	Total int // Entries on this node and below
}

// ListCategoriesCommand lists the category tree, optionally below a path
type ListCategoriesCommand struct {
	reader ports.IndexReader
	Path   string // "lang/go" style, empty for the root
}

// NewListCategoriesCommand creates a new ListCategoriesCommand
func NewListCategoriesCommand(reader ports.IndexReader, path string) *ListCategoriesCommand {
	return &ListCategoriesCommand{reader: reader, Path: path}
}

// Execute runs the list categories command
func (c *ListCategoriesCommand) Execute(ctx context.Context) ([]CategorySummary, error) {
	segments := SplitCategoryPath(c.Path)
	node, err := c.reader.Category(segments)
	if err != nil {
		return nil, err
	}

	var summaries []CategorySummary
	err = node.Walk(func(path []string, n *domain.CategoryNode) error {
		full := append(append([]string{}, segments...), path...)
		summaries = append(summaries, CategorySummary{
			Path:  strings.Join(full, "/"),
			Depth: len(path) - 1,
			Count: len(n.Items),
			Total: n.Total(),
		})
		return nil
	})
	return summaries, err
}

// GetCategoryCommand returns the node at a category path
type GetCategoryCommand struct {
	reader ports.IndexReader
	Path   string
}

// NewGetCategoryCommand creates a new GetCategoryCommand
func NewGetCategoryCommand(reader ports.IndexReader, path string) *GetCategoryCommand {
	return &GetCategoryCommand{reader: reader, Path: path}
}

// Execute runs the get category command
func (c *GetCategoryCommand) Execute(ctx context.Context) (*domain.CategoryNode, error) {
	return c.reader.Category(SplitCategoryPath(c.Path))
}

// SplitCategoryPath splits "lang/go" into its segments
func SplitCategoryPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// BuildTreeCommand builds the browse tree over every persisted index
type BuildTreeCommand struct {
	reader ports.IndexReader
}

// NewBuildTreeCommand creates a new BuildTreeCommand
func NewBuildTreeCommand(reader ports.IndexReader) *BuildTreeCommand {
	return &BuildTreeCommand{reader: reader}
}

// Execute runs the build tree command. Disabled or unbuilt indices are
// left out of the tree.
func (c *BuildTreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	root := &domain.TreeNode{Kind: domain.NodeRoot, Label: "postsmith", IsExpanded: true}

	if posts, err := c.reader.Posts(); err == nil {
		section := root.AddChild(&domain.TreeNode{Kind: domain.NodeSection, Label: "Posts", Count: len(posts)})
		for i := range posts {
			section.AddChild(postNode(posts[i]))
		}
	}

	if tags, err := c.reader.Tags(); err == nil {
		section := root.AddChild(&domain.TreeNode{Kind: domain.NodeSection, Label: "Tags", Count: len(tags)})
		names := make([]string, 0, len(tags))
		for name := range tags {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			bucket := tags[name]
			tag := section.AddChild(&domain.TreeNode{Kind: domain.NodeTag, Label: name, Count: len(bucket.Items)})
			for i := range bucket.Items {
				tag.AddChild(postNode(bucket.Items[i]))
			}
		}
	}

	if categories, err := c.reader.Categories(); err == nil {
		section := root.AddChild(&domain.TreeNode{Kind: domain.NodeSection, Label: "Categories", Count: categories.Total()})
		addCategories(section, categories)
	}

	return root, nil
}

func addCategories(parent *domain.TreeNode, node *domain.CategoryNode) {
	names := make([]string, 0, len(node.Subcategories))
	for name := range node.Subcategories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		child := node.Subcategories[name]
		tn := parent.AddChild(&domain.TreeNode{Kind: domain.NodeCategory, Label: name, Count: child.Total()})
		addCategories(tn, child)
		for i := range child.Items {
			tn.AddChild(postNode(child.Items[i]))
		}
	}
}

func postNode(e domain.Entry) *domain.TreeNode {
	label := e.Header.String("title")
	if label == "" {
		label = e.Source
	}
	if label == "" {
		label = e.URL
	}
	entry := e
	return &domain.TreeNode{Kind: domain.NodePost, Label: label, Entry: &entry}
}
