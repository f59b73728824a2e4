package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"postsmith/internal/application/commands"
	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

// RegisterReadTools adds all read-only index tools to the MCP server.
// tagField is the header field searched for tags.
func RegisterReadTools(s *server.MCPServer, reader ports.IndexReader, tagField string) {
	s.AddTool(listPostsTool(), listPostsHandler(reader))
	s.AddTool(listTagsTool(), listTagsHandler(reader))
	s.AddTool(getTagTool(), getTagHandler(reader))
	s.AddTool(listCategoriesTool(), listCategoriesHandler(reader))
	s.AddTool(getCategoryTool(), getCategoryHandler(reader))
	s.AddTool(searchTool(), searchHandler(reader, tagField))
	s.AddTool(treeTool(), treeHandler(reader))
}

// --- list_posts ---

func listPostsTool() mcp.Tool {
	return mcp.NewTool("list_posts",
		mcp.WithDescription("List every post in the collection index with its artifact URL."),
	)
}

func listPostsHandler(reader ports.IndexReader) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		posts, err := commands.NewListPostsCommand(reader).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(posts, formatEntry)
	}
}

// --- list_tags ---

func listTagsTool() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List tags with their post and page counts, most used first."),
	)
}

func listTagsHandler(reader ports.IndexReader) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := commands.NewListTagsCommand(reader).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(tags, func(t commands.TagSummary) string {
			return fmt.Sprintf("%s  %d posts  %d pages", t.Name, t.Count, t.Pages)
		})
	}
}

// --- get_tag ---

func getTagTool() mcp.Tool {
	return mcp.NewTool("get_tag",
		mcp.WithDescription("List the posts and page URLs of one tag."),
		mcp.WithString("name",
			mcp.Description("Tag name, exactly as written in front matter"),
			mcp.Required(),
		),
	)
}

func getTagHandler(reader ports.IndexReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		if name == "" {
			return toolError(fmt.Errorf("name is required"))
		}

		bucket, err := commands.NewGetTagCommand(reader, name).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatBucket(bucket.Items, bucket.PageURLs), nil
	}
}

// --- list_categories ---

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List the category tree. Each line shows the path, own post count and total below it."),
		mcp.WithString("path",
			mcp.Description("Category path to start from (e.g. lang/go). Omit for the whole tree."),
		),
	)
}

func listCategoriesHandler(reader ports.IndexReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		categories, err := commands.NewListCategoriesCommand(reader, path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(categories, func(c commands.CategorySummary) string {
			return fmt.Sprintf("%s  %d  %d", c.Path, c.Count, c.Total)
		})
	}
}

// --- get_category ---

func getCategoryTool() mcp.Tool {
	return mcp.NewTool("get_category",
		mcp.WithDescription("List the posts and page URLs filed directly under one category."),
		mcp.WithString("path",
			mcp.Description("Category path (e.g. lang/go)"),
			mcp.Required(),
		),
	)
}

func getCategoryHandler(reader ports.IndexReader) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return toolError(fmt.Errorf("path is required"))
		}

		node, err := commands.NewGetCategoryCommand(reader, path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatBucket(node.Items, node.PageURLs), nil
	}
}

// --- search_posts ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_posts",
		mcp.WithDescription("Fuzzy search posts by title, source path and tags. Best matches first."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
	)
}

func searchHandler(reader ports.IndexReader, tagField string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(reader, query, tagField).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%d  %s\n", r.Score, formatEntry(r.Entry))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display posts, tags and categories as a tree."),
	)
}

func treeHandler(reader ports.IndexReader) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := commands.NewBuildTreeCommand(reader).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		renderTree(&sb, root, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	if node.Kind != domain.NodeRoot {
		if node.Kind == domain.NodePost {
			fmt.Fprintf(sb, "%s%s\n", prefix, node.Label)
		} else {
			fmt.Fprintf(sb, "%s%s (%d)\n", prefix, node.Label, node.Count)
		}
		prefix += "  "
	}
	for _, child := range node.Children {
		renderTree(sb, child, prefix)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatBucket(items []domain.Entry, pages []string) *mcp.CallToolResult {
	var sb strings.Builder
	for _, e := range items {
		sb.WriteString(formatEntry(e))
		sb.WriteByte('\n')
	}
	for i, u := range pages {
		fmt.Fprintf(&sb, "page %d  %s\n", i+1, u)
	}
	if sb.Len() == 0 {
		return mcp.NewToolResultText("No results.")
	}
	return mcp.NewToolResultText(sb.String())
}

func formatEntry(e domain.Entry) string {
	title := e.Header.String("title")
	if title == "" {
		return fmt.Sprintf("%s  %s", e.Source, e.URL)
	}
	return fmt.Sprintf("%s  %s  %s", e.Source, title, e.URL)
}
