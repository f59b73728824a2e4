package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"postsmith/internal/application/commands"
	"postsmith/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [posts|tags|tag|categories|category]",
	Short: "List built index contents",
	Long: `List the contents of the persisted indices. Run a build first.

Examples:
  postsmith list posts
  postsmith list tags
  postsmith list tag go
  postsmith list categories lang
  postsmith list category lang/go`,
}

var listPostsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List every post in the collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		posts, err := commands.NewListPostsCommand(a.Reader).Execute(context.Background())
		if err != nil {
			return err
		}
		printEntries(posts)
		return nil
	},
}

var listTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags, most used first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		tags, err := commands.NewListTagsCommand(a.Reader).Execute(context.Background())
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Printf("%s %s\n", t.Name, mutedStyle.Render(fmt.Sprintf("(%d posts, %d pages)", t.Count, t.Pages)))
		}
		return nil
	},
}

var listTagCmd = &cobra.Command{
	Use:   "tag <name>",
	Short: "List the posts of one tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		bucket, err := commands.NewGetTagCommand(a.Reader, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		printEntries(bucket.Items)
		printPages(bucket.PageURLs)
		return nil
	},
}

var listCategoriesCmd = &cobra.Command{
	Use:   "categories [path]",
	Short: "List the category tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		categories, err := commands.NewListCategoriesCommand(a.Reader, path).Execute(context.Background())
		if err != nil {
			return err
		}
		for _, c := range categories {
			name := c.Path[strings.LastIndex(c.Path, "/")+1:]
			fmt.Printf("%s%s %s\n", strings.Repeat("  ", c.Depth), name,
				mutedStyle.Render(fmt.Sprintf("(%d/%d)", c.Count, c.Total)))
		}
		return nil
	},
}

var listCategoryCmd = &cobra.Command{
	Use:   "category <path>",
	Short: "List the posts filed under one category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		node, err := commands.NewGetCategoryCommand(a.Reader, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		printEntries(node.Items)
		printPages(node.PageURLs)
		return nil
	},
}

func printEntries(entries []domain.Entry) {
	for _, e := range entries {
		title := e.Header.String("title")
		if title == "" {
			title = e.Source
		}
		fmt.Printf("%s %s\n", title, mutedStyle.Render(e.URL))
	}
}

func printPages(urls []string) {
	for i, u := range urls {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("  page %d: %s", i+1, u)))
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listPostsCmd)
	listCmd.AddCommand(listTagsCmd)
	listCmd.AddCommand(listTagCmd)
	listCmd.AddCommand(listCategoriesCmd)
	listCmd.AddCommand(listCategoryCmd)
}
