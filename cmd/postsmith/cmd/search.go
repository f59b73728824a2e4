package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"postsmith/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search posts",
	Long: `Search the collection by title, source path and tags.

Results are ranked by relevance using fuzzy matching.

Examples:
  postsmith search generics
  postsmith search lang/go`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}

		results, err := commands.NewSearchCommand(a.Reader, args[0], a.Config.TagField()).Execute(context.Background())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			title := r.Entry.Header.String("title")
			if title == "" {
				title = r.Entry.Source
			}
			fmt.Printf("[%d] %s %s\n", r.Score, title, mutedStyle.Render(r.Entry.URL))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
