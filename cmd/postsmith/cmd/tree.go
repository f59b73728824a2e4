package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"postsmith/internal/application/commands"
	"postsmith/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display every index as a tree",
	Long: `Display posts, tags and categories as one tree.

Example:
  postsmith tree`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		root, err := commands.NewBuildTreeCommand(a.Reader).Execute(context.Background())
		if err != nil {
			return err
		}

		for _, child := range root.Children {
			printTree(child, 0)
		}
		return nil
	},
}

func printTree(node *domain.TreeNode, depth int) {
	if node == nil {
		return
	}

	indent := strings.Repeat("  ", depth)
	switch node.Kind {
	case domain.NodeSection:
		fmt.Printf("%s%s %s\n", indent, headerStyle.Render(node.Label), mutedStyle.Render(fmt.Sprintf("(%d)", node.Count)))
	case domain.NodePost:
		fmt.Printf("%s%s\n", indent, node.Label)
	default:
		fmt.Printf("%s%s %s\n", indent, node.Label, mutedStyle.Render(fmt.Sprintf("(%d)", node.Count)))
	}

	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
