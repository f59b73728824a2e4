package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"postsmith/internal/application/commands"
	"postsmith/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a commented posts.config.json to the --config path.

An existing file is never overwritten.

Example:
  postsmith init
  postsmith init -c site/posts.config.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewInitCommand(configPath, config.Template()).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(result.Message))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
