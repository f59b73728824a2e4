package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"postsmith/internal/application/commands"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent builds",
	Long: `Show the most recent builds of the configured output directory.

Example:
  postsmith history --limit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		if a.History == nil {
			return errors.New("build history is disabled")
		}

		runs, err := commands.NewHistoryCommand(a.History, historyLimit).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No builds recorded")
			return nil
		}

		for _, r := range runs {
			s := r.Stats
			line := fmt.Sprintf("%s  +%d ~%d -%d", r.StartedAt.Local().Format(time.DateTime), s.Created, s.Modified, s.Deleted)
			if len(s.Saved) > 0 {
				line += "  saved " + strings.Join(s.Saved, ",")
			}
			if s.Forced {
				line += "  (forced)"
			}
			fmt.Printf("%s %s\n", line, mutedStyle.Render(s.Duration.Round(time.Millisecond).String()))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of builds to show")
	rootCmd.AddCommand(historyCmd)
}
