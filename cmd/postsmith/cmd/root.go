package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"postsmith/internal/bootstrap"
	"postsmith/internal/config"
	"postsmith/internal/logging"
)

var (
	configPath string
	verbose    bool
	logJSON    bool

	logger *slog.Logger
	app    *bootstrap.App
)

var rootCmd = &cobra.Command{
	Use:   "postsmith",
	Short: "Incremental JSON builder for Markdown posts",
	Long: `postsmith turns a directory of Markdown posts with YAML front matter
into JSON artifacts plus paginated collection, tag and category indices.

Only sources whose content changed since the last build are regenerated.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logging.LevelInfo
		if verbose {
			level = logging.LevelDebug
		}
		logger = logging.New(logging.Config{Level: level, JSON: logJSON})
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app != nil {
			return app.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigPath(), "path to posts.config.json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON")
}

// GetApp loads the config and wires the adapters on first use
func GetApp() (*bootstrap.App, error) {
	if app != nil {
		return app, nil
	}
	a, err := bootstrap.Load(configPath, logger)
	if err != nil {
		return nil, err
	}
	app = a
	return app, nil
}
