package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"postsmith/internal/adapters/watcher"
	"postsmith/internal/application/commands"
	"postsmith/internal/bootstrap"
)

var (
	buildClean    bool
	buildForce    bool
	buildWatch    bool
	buildDebounce time.Duration
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build artifacts and indices",
	Long: `Build JSON artifacts for every changed post and update the indices.

With --watch the build reruns whenever a source file changes.

Examples:
  postsmith build
  postsmith build --clean
  postsmith build --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runBuild(ctx, a, buildClean); err != nil {
			return err
		}
		if !buildWatch {
			return nil
		}

		fmt.Println(mutedStyle.Render("Watching " + a.Config.InputDir + " (Ctrl+C to stop)"))
		w := watcher.New(a.Config.InputDir, buildDebounce, func(ctx context.Context, paths []string) error {
			a.Logger.Debug("sources changed", "paths", paths)
			return runBuild(ctx, a, false)
		}, a.Logger)
		return w.Run(ctx)
	},
}

func runBuild(ctx context.Context, a *bootstrap.App, clean bool) error {
	build := a.BuildCommand()
	build.Force = buildForce
	build.Clean = clean

	result, err := build.Execute(ctx)
	if err != nil {
		return err
	}
	printBuild(result)
	return nil
}

func printBuild(result *commands.BuildResult) {
	fmt.Println(successStyle.Render(result.Message))
	if !verbose {
		return
	}
	for _, c := range result.Changes {
		fmt.Printf("  %s %s\n", mutedStyle.Render(strings.ToUpper(c.Kind.String()[:1])), c.Key())
	}
	fmt.Println(mutedStyle.Render(fmt.Sprintf("  took %s", result.Run.Stats.Duration.Round(time.Millisecond))))
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every artifact and index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}
		result, err := a.CleanCommand().Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(result.Message))
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "remove previous outputs before building")
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "rewrite every index even without changes")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild when sources change")
	buildCmd.Flags().DurationVar(&buildDebounce, "debounce", watcher.DefaultDebounce, "quiet period before a watch rebuild")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
}
