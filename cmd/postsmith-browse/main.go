package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"postsmith/internal/adapters/editor"
	"postsmith/internal/adapters/tui"
	"postsmith/internal/bootstrap"
	"postsmith/internal/config"
	"postsmith/internal/logging"
)

func main() {
	configFlag := flag.String("config", config.ConfigPath(), "path to posts.config.json")
	flag.Parse()

	// Log lines would corrupt the alt screen
	app, err := bootstrap.Load(*configFlag, logging.Discard())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	ui := tui.NewApp(app.Reader, app.Config.InputDir, app.Config.TagField(), editor.NewOpener(), app)

	p := tea.NewProgram(ui, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
