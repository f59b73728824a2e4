package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"postsmith/internal/adapters/tui/views"
	"postsmith/internal/application/commands"
	"postsmith/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewSearch
	ViewHelp
)

// Builder hands out build commands for the browsed site
type Builder interface {
	BuildCommand() *commands.BuildCommand
}

// App is the main TUI application model
type App struct {
	editor  ports.EditorOpener
	builder Builder

	state   ViewState
	browser *views.BrowserModel
	search  *views.SearchModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. editor and builder may be nil.
func NewApp(reader ports.IndexReader, inputDir, tagField string, editor ports.EditorOpener, builder Builder) *App {
	return &App{
		editor:  editor,
		builder: builder,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(reader, inputDir),
		search:  views.NewSearchModel(reader, tagField),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

type buildFinishedMsg struct {
	result *commands.BuildResult
	err    error
}

type editorFinishedMsg struct{ err error }

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SearchSelectMsg:
		a.state = ViewBrowser
		if !a.browser.Reveal(msg.Result.Entry.Fingerprint) {
			return a.Update(views.StatusMsg{Text: "Post not in the collection index", IsErr: true})
		}
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			return a.Update(views.StatusMsg{Text: msg.err.Error(), IsErr: true})
		}
		return a, nil

	case views.BuildRequestMsg:
		if a.builder == nil {
			return a.Update(views.StatusMsg{Text: "Building is not available", IsErr: true})
		}
		return a, a.runBuild()

	case buildFinishedMsg:
		if msg.err != nil {
			return a.Update(views.StatusMsg{Text: msg.err.Error(), IsErr: true})
		}
		message := msg.result.Message
		reload := a.browser.Reload()
		return a, tea.Sequence(reload, func() tea.Msg {
			return views.StatusMsg{Text: message}
		})
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) runBuild() tea.Cmd {
	return func() tea.Msg {
		result, err := a.builder.BuildCommand().Execute(context.Background())
		return buildFinishedMsg{result: result, err: err}
	}
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
