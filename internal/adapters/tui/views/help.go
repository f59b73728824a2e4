package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"postsmith/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("postsmith Help").
		Subtitle("Browse built posts, tags and categories")

	v.Section("Navigation")
	v.Line(helpLine("j / k / ↑ / ↓", "Move up/down"))
	v.Line(helpLine("ctrl+f / ctrl+b", "Page down/up"))
	v.Line(helpLine("h / ←", "Collapse / go to parent"))
	v.Line(helpLine("l / → / Enter", "Expand"))
	v.BlankLine()

	v.Section("Posts")
	v.Line(helpLine("e", "Open source in $EDITOR"))
	v.Line(helpLine("y", "Copy artifact URL"))
	v.Line(helpLine("/", "Search posts"))
	v.BlankLine()

	v.Section("General")
	v.Line(helpLine("b", "Run an incremental build"))
	v.Line(helpLine("?", "Toggle help"))
	v.Line(helpLine("q / Ctrl+C", "Quit"))

	return v.Help(HelpKeys.Close).String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc)
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
