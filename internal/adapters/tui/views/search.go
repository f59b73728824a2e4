package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"postsmith/internal/adapters/tui/styles"
	"postsmith/internal/application/commands"
	"postsmith/internal/ports"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "reveal"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const maxResults = 10

// SearchModel is the model for the post search view
type SearchModel struct {
	ViewState

	reader   ports.IndexReader
	tagField string
	input    textinput.Model
	results  []commands.SearchResult
	cursor   int
}

// NewSearchModel creates a new search view model
func NewSearchModel(reader ports.IndexReader, tagField string) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search posts..."
	input.Focus()

	return &SearchModel{
		reader:   reader,
		tagField: tagField,
		input:    input,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and results
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.ClearMessage()
	m.input.Focus()
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
	err     error
}

// SearchSelectMsg is sent when a result is chosen
type SearchSelectMsg struct {
	Result commands.SearchResult
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// Drop results for a query the user has already typed past
		if msg.query != m.input.Value() {
			return m, nil
		}
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			m.results = nil
		} else {
			m.ClearMessage()
			m.results = msg.results
		}
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				result := m.results[m.cursor]
				return m, func() tea.Msg {
					return SearchSelectMsg{Result: result}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := m.input.Value()
	if len(query) >= 2 {
		return m, tea.Batch(cmd, m.search(query))
	}
	m.results = nil
	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := commands.NewSearchCommand(m.reader, query, m.tagField).Execute(context.Background())
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder().Title("Search")
	v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()

	switch {
	case len(m.results) > 0:
		v.Subtitle(fmt.Sprintf("%d results", len(m.results)))
		for i := 0; i < min(len(m.results), maxResults); i++ {
			v.Line(m.renderResult(m.results[i], i == m.cursor))
		}
		if len(m.results) > maxResults {
			v.Muted(fmt.Sprintf("... and %d more", len(m.results)-maxResults))
		}
	case len(m.input.Value()) >= 2 && m.Message == "":
		v.Muted("No results found")
	case m.Message == "":
		v.Muted("Type at least 2 characters to search")
	}

	return v.Message(m.Message, m.MessageErr).
		Help(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel).
		String()
}

func (m *SearchModel) renderResult(result commands.SearchResult, selected bool) string {
	title := result.Entry.Header.String("title")
	if title == "" {
		title = result.Entry.Source
	}
	text := fmt.Sprintf("%s %s", title, styles.MutedText.Render(result.Entry.Source))
	if selected {
		return styles.NodeSelected.Render(title) + " " + styles.MutedText.Render(result.Entry.Source)
	}
	return text
}
