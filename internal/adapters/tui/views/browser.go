package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"postsmith/internal/adapters/filesystem"
	"postsmith/internal/adapters/tui/styles"
	"postsmith/internal/application/commands"
	"postsmith/internal/domain"
	"postsmith/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Edit     key.Binding
	Yank     key.Binding
	Build    key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "page down"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy url"),
	),
	Build: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "build"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// chromeLines is the vertical space taken by title, message and help line
const chromeLines = 8

// BrowserModel is the model for the index tree browser
type BrowserModel struct {
	ViewState

	reader    ports.IndexReader
	inputDir  string
	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	window    *Window

	// copy writes to the system clipboard
	copy func(string) error
}

// NewBrowserModel creates a new browser model. inputDir resolves post
// sources for the editor.
func NewBrowserModel(reader ports.IndexReader, inputDir string) *BrowserModel {
	return &BrowserModel{
		reader:   reader,
		inputDir: inputDir,
		window:   NewWindow(20),
		copy:     clipboard.WriteAll,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *BrowserModel) loadTree() tea.Msg {
	root, err := commands.NewBuildTreeCommand(m.reader).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{root}
}

type treeLoadedMsg struct {
	root *domain.TreeNode
}

type errMsg struct {
	err error
}

// StatusMsg sets the browser status line
type StatusMsg struct {
	Text  string
	IsErr bool
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		m.root = msg.root
		if len(m.root.Children) == 0 {
			m.SetMessage("No index found: run a build first", true)
		}
		m.refreshFlatNodes()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case StatusMsg:
		m.SetMessage(msg.Text, msg.IsErr)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			m.window.Up()
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			m.window.Down()
			return m, nil

		case key.Matches(msg, BrowserKeys.PageUp):
			m.window.PageUp()
			return m, nil

		case key.Matches(msg, BrowserKeys.PageDown):
			m.window.PageDown()
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.SelectedNode(); node != nil {
				if node.IsExpanded {
					node.Collapse()
					m.refreshFlatNodes()
				} else if node.Parent != nil && node.Parent.Kind != domain.NodeRoot {
					m.selectNode(node.Parent)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right), key.Matches(msg, BrowserKeys.Enter):
			if node := m.SelectedNode(); node != nil && !node.IsLeaf() {
				if !node.IsExpanded {
					node.Expand()
				} else if key.Matches(msg, BrowserKeys.Enter) {
					node.Collapse()
				}
				m.refreshFlatNodes()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Edit):
			if node := m.SelectedNode(); node != nil && node.Entry != nil {
				path := filesystem.SourcePath(m.inputDir, node.Entry.Source)
				return m, func() tea.Msg {
					return OpenEditorMsg{Path: path}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Yank):
			if node := m.SelectedNode(); node != nil && node.Entry != nil {
				if err := m.copy(node.Entry.URL); err != nil {
					m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
				} else {
					m.SetMessage("Copied "+node.Entry.URL, false)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Build):
			return m, func() tea.Msg {
				return BuildRequestMsg{}
			}

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// SelectedNode returns the node under the cursor
func (m *BrowserModel) SelectedNode() *domain.TreeNode {
	c := m.window.Cursor()
	if c >= 0 && c < len(m.flatNodes) {
		return m.flatNodes[c]
	}
	return nil
}

// Reveal expands the Posts section and moves the cursor to the post with
// the given fingerprint
func (m *BrowserModel) Reveal(fp string) bool {
	if m.root == nil {
		return false
	}
	for _, section := range m.root.Children {
		if section.Kind != domain.NodeSection || section.Label != "Posts" {
			continue
		}
		for _, post := range section.Children {
			if post.Entry != nil && post.Entry.Fingerprint == fp {
				section.Expand()
				m.refreshFlatNodes()
				m.selectNode(post)
				return true
			}
		}
	}
	return false
}

func (m *BrowserModel) selectNode(target *domain.TreeNode) {
	for i, n := range m.flatNodes {
		if n == target {
			m.window.SetCursor(i)
			return
		}
	}
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// The root itself is not displayed
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	m.window.SetTotal(len(m.flatNodes))
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil && m.Message == "" {
		return "Loading..."
	}

	v := NewViewBuilder().
		Title("postsmith").
		Subtitle("Built indices")

	start, end := m.window.Visible()
	for i := start; i < end; i++ {
		v.Line(m.renderNode(m.flatNodes[i], i == m.window.Cursor()))
	}
	if hidden := len(m.flatNodes) - end; hidden > 0 {
		v.Muted(fmt.Sprintf("↓ %d more", hidden))
	}

	return v.Message(m.Message, m.MessageErr).
		Help(BrowserKeys.Up, BrowserKeys.Right, BrowserKeys.Edit, BrowserKeys.Yank,
			BrowserKeys.Build, BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit).
		String()
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth()-1)

	var prefix string
	switch {
	case node.IsLeaf():
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := node.Label
	if selected {
		text = styles.NodeSelected.Render(text)
	} else {
		text = styles.NodeStyle(node).Render(text)
	}
	if node.Kind != domain.NodePost {
		text += " " + styles.NodeCount.Render(fmt.Sprintf("(%d)", node.Count))
	}

	return indent + styles.TreeBranch.Render(prefix) + text
}

// SetSize updates the view dimensions and the visible row count
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.window.SetSize(height - chromeLines)
}

// Reload reloads the tree from disk
func (m *BrowserModel) Reload() tea.Cmd {
	m.root = nil
	m.flatNodes = nil
	m.window.Reset()
	return m.loadTree
}

// OpenEditorMsg asks the app to open path in the editor
type OpenEditorMsg struct {
	Path string
}

// BuildRequestMsg asks the app to run a build
type BuildRequestMsg struct{}

type SwitchToSearchMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
