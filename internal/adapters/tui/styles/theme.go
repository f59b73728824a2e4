package styles

import (
	"github.com/charmbracelet/lipgloss"

	"postsmith/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Section colors
	SectionPosts      = lipgloss.Color("#6366F1") // Indigo
	SectionTags       = lipgloss.Color("#EC4899") // Pink
	SectionCategories = lipgloss.Color("#F97316") // Orange

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree node styles
	NodeSection = lipgloss.NewStyle().
			Bold(true)

	NodeTag = lipgloss.NewStyle().
		Foreground(Secondary)

	NodeCategory = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	NodePost = lipgloss.NewStyle()

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeCount = lipgloss.NewStyle().
			Foreground(Muted)

	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// SectionColor returns the color for a top-level section label
func SectionColor(label string) lipgloss.Color {
	switch label {
	case "Posts":
		return SectionPosts
	case "Tags":
		return SectionTags
	case "Categories":
		return SectionCategories
	default:
		return Primary
	}
}

// NodeStyle returns the base style for a tree node kind
func NodeStyle(node *domain.TreeNode) lipgloss.Style {
	switch node.Kind {
	case domain.NodeSection:
		return NodeSection.Foreground(SectionColor(node.Label))
	case domain.NodeTag:
		return NodeTag
	case domain.NodeCategory:
		return NodeCategory
	default:
		return NodePost
	}
}
