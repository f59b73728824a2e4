package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorful = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	successStyle = style(lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true))
	errorStyle   = style(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true))
	mutedStyle   = style(lipgloss.NewStyle().Foreground(lipgloss.Color("241")))
	headerStyle  = style(lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true))
)

// style drops all formatting when stdout is not a terminal
func style(s lipgloss.Style) lipgloss.Style {
	if !colorful {
		return lipgloss.NewStyle()
	}
	return s
}
