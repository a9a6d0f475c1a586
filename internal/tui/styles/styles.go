// Package styles provides Lip Gloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"focustree/internal/tree"
)

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Base styles
var (
	// App is the base style for the entire application
	App = lipgloss.NewStyle().
		Padding(0, 1)

	// TitleBar is the style for the top bar
	TitleBar = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(Subtle)

	// Title is the style for section titles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)
)

// Node list styles
var (
	// NodeItem is the base style for a tree row
	NodeItem = lipgloss.NewStyle().
			PaddingLeft(1)

	// NodeSelected is the style for the selected tree row
	NodeSelected = lipgloss.NewStyle().
			PaddingLeft(0).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(Highlight).
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"})

	// NodeActive colors rows whose commitment is still live
	NodeActive = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// NodeFailed colors rows marked failed
	NodeFailed = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// NodeCompleted colors rows internalized as habit
	NodeCompleted = lipgloss.NewStyle().
			Foreground(Subtle).
			Faint(true)

	// NodeDays is for the "(N d)" age suffix
	NodeDays = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Detail panel styles
var (
	DetailLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle).
			PaddingRight(1)

	DetailValue = lipgloss.NewStyle()

	DetailPanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(0, 1)
)

// Status bar / help styles
var (
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)

	StatusInfo = lipgloss.NewStyle().
			Foreground(SuccessColor)

	StatusError = lipgloss.NewStyle().
			Foreground(ErrorColor)
)

// Dialog styles
var (
	Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	DialogDanger = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	InputLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)
)

// GetStatusStyle returns the row style for a node status.
func GetStatusStyle(s tree.Status) lipgloss.Style {
	switch s {
	case tree.StatusFailed:
		return NodeFailed
	case tree.StatusCompleted:
		return NodeCompleted
	default:
		return NodeActive
	}
}

// StatusGlyph returns the one-cell marker shown next to a node.
func StatusGlyph(s tree.Status) string {
	switch s {
	case tree.StatusFailed:
		return "✗"
	case tree.StatusCompleted:
		return "✓"
	default:
		return "●"
	}
}
