package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"focustree/internal/tree"
	"focustree/internal/tui/styles"
	"focustree/internal/tui/utils"
)

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	listHeight := a.height - 12 // title bar, detail panel, help line, borders
	if listHeight < 3 {
		listHeight = 3
	}

	sections := []string{
		a.renderTitleBar(),
		a.renderTree(listHeight),
		a.renderDetails(),
		a.renderHelp(),
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	switch a.mode {
	case ModeAddTitle, ModeAddBody:
		content = a.overlayCenter(content, a.renderAddDialog())
	case ModeEditBody:
		content = a.overlayCenter(content, a.renderInputDialog("Edit Body"))
	case ModeEditTitle:
		content = a.overlayCenter(content, a.renderInputDialog("Edit Title"))
	case ModeConfirm:
		content = a.overlayCenter(content, a.renderConfirmDialog())
	}

	return styles.App.Render(content)
}

func (a *App) renderTitleBar() string {
	return styles.TitleBar.Width(a.width - 2).Render("🌳 Focus Tree")
}

// renderTree paints the flattened forest, one row per node, windowed
// around the selection when the list is taller than the pane.
func (a *App) renderTree(height int) string {
	if len(a.rows) == 0 {
		return styles.HelpDesc.Render("\nNo commitments yet. Press 'a' to add the first one.\n")
	}

	start := 0
	if len(a.rows) > height && a.selected >= height {
		start = a.selected - height + 1
	}
	end := start + height
	if end > len(a.rows) {
		end = len(a.rows)
	}

	now := time.Now()
	var b strings.Builder
	for i := start; i < end; i++ {
		row := a.rows[i]
		line := a.renderRow(row, now)

		if i == a.selected {
			b.WriteString(styles.NodeSelected.Render(line))
		} else {
			b.WriteString(styles.NodeItem.Render(styles.GetStatusStyle(row.Node.Status).Render(line)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow is the per-node presentation: indentation by depth, a prefix
// distinguishing roots from children, the age in days, and the status
// glyph. Derived fields are computed on the fly; nothing is cached.
func (a *App) renderRow(row tree.Row, now time.Time) string {
	indent := strings.Repeat("  ", row.Depth)
	prefix := "▪ "
	if row.Depth > 0 {
		prefix = "├─ "
	}

	suffix := fmt.Sprintf(" (%d d) %s", row.Node.DaysActive(now), styles.StatusGlyph(row.Node.Status))
	maxTitle := a.width - 6 - lipgloss.Width(indent+prefix+suffix)
	title := utils.TruncateString(row.Node.Title, maxTitle)

	return indent + prefix + title + suffix
}

// renderDetails paints the detail panel for the selected node.
func (a *App) renderDetails() string {
	panelWidth := a.width - 4

	var b strings.Builder
	if n := a.selectedNode(); n != nil {
		b.WriteString(styles.DetailLabel.Render("Title:"))
		b.WriteString(styles.DetailValue.Render(utils.TruncateString(n.Title, panelWidth-10)))
		b.WriteString("\n")
		b.WriteString(styles.DetailLabel.Render("Created:"))
		b.WriteString(styles.DetailValue.Render(n.CreatedAt.Format("2006-01-02 15:04")))
		b.WriteString(styles.DetailLabel.Render("  Days:"))
		b.WriteString(styles.DetailValue.Render(fmt.Sprintf("%d", n.DaysActive(time.Now()))))
		b.WriteString(styles.DetailLabel.Render("  Status:"))
		b.WriteString(styles.GetStatusStyle(n.Status).Render(string(n.Status)))
		b.WriteString("\n")
		b.WriteString(styles.DetailLabel.Render("Body:"))
		body := n.Body
		if body == "" {
			body = "(none)"
		}
		b.WriteString(styles.DetailValue.Render(utils.TruncateString(body, panelWidth-10)))
	} else {
		b.WriteString(styles.HelpDesc.Render("Nothing selected"))
	}

	return styles.DetailPanel.Width(panelWidth).Render(b.String())
}

// renderHelp paints the context-sensitive key hints, with the latest
// status message appended when present.
func (a *App) renderHelp() string {
	var parts []string
	for _, item := range a.keymap.HelpItems(a.mode) {
		parts = append(parts, styles.HelpKey.Render(item[0])+" "+styles.HelpDesc.Render(item[1]))
	}
	line := strings.Join(parts, styles.HelpDesc.Render(" • "))

	if a.statusMsg != "" {
		style := styles.StatusInfo
		if a.statusErr {
			style = styles.StatusError
		}
		line += styles.HelpDesc.Render("  |  ") + style.Render(a.statusMsg)
	}
	return line
}

// renderAddDialog paints the two-stage add form: title first, body
// second, with the inactive field shown read-only.
func (a *App) renderAddDialog() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("New Commitment"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Title"))
	b.WriteString("\n")
	if a.mode == ModeAddTitle {
		b.WriteString(a.input.View())
	} else {
		b.WriteString(styles.HelpDesc.Render(a.pendingTitle))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Body (optional)"))
	b.WriteString("\n")
	if a.mode == ModeAddBody {
		b.WriteString(a.input.View())
	} else {
		b.WriteString(styles.HelpDesc.Render(""))
	}
	b.WriteString("\n\n")

	hint := "Enter: next • Esc: cancel"
	if a.mode == ModeAddBody {
		hint = "Enter: save • Esc: cancel"
	}
	b.WriteString(styles.HelpDesc.Render(hint))

	return styles.Dialog.Width(dialogWidth(a.width)).Render(b.String())
}

func (a *App) renderInputDialog(title string) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("Enter: save • Esc: cancel"))

	return styles.Dialog.Width(dialogWidth(a.width)).Render(b.String())
}

func (a *App) renderConfirmDialog() string {
	msg := "Delete this commitment and its whole subtree?"
	if a.pending.kind == confirmFail {
		msg = "Mark this commitment failed and forfeit its subtree?"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("⚠ Confirm"))
	b.WriteString("\n\n")
	b.WriteString(msg)
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("y: confirm • n: cancel"))

	return styles.DialogDanger.Width(dialogWidth(a.width)).Render(b.String())
}

func dialogWidth(appWidth int) int {
	w := 56
	if w > appWidth-8 {
		w = appWidth - 8
	}
	if w < 24 {
		w = 24
	}
	return w
}

// overlayCenter replaces the vertically-centered lines of content with
// the dialog, horizontally centered.
func (a *App) overlayCenter(content, dialog string) string {
	dialogLines := strings.Split(dialog, "\n")
	contentLines := strings.Split(content, "\n")

	leftPad := (a.width - lipgloss.Width(dialog)) / 2
	if leftPad < 0 {
		leftPad = 0
	}
	startLine := (len(contentLines) - len(dialogLines)) / 2
	if startLine < 0 {
		startLine = 0
	}

	for i, line := range dialogLines {
		if startLine+i >= len(contentLines) {
			break
		}
		contentLines[startLine+i] = strings.Repeat(" ", leftPad) + line
	}
	return strings.Join(contentLines, "\n")
}
