package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"focustree/internal/tree"
)

// Update implements tea.Model. All tree mutations funnel through the
// intent dispatch below.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inputWidth := msg.Width - 12
		if inputWidth < 20 {
			inputWidth = 20
		}
		if inputWidth > 60 {
			inputWidth = 60
		}
		a.input.Width = inputWidth
		return a, nil
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.keymap.IntentFor(a.mode, msg) {
	case IntentQuit:
		return a, tea.Quit

	case IntentSelectUp:
		if a.selected > 0 {
			a.selected--
		}
		return a, nil

	case IntentSelectDown:
		if a.selected+1 < len(a.rows) {
			a.selected++
		}
		return a, nil

	case IntentStartAdd:
		a.startAdd()
		return a, nil

	case IntentStartEditBody:
		a.startEdit(ModeEditBody)
		return a, nil

	case IntentStartEditTitle:
		a.startEdit(ModeEditTitle)
		return a, nil

	case IntentStartMove:
		a.startMove()
		return a, nil

	case IntentStartDelete:
		a.startDelete()
		return a, nil

	case IntentStartFail:
		a.startFail()
		return a, nil

	case IntentYank:
		a.yankSelected()
		return a, nil

	case IntentSubmit:
		a.submit()
		return a, nil

	case IntentCancel:
		a.cancel()
		return a, nil

	case IntentText:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	// Unmapped intents are ignored: no state change, no side effect.
	return a, nil
}

// startAdd enters the two-stage add flow (title first, then body). The
// node lands under the current selection, or at the top level when the
// tree is empty.
func (a *App) startAdd() {
	a.mode = ModeAddTitle
	a.pendingTitle = ""
	a.input.SetValue("")
	a.input.Placeholder = "Commitment title"
	a.input.Focus()
}

// startEdit enters an edit mode for the selected node with the buffer
// preloaded from the field being edited. No-op on an empty tree.
func (a *App) startEdit(mode Mode) {
	n := a.selectedNode()
	if n == nil {
		return
	}
	a.mode = mode
	a.targetID = n.ID
	if mode == ModeEditTitle {
		a.input.Placeholder = "Commitment title"
		a.input.SetValue(n.Title)
	} else {
		a.input.Placeholder = "Body"
		a.input.SetValue(n.Body)
	}
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *App) startMove() {
	n := a.selectedNode()
	if n == nil {
		return
	}
	a.mode = ModeMove
	a.targetID = n.ID
	a.setStatus("Pick the new parent, then press 'm' to confirm")
}

func (a *App) startDelete() {
	n := a.selectedNode()
	if n == nil {
		return
	}
	if !a.config.UI.ConfirmDestructive {
		a.applyDelete(n.ID)
		return
	}
	a.mode = ModeConfirm
	a.pending = pendingAction{kind: confirmDelete, id: n.ID}
}

// startFail stages a cascading failure for an active node, or recovers a
// failed one in place. Completed nodes have no transition.
func (a *App) startFail() {
	n := a.selectedNode()
	if n == nil {
		return
	}
	switch n.Status {
	case tree.StatusActive:
		if !a.config.UI.ConfirmDestructive {
			a.applyFail(n.ID)
			return
		}
		a.mode = ModeConfirm
		a.pending = pendingAction{kind: confirmFail, id: n.ID}
	case tree.StatusFailed:
		if a.tree.Recover(n.ID) {
			a.refreshRows()
			a.setStatus("Commitment recovered")
		}
	}
}

// yankSelected copies the selected node's title and body to the system
// clipboard.
func (a *App) yankSelected() {
	n := a.selectedNode()
	if n == nil {
		return
	}
	text := n.Title
	if n.Body != "" {
		text += "\n\n" + n.Body
	}
	if err := clipboard.WriteAll(text); err != nil {
		a.setError("Clipboard unavailable")
		return
	}
	a.setStatus("Copied to clipboard")
}

// submit resolves the Submit intent for whichever mode staged work.
func (a *App) submit() {
	switch a.mode {
	case ModeAddTitle:
		if a.input.Value() == "" {
			a.setError("Title cannot be empty")
			return
		}
		a.pendingTitle = a.input.Value()
		a.input.SetValue("")
		a.input.Placeholder = "Body (optional)"
		a.mode = ModeAddBody

	case ModeAddBody:
		a.tree.Add(a.pendingTitle, a.input.Value(), a.selectedID())
		a.pendingTitle = ""
		a.refreshRows()
		a.mode = ModeNormal
		a.setStatus("Commitment added")

	case ModeEditBody:
		a.tree.SetBody(a.targetID, a.input.Value())
		a.mode = ModeNormal
		a.setStatus("Body updated")

	case ModeEditTitle:
		a.tree.SetTitle(a.targetID, a.input.Value())
		a.mode = ModeNormal
		a.setStatus("Title updated")

	case ModeMove:
		a.applyMove()

	case ModeConfirm:
		switch a.pending.kind {
		case confirmDelete:
			a.applyDelete(a.pending.id)
		case confirmFail:
			a.applyFail(a.pending.id)
		}
	}
}

func (a *App) applyMove() {
	err := a.tree.Move(a.targetID, a.selectedID())
	a.mode = ModeNormal
	switch {
	case errors.Is(err, tree.ErrMoveSelf):
		a.setError("Cannot move a commitment under itself")
	case errors.Is(err, tree.ErrMoveDescendant):
		a.setError("Cannot move a commitment under its own child")
	case err != nil:
		a.setError("Move failed: node no longer exists")
	default:
		a.refreshRows()
		a.setStatus("Commitment moved")
	}
}

func (a *App) applyDelete(id string) {
	removed := a.tree.Delete(id)
	a.refreshRows()
	a.mode = ModeNormal
	a.setStatus(fmt.Sprintf("Deleted %d node(s)", len(removed)))
}

func (a *App) applyFail(id string) {
	removed := a.tree.Fail(id)
	a.refreshRows()
	a.mode = ModeNormal
	a.setStatus(fmt.Sprintf("Marked failed, removed %d sub-commitment(s)", len(removed)))
}

// cancel abandons the in-flight interaction and returns to Normal.
func (a *App) cancel() {
	a.mode = ModeNormal
	a.pendingTitle = ""
	a.input.SetValue("")
	a.statusMsg = ""
}
