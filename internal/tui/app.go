package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focustree/internal/config"
	"focustree/internal/tree"
)

// Mode is the controller's current interaction state. Every key press is
// interpreted relative to it; the tree is only ever mutated from a
// Submit in the mode that staged the mutation, so the view never
// observes a half-applied change.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTitle
	ModeAddBody
	ModeEditBody
	ModeEditTitle
	ModeMove
	ModeConfirm
)

type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmFail
)

// pendingAction is the destructive operation staged behind the y/n
// dialog.
type pendingAction struct {
	kind confirmKind
	id   string
}

// App is the main Bubble Tea model for the application.
type App struct {
	tree   *tree.Tree
	config *config.Config

	mode     Mode
	selected int
	rows     []tree.Row // cached projection of tree.Flatten()

	// Text-entry state. input backs whichever field is being edited;
	// pendingTitle stashes the title between the two add stages.
	input        textinput.Model
	pendingTitle string

	// targetID is the node an edit or move applies to. It is captured on
	// mode entry so the operation survives selection changes (move mode
	// reuses the selection to pick the target parent).
	targetID string
	pending  pendingAction

	statusMsg string
	statusErr bool

	width  int
	height int

	keymap Keymap
}

// New creates the application model around a loaded tree.
func New(t *tree.Tree, cfg *config.Config) *App {
	input := textinput.New()
	input.CharLimit = 500
	input.Width = 50

	a := &App{
		tree:   t,
		config: cfg,
		input:  input,
		keymap: DefaultKeymap(),
	}
	a.refreshRows()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Tree exposes the model's tree so the host can save it on exit.
func (a *App) Tree() *tree.Tree {
	return a.tree
}

// refreshRows recomputes the display projection and clamps the selection
// into the new list, falling back to the last valid index when the list
// shrank.
func (a *App) refreshRows() {
	a.rows = a.tree.Flatten()
	if len(a.rows) == 0 {
		a.selected = 0
	} else if a.selected >= len(a.rows) {
		a.selected = len(a.rows) - 1
	}
}

// selectedNode returns the node under the cursor, or nil when the tree
// is empty.
func (a *App) selectedNode() *tree.Node {
	if a.selected < 0 || a.selected >= len(a.rows) {
		return nil
	}
	return a.rows[a.selected].Node
}

// selectedID returns the id under the cursor, or "" when the tree is
// empty. An empty string doubles as the root sentinel, so adding or
// moving with nothing selected targets the top level.
func (a *App) selectedID() string {
	if n := a.selectedNode(); n != nil {
		return n.ID
	}
	return ""
}

func (a *App) setStatus(msg string) {
	a.statusMsg = msg
	a.statusErr = false
}

func (a *App) setError(msg string) {
	a.statusMsg = msg
	a.statusErr = true
}
