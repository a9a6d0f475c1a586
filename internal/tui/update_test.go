package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"focustree/internal/config"
	"focustree/internal/tree"
)

func newTestApp(t *tree.Tree) *App {
	a := New(t, config.DefaultConfig())
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a
}

// press sends a single key to the app. Named keys ("enter", "esc",
// "down", "up") map to their key types; everything else is sent as runes.
func press(a *App, key string) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	a.Update(msg)
}

// typeText feeds a string rune by rune, as key presses.
func typeText(a *App, s string) {
	for _, r := range s {
		press(a, string(r))
	}
}

func TestAddFlowCreatesRoot(t *testing.T) {
	a := newTestApp(tree.New())

	press(a, "a")
	if a.mode != ModeAddTitle {
		t.Fatalf("mode = %v after 'a', want ModeAddTitle", a.mode)
	}
	typeText(a, "Read daily")
	press(a, "enter")
	if a.mode != ModeAddBody {
		t.Fatalf("mode = %v after title submit, want ModeAddBody", a.mode)
	}
	typeText(a, "30 pages")
	press(a, "enter")

	if a.mode != ModeNormal {
		t.Errorf("mode = %v after body submit, want ModeNormal", a.mode)
	}
	if a.tree.Len() != 1 {
		t.Fatalf("tree has %d nodes, want 1", a.tree.Len())
	}
	n := a.rows[0].Node
	if n.Title != "Read daily" || n.Body != "30 pages" {
		t.Errorf("node = %q/%q, want the typed title and body", n.Title, n.Body)
	}
	if !n.IsRoot() {
		t.Error("node added with empty selection should be a root")
	}
}

func TestAddUnderSelection(t *testing.T) {
	tr := tree.New()
	root := tr.Add("Root", "", "")
	a := newTestApp(tr)

	press(a, "a")
	typeText(a, "Child")
	press(a, "enter")
	press(a, "enter") // empty body is fine

	kids := a.tree.Children(root)
	if len(kids) != 1 {
		t.Fatalf("root has %d children, want 1", len(kids))
	}
	n, _ := a.tree.Get(kids[0])
	if n.Title != "Child" {
		t.Errorf("child title = %q", n.Title)
	}
}

func TestEmptyTitleIsRejected(t *testing.T) {
	a := newTestApp(tree.New())

	press(a, "a")
	press(a, "enter") // empty title
	if a.mode != ModeAddTitle {
		t.Errorf("mode = %v, want to stay in ModeAddTitle on empty title", a.mode)
	}
	if a.statusMsg == "" || !a.statusErr {
		t.Error("expected a user-facing rejection message")
	}

	press(a, "esc")
	if a.mode != ModeNormal {
		t.Errorf("mode = %v after cancel, want ModeNormal", a.mode)
	}
	if a.tree.Len() != 0 {
		t.Errorf("cancel still created %d node(s)", a.tree.Len())
	}
}

func TestEditBodyPreloadsAndSaves(t *testing.T) {
	tr := tree.New()
	tr.Add("A", "old body", "")
	a := newTestApp(tr)

	press(a, "e")
	if a.mode != ModeEditBody {
		t.Fatalf("mode = %v, want ModeEditBody", a.mode)
	}
	if a.input.Value() != "old body" {
		t.Errorf("buffer = %q, want preloaded body", a.input.Value())
	}
	typeText(a, "!")
	press(a, "enter")

	n := a.rows[0].Node
	if n.Body != "old body!" {
		t.Errorf("body = %q, want %q", n.Body, "old body!")
	}
	if a.mode != ModeNormal {
		t.Errorf("mode = %v, want ModeNormal", a.mode)
	}
}

func TestEditTitlePreloadsAndSaves(t *testing.T) {
	tr := tree.New()
	tr.Add("Old", "", "")
	a := newTestApp(tr)

	press(a, "r")
	if a.mode != ModeEditTitle {
		t.Fatalf("mode = %v, want ModeEditTitle", a.mode)
	}
	if a.input.Value() != "Old" {
		t.Errorf("buffer = %q, want preloaded title", a.input.Value())
	}
	press(a, "backspace")
	press(a, "backspace")
	press(a, "backspace")
	typeText(a, "New")
	press(a, "enter")

	if got := a.rows[0].Node.Title; got != "New" {
		t.Errorf("title = %q, want %q", got, "New")
	}
}

func TestEditOnEmptyTreeIsIgnored(t *testing.T) {
	a := newTestApp(tree.New())
	press(a, "e")
	if a.mode != ModeNormal {
		t.Errorf("edit with nothing selected entered mode %v", a.mode)
	}
	press(a, "r")
	press(a, "m")
	press(a, "d")
	press(a, "f")
	if a.mode != ModeNormal {
		t.Errorf("operations on an empty tree must all be ignored, mode = %v", a.mode)
	}
}

func TestMoveSuccess(t *testing.T) {
	tr := tree.New()
	tr.Add("R1", "", "")
	r2 := tr.Add("R2", "", "")
	a := newTestApp(tr)

	// Cursor on R1; start move, pick R2, confirm with 'm'.
	press(a, "m")
	if a.mode != ModeMove {
		t.Fatalf("mode = %v, want ModeMove", a.mode)
	}
	press(a, "j")
	press(a, "m")

	if a.mode != ModeNormal {
		t.Errorf("mode = %v after move, want ModeNormal", a.mode)
	}
	kids := a.tree.Children(r2)
	if len(kids) != 1 {
		t.Fatalf("target parent has %d children, want 1", len(kids))
	}
}

func TestMoveUnderDescendantIsRejected(t *testing.T) {
	// Scenario: root R, child A, grandchild B under A; moving A under B
	// must be rejected with the tree unchanged.
	tr := tree.New()
	r := tr.Add("R", "", "")
	aID := tr.Add("A", "", r)
	tr.Add("B", "", aID)
	a := newTestApp(tr)

	press(a, "j") // select A
	press(a, "m")
	press(a, "j") // select B
	press(a, "m")

	if a.mode != ModeNormal {
		t.Errorf("mode = %v after rejected move, want ModeNormal", a.mode)
	}
	if !a.statusErr || !strings.Contains(a.statusMsg, "Cannot move") {
		t.Errorf("expected a rejection message, got %q", a.statusMsg)
	}
	n, _ := a.tree.Get(aID)
	if n.ParentID != r {
		t.Errorf("tree mutated by rejected move: parent = %q", n.ParentID)
	}
}

func TestMoveUnderSelfIsRejected(t *testing.T) {
	tr := tree.New()
	id := tr.Add("A", "", "")
	a := newTestApp(tr)

	press(a, "m")
	press(a, "m") // target is still the node itself

	if !a.statusErr {
		t.Error("expected rejection message for self move")
	}
	n, _ := a.tree.Get(id)
	if !n.IsRoot() {
		t.Error("tree mutated by rejected self move")
	}
}

func TestDeleteConfirmAndCancel(t *testing.T) {
	tr := tree.New()
	root := tr.Add("R", "", "")
	tr.Add("A", "", root)
	a := newTestApp(tr)

	// Cancelled delete leaves everything in place.
	press(a, "d")
	if a.mode != ModeConfirm {
		t.Fatalf("mode = %v, want ModeConfirm", a.mode)
	}
	press(a, "n")
	if a.mode != ModeNormal || a.tree.Len() != 2 {
		t.Errorf("cancelled delete mutated the tree (len %d)", a.tree.Len())
	}

	// Confirmed delete cascades.
	press(a, "d")
	press(a, "y")
	if a.tree.Len() != 0 {
		t.Errorf("tree has %d nodes after confirmed delete of root, want 0", a.tree.Len())
	}
	if !strings.Contains(a.statusMsg, "2") {
		t.Errorf("status %q should report the removed count", a.statusMsg)
	}
}

func TestSelectionClampsAfterDelete(t *testing.T) {
	// Display list of length 3, selection on the last entry; deleting it
	// must clamp the selection to the new last index.
	tr := tree.New()
	tr.Add("A", "", "")
	tr.Add("B", "", "")
	tr.Add("C", "", "")
	a := newTestApp(tr)

	press(a, "j")
	press(a, "j")
	if a.selected != 2 {
		t.Fatalf("selected = %d, want 2", a.selected)
	}
	press(a, "d")
	press(a, "y")

	if a.selected != 1 {
		t.Errorf("selected = %d after deleting last row, want 1", a.selected)
	}
	if len(a.rows) != 2 {
		t.Errorf("rows = %d, want 2", len(a.rows))
	}
}

func TestSelectionClampsAtEdges(t *testing.T) {
	tr := tree.New()
	tr.Add("A", "", "")
	tr.Add("B", "", "")
	a := newTestApp(tr)

	press(a, "k")
	if a.selected != 0 {
		t.Errorf("selected = %d, up at top should stay 0", a.selected)
	}
	press(a, "j")
	press(a, "j")
	press(a, "j")
	if a.selected != 1 {
		t.Errorf("selected = %d, down at bottom should stay at last", a.selected)
	}
}

func TestFailConfirmKeepsNodeRemovesChildren(t *testing.T) {
	tr := tree.New()
	r := tr.Add("R", "", "")
	aID := tr.Add("A", "", r)
	tr.Add("C", "", aID)
	a := newTestApp(tr)

	press(a, "j") // select A
	press(a, "f")
	if a.mode != ModeConfirm {
		t.Fatalf("mode = %v, want ModeConfirm", a.mode)
	}
	press(a, "y")

	n, ok := a.tree.Get(aID)
	if !ok {
		t.Fatal("failed node must survive")
	}
	if n.Status != tree.StatusFailed {
		t.Errorf("status = %q, want failed", n.Status)
	}
	if a.tree.Len() != 2 {
		t.Errorf("tree has %d nodes, want 2 (R and failed A)", a.tree.Len())
	}
}

func TestFailOnFailedNodeRecovers(t *testing.T) {
	tr := tree.New()
	id := tr.Add("A", "", "")
	tr.Fail(id)
	a := newTestApp(tr)

	press(a, "f")
	if a.mode != ModeNormal {
		t.Errorf("recover should not open a confirm dialog, mode = %v", a.mode)
	}
	n, _ := a.tree.Get(id)
	if n.Status != tree.StatusActive {
		t.Errorf("status = %q after recover, want active", n.Status)
	}
}

func TestConfirmDestructiveOffSkipsDialog(t *testing.T) {
	tr := tree.New()
	tr.Add("A", "", "")
	cfg := config.DefaultConfig()
	cfg.UI.ConfirmDestructive = false
	a := New(tr, cfg)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	press(a, "d")
	if a.mode != ModeNormal {
		t.Errorf("mode = %v, want immediate apply with confirmation off", a.mode)
	}
	if a.tree.Len() != 0 {
		t.Errorf("tree has %d nodes, want 0", a.tree.Len())
	}
}

func TestUnmappedKeysAreIgnored(t *testing.T) {
	tr := tree.New()
	tr.Add("A", "", "")
	a := newTestApp(tr)

	press(a, "z")
	press(a, "enter") // Submit has no meaning in Normal
	if a.mode != ModeNormal || a.tree.Len() != 1 || a.selected != 0 {
		t.Error("unmapped keys must have no effect in Normal mode")
	}

	press(a, "d")
	press(a, "z") // not y/n
	if a.mode != ModeConfirm {
		t.Errorf("unmapped key left confirm mode, mode = %v", a.mode)
	}
	press(a, "esc")
}

func TestCancelDiscardsPendingAction(t *testing.T) {
	tr := tree.New()
	tr.Add("A", "old", "")
	a := newTestApp(tr)

	press(a, "e")
	typeText(a, " changed")
	press(a, "esc")

	n := a.rows[0].Node
	if n.Body != "old" {
		t.Errorf("cancel wrote the buffer: body = %q", n.Body)
	}
	if a.input.Value() != "" {
		t.Errorf("buffer not cleared on cancel: %q", a.input.Value())
	}
}
