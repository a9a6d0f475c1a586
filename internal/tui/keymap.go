// Package tui provides the terminal user interface for the commitment tree.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Intent is a semantic user action, decoupled from the key that
// produced it. The controller dispatches on (mode, intent) only.
type Intent int

const (
	IntentNone Intent = iota
	IntentQuit
	IntentSelectUp
	IntentSelectDown

	IntentStartAdd
	IntentStartEditBody
	IntentStartEditTitle
	IntentStartMove
	IntentStartDelete
	IntentStartFail
	IntentYank

	IntentSubmit
	IntentCancel

	// IntentText is any key that should feed the active input buffer.
	IntentText
)

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// Keymap contains all key bindings for the application.
type Keymap struct {
	Up     Key
	Down   Key
	Quit   Key
	Add    Key
	Edit   Key
	Rename Key
	Move   Key
	Delete Key
	Fail   Key
	Yank   Key

	Submit Key
	Cancel Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Up:     Key{Key: "k", Help: "up"},
		Down:   Key{Key: "j", Help: "down"},
		Quit:   Key{Key: "q", Help: "quit"},
		Add:    Key{Key: "a", Help: "add"},
		Edit:   Key{Key: "e", Help: "edit body"},
		Rename: Key{Key: "r", Help: "rename"},
		Move:   Key{Key: "m", Help: "move"},
		Delete: Key{Key: "d", Help: "delete"},
		Fail:   Key{Key: "f", Help: "fail/recover"},
		Yank:   Key{Key: "y", Help: "yank"},
		Submit: Key{Key: "enter", Help: "confirm"},
		Cancel: Key{Key: "esc", Help: "cancel"},
	}
}

// IntentFor maps a key press to an Intent for the given mode. Keys with
// no meaning in the current mode yield IntentNone and are ignored by the
// controller; text-entry modes route unmatched keys to the input buffer.
func (k Keymap) IntentFor(mode Mode, msg tea.KeyMsg) Intent {
	key := msg.String()

	switch mode {
	case ModeNormal:
		switch key {
		case k.Quit.Key, "ctrl+c":
			return IntentQuit
		case k.Down.Key, "down":
			return IntentSelectDown
		case k.Up.Key, "up":
			return IntentSelectUp
		case k.Add.Key:
			return IntentStartAdd
		case k.Edit.Key:
			return IntentStartEditBody
		case k.Rename.Key:
			return IntentStartEditTitle
		case k.Move.Key:
			return IntentStartMove
		case k.Delete.Key:
			return IntentStartDelete
		case k.Fail.Key:
			return IntentStartFail
		case k.Yank.Key:
			return IntentYank
		}
		return IntentNone

	case ModeAddTitle, ModeAddBody, ModeEditBody, ModeEditTitle:
		switch key {
		case k.Cancel.Key:
			return IntentCancel
		case k.Submit.Key:
			return IntentSubmit
		case "ctrl+c":
			return IntentQuit
		}
		return IntentText

	case ModeMove:
		switch key {
		case k.Cancel.Key:
			return IntentCancel
		// 'm' again confirms the move, mirroring how the mode was entered.
		case k.Move.Key, "M", k.Submit.Key:
			return IntentSubmit
		case k.Down.Key, "down":
			return IntentSelectDown
		case k.Up.Key, "up":
			return IntentSelectUp
		case "ctrl+c":
			return IntentQuit
		}
		return IntentNone

	case ModeConfirm:
		switch key {
		case "y", "Y", k.Submit.Key:
			return IntentSubmit
		case "n", "N", k.Cancel.Key:
			return IntentCancel
		case "ctrl+c":
			return IntentQuit
		}
		return IntentNone
	}

	return IntentNone
}

// HelpItems returns key-description pairs for the help line of the given
// mode.
func (k Keymap) HelpItems(mode Mode) [][]string {
	switch mode {
	case ModeAddTitle:
		return [][]string{{"enter", "next"}, {"esc", "cancel"}}
	case ModeAddBody:
		return [][]string{{"enter", "save"}, {"esc", "cancel"}}
	case ModeEditBody, ModeEditTitle:
		return [][]string{{"enter", "save"}, {"esc", "cancel"}}
	case ModeMove:
		return [][]string{
			{k.Down.Key + "/" + k.Up.Key, "pick target"},
			{k.Move.Key, "confirm move"},
			{"esc", "cancel"},
		}
	case ModeConfirm:
		return [][]string{{"y", "confirm"}, {"n", "cancel"}}
	default:
		return [][]string{
			{k.Add.Key, k.Add.Help},
			{k.Edit.Key, k.Edit.Help},
			{k.Rename.Key, k.Rename.Help},
			{k.Move.Key, k.Move.Help},
			{k.Delete.Key, k.Delete.Help},
			{k.Fail.Key, k.Fail.Help},
			{k.Yank.Key, k.Yank.Help},
			{k.Down.Key + "/" + k.Up.Key, "navigate"},
			{k.Quit.Key, k.Quit.Help},
		}
	}
}
