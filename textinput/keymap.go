package textinput

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap is the set of key bindings the input reacts to. Anything that does
// not match a binding is treated as literal input.
type KeyMap struct {
	CharacterBackward       key.Binding
	CharacterForward        key.Binding
	WordBackward            key.Binding
	WordForward             key.Binding
	LineStart               key.Binding
	LineEnd                 key.Binding
	DeleteBeforeCursor      key.Binding
	DeleteAfterCursor       key.Binding
	DeleteWordBackward      key.Binding
	DeleteWordForward       key.Binding
	DeleteCharacterBackward key.Binding
	DeleteCharacterForward  key.Binding
	Submit                  key.Binding
}

// DefaultKeyMap is the default emacs-flavoured set of bindings.
var DefaultKeyMap = KeyMap{
	CharacterBackward: key.NewBinding(
		key.WithKeys("left", "ctrl+b"),
		key.WithHelp("left", "character backward"),
	),
	CharacterForward: key.NewBinding(
		key.WithKeys("right", "ctrl+f"),
		key.WithHelp("right", "character forward"),
	),
	WordBackward: key.NewBinding(
		key.WithKeys("ctrl+left", "alt+b"),
		key.WithHelp("ctrl+left", "word backward"),
	),
	WordForward: key.NewBinding(
		key.WithKeys("ctrl+right", "alt+f"),
		key.WithHelp("ctrl+right", "word forward"),
	),
	LineStart: key.NewBinding(
		key.WithKeys("home", "ctrl+a"),
		key.WithHelp("home", "line start"),
	),
	LineEnd: key.NewBinding(
		key.WithKeys("end", "ctrl+e"),
		key.WithHelp("end", "line end"),
	),
	DeleteBeforeCursor: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "delete before cursor"),
	),
	DeleteAfterCursor: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "delete after cursor"),
	),
	DeleteWordBackward: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("ctrl+w", "delete word backward"),
	),
	DeleteWordForward: key.NewBinding(
		key.WithKeys("alt+d"),
		key.WithHelp("alt+d", "delete word forward"),
	),
	DeleteCharacterBackward: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
		key.WithHelp("backspace", "delete character backward"),
	),
	DeleteCharacterForward: key.NewBinding(
		key.WithKeys("delete", "ctrl+d"),
		key.WithHelp("delete", "delete character forward"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter", "ctrl+m"),
		key.WithHelp("enter", "submit"),
	),
}

// reservedKey reports whether the event belongs to the host rather than the
// input: focus traversal, list scrolling and the interrupt key all pass
// through untouched so the surrounding program can react to them.
func reservedKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "down", "tab", "shift+tab", "ctrl+c":
		return true
	}
	return false
}
