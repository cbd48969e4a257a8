// Package ui wires the input widget into a small interactive host: a few
// fields with focus cycling, submit-to-history and themed rendering. It
// doubles as the reference for embedding the widget in a larger program.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/promptline/internal/history"
	"github.com/unkn0wn-root/promptline/internal/theme"
	"github.com/unkn0wn-root/promptline/textinput"
)

const historyDisplayLimit = 8

// Options configures the host model.
type Options struct {
	Theme theme.Theme
	// KeyMap overrides the widget bindings; nil keeps the defaults.
	KeyMap *textinput.KeyMap
	// Store persists submissions; nil disables history entirely.
	Store          *history.Store
	HighlightPaste bool
	SecretMask     rune
}

type field struct {
	name  string
	label string
	input textinput.Model
}

// Model is the Bubble Tea model for the demo host.
type Model struct {
	theme   theme.Theme
	store   *history.Store
	fields  []field
	focused int
	recent  []history.Entry
	status  string
	err     error
	width   int
}

type historyMsg struct {
	entries []history.Entry
	err     error
}

type recordedMsg struct {
	err error
}

// New builds the host with a plain field, a paste-friendly field and a
// masked field, focusing the first.
func New(opts Options) Model {
	mask := opts.SecretMask
	if mask == 0 {
		mask = '*'
	}

	newInput := func(placeholder string) textinput.Model {
		in := textinput.New("")
		in.Placeholder = placeholder
		in.FocusedStyle = opts.Theme.InputFocused
		in.BlurredStyle = opts.Theme.InputBlurred
		in.HighlightPastes = opts.HighlightPaste
		if opts.KeyMap != nil {
			in.KeyMap = *opts.KeyMap
		}
		return in
	}

	comment := newInput("leave a note")
	tag := newInput("tag")
	secret := newInput("passphrase")
	// Mask failures only happen with a multi-cell rune; fall back silently.
	if err := secret.SetEchoMask(mask); err != nil {
		_ = secret.SetEchoMask('*')
	}

	m := Model{
		theme: opts.Theme,
		store: opts.Store,
		fields: []field{
			{name: "comment", label: "Comment", input: comment},
			{name: "tag", label: "Tag", input: tag},
			{name: "secret", label: "Secret", input: secret},
		},
	}
	m.focusField(0)
	return m
}

func (m *Model) focusField(idx int) {
	if len(m.fields) == 0 {
		return
	}
	idx = ((idx % len(m.fields)) + len(m.fields)) % len(m.fields)
	for i := range m.fields {
		if i == idx {
			m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
	m.focused = idx
}

// FocusedField returns the name of the field currently receiving input.
func (m Model) FocusedField() string {
	return m.fields[m.focused].name
}

// FieldValue returns the current content of a named field.
func (m Model) FieldValue(name string) string {
	for _, f := range m.fields {
		if f.name == name {
			return f.input.Value()
		}
	}
	return ""
}

// Status returns the current status line, for tests and embedding hosts.
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return m.loadHistory
}

func (m Model) loadHistory() tea.Msg {
	entries, err := m.store.Recent("", historyDisplayLimit)
	return historyMsg{entries: entries, err: err}
}

func (m Model) record(name, value string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.Append(history.Entry{Field: name, Value: value})
		return recordedMsg{err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case historyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.recent = msg.entries
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.loadHistory

	case tea.KeyMsg:
		// The widget leaves these to us.
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.focusField(m.focused + 1)
			return m, nil
		case "shift+tab":
			m.focusField(m.focused - 1)
			return m, nil
		}
		return m.updateFocused(msg)
	}
	return m, nil
}

func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.fields[m.focused]

	var submitted *string
	f.input.OnSubmit = func(v string) {
		value := v
		submitted = &value
	}
	f.input, _ = f.input.Update(msg)
	f.input.OnSubmit = nil
	m.fields[m.focused] = f

	if submitted == nil {
		return m, nil
	}
	return m.submit(f, *submitted)
}

func (m Model) submit(f field, value string) (tea.Model, tea.Cmd) {
	if value == "" {
		m.status = "nothing to submit"
		return m, nil
	}

	m.fields[m.focused].input.Reset()

	if f.input.Masked() {
		// Secrets are acknowledged but never written anywhere.
		m.status = fmt.Sprintf("%s submitted (not recorded)", f.label)
		return m, nil
	}
	if m.store == nil {
		m.status = fmt.Sprintf("%s submitted", f.label)
		return m, nil
	}
	m.status = fmt.Sprintf("%s submitted", f.label)
	return m, m.record(f.name, value)
}
