// Package textinput provides a single-line input component for Bubble Tea
// applications. The edit engine (cursor arithmetic, word motions, word-wise
// and line-wise deletion) is exposed on its own through Apply, so hosts that
// own their line content can drive it as a controlled component. Model wraps
// the engine with focus handling, masked echo, placeholder display and
// styling for the common uncontrolled case.
//
// Word-forward deletion removes text up to the next word start rather than
// the end of the current word. That is intentional and differs from most
// shells; it pairs with the word motions, which land on word starts too.
package textinput

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Styles for one focus state of the input. The cursor cell and the paste
// highlight are drawn with the Cursor style, reverse video by default.
type Styles struct {
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
}

// DefaultStyles returns the default styles for the focused and blurred
// states.
func DefaultStyles() (Styles, Styles) {
	focused := Styles{
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
	}
	blurred := Styles{
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "7"}),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Cursor:      lipgloss.NewStyle(),
	}
	return focused, blurred
}

// Model is the Bubble Tea model for the input.
type Model struct {
	// Prompt is printed before the content.
	Prompt string

	// Placeholder is shown while the input is empty.
	Placeholder string

	// ShowCursor enables cursor display and navigation. When disabled the
	// input behaves like an append-only prompt: motions do nothing and
	// edits happen at the end of the line.
	ShowCursor bool

	// HighlightPastes draws the most recent multi-rune insertion in the
	// cursor style so a paste is visible at a glance.
	HighlightPastes bool

	// KeyMap encodes the bindings recognised by the input.
	KeyMap KeyMap

	// OnChange is called with the new value whenever the content actually
	// changed. Hosts running the input as a controlled component can
	// override the value afterwards with SetValue.
	OnChange func(value string)

	// OnSubmit is called with the current value when the submit key is
	// pressed. Submission never modifies the content or the cursor.
	OnSubmit func(value string)

	FocusedStyle Styles
	BlurredStyle Styles
	// style is the active set, switched on focus changes.
	style *Styles

	value    string
	cursor   Cursor
	focus    bool
	echoMask rune
}

// New creates an input with default settings and the cursor at the end of
// the initial value.
func New(initial string) Model {
	focusedStyle, blurredStyle := DefaultStyles()
	return Model{
		Prompt:       "> ",
		ShowCursor:   true,
		KeyMap:       DefaultKeyMap,
		FocusedStyle: focusedStyle,
		BlurredStyle: blurredStyle,
		style:        &blurredStyle,
		value:        initial,
		cursor:       Cursor{Pos: len([]rune(initial))},
	}
}

// Value returns the current content.
func (m Model) Value() string {
	return m.value
}

// SetValue replaces the content. If the new value is shorter than the
// current cursor position and the cursor is active, the cursor snaps to the
// new end; otherwise the stale position is kept and clamped lazily on the
// next event.
func (m *Model) SetValue(s string) {
	m.value = s
	if m.focus && m.ShowCursor {
		if n := len([]rune(s)); m.cursor.Pos > n {
			m.cursor = Cursor{Pos: n}
		}
	}
}

// Cursor returns the current cursor state.
func (m Model) Cursor() Cursor {
	return m.cursor
}

// Reset clears the content and moves the cursor to the start.
func (m *Model) Reset() {
	m.value = ""
	m.cursor = Cursor{}
}

// Focused returns the focus state of the input.
func (m Model) Focused() bool {
	return m.focus
}

// Focus lets the input receive keyboard events and shows the cursor.
func (m *Model) Focus() {
	m.focus = true
	m.style = &m.FocusedStyle
}

// Blur stops the input from receiving keyboard events.
func (m *Model) Blur() {
	m.focus = false
	m.style = &m.BlurredStyle
}

// SetEchoMask sets the rune every content rune is rendered as, for
// password-style fields. Only the rendering is masked; Value still returns
// the real content. The mask must be exactly one cell wide so the rendered
// width keeps matching the content length. A zero rune disables masking.
func (m *Model) SetEchoMask(r rune) error {
	if r != 0 && rw.RuneWidth(r) != 1 {
		return fmt.Errorf("textinput: mask %q is not one cell wide", r)
	}
	m.echoMask = r
	return nil
}

// EchoMask returns the active mask rune, or zero when echo is plain.
func (m Model) EchoMask() rune {
	return m.echoMask
}

// Masked reports whether the input obscures its content.
func (m Model) Masked() bool {
	return m.echoMask != 0
}

// Update handles one incoming event. Key events are only consumed while the
// input is focused; host-reserved keys (tab, shift+tab, up, down, ctrl+c)
// pass through without any effect.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focus {
		return m, nil
	}

	res := Apply(m.value, m.cursor, keyMsg, m.KeyMap, m.ShowCursor)
	if res.Submitted {
		if m.OnSubmit != nil {
			m.OnSubmit(m.value)
		}
		return m, nil
	}

	m.cursor = res.Cursor
	if res.Changed {
		m.value = res.Value
		if m.OnChange != nil {
			m.OnChange(res.Value)
		}
	}
	return m, nil
}

// View renders the prompt and content in the current state.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.style.Prompt.Render(m.Prompt))
	if m.value == "" {
		b.WriteString(m.placeholderView())
		return b.String()
	}

	display := []rune(m.value)
	if m.echoMask != 0 {
		display = make([]rune, len([]rune(m.value)))
		for i := range display {
			display[i] = m.echoMask
		}
	}

	cursorActive := m.focus && m.ShowCursor
	highlightFrom, highlightTo := -1, -1
	if cursorActive && m.HighlightPastes && m.cursor.LastInsert > 0 {
		highlightFrom = m.cursor.Pos - m.cursor.LastInsert
		highlightTo = m.cursor.Pos
	}

	for i, r := range display {
		ch := string(r)
		switch {
		case highlightFrom >= 0 && i >= highlightFrom && i <= highlightTo:
			b.WriteString(m.style.Cursor.Render(ch))
		case cursorActive && i == m.cursor.Pos:
			b.WriteString(m.style.Cursor.Render(ch))
		default:
			b.WriteString(m.style.Text.Render(ch))
		}
	}
	// Cursor past the last rune renders as a block on a blank cell.
	if cursorActive && m.cursor.Pos >= len(display) {
		b.WriteString(m.style.Cursor.Render(" "))
	}
	return b.String()
}

func (m Model) placeholderView() string {
	cursorActive := m.focus && m.ShowCursor
	if m.Placeholder == "" {
		if cursorActive {
			return m.style.Cursor.Render(" ")
		}
		return ""
	}
	if !cursorActive {
		return m.style.Placeholder.Render(m.Placeholder)
	}
	ch, rest, _, _ := uniseg.FirstGraphemeClusterInString(m.Placeholder, 0)
	return m.style.Cursor.Render(ch) + m.style.Placeholder.Render(rest)
}

// Width reports the rendered cell width of the input, including the prompt
// and, when the cursor sits past the end, its trailing blank cell.
func (m Model) Width() int {
	w := uniseg.StringWidth(m.Prompt)
	n := len([]rune(m.value))
	if m.echoMask != 0 {
		w += n
	} else {
		w += uniseg.StringWidth(m.value)
	}
	if m.value == "" {
		w += uniseg.StringWidth(m.Placeholder)
	}
	if m.focus && m.ShowCursor && m.cursor.Pos >= n {
		if m.value != "" || m.Placeholder == "" {
			w++
		}
	}
	return w
}
