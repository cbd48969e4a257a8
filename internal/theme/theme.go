package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/promptline/textinput"
)

// Theme collects every style the prompt UI draws with. Input styles exist in
// focused and blurred variants; the rest applies regardless of focus.
type Theme struct {
	AppFrame     lipgloss.Style
	Title        lipgloss.Style
	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	StatusBar    lipgloss.Style
	StatusError  lipgloss.Style
	HistoryTitle lipgloss.Style
	HistoryEntry lipgloss.Style
	HistoryTime  lipgloss.Style

	InputFocused textinput.Styles
	InputBlurred textinput.Styles
}

// DefaultTheme is the builtin look; user themes override parts of it.
func DefaultTheme() Theme {
	focused, blurred := textinput.DefaultStyles()
	return Theme{
		AppFrame: lipgloss.NewStyle().Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		FieldLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FieldFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),
		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		StatusError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")),
		HistoryTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13")),
		HistoryEntry: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		HistoryTime:  lipgloss.NewStyle().Faint(true),
		InputFocused: focused,
		InputBlurred: blurred,
	}
}
