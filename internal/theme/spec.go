package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/promptline/textinput"
)

// Metadata describes a theme file for display purposes.
type Metadata struct {
	Name        string `json:"name"        toml:"name"`
	Author      string `json:"author"      toml:"author"`
	Description string `json:"description" toml:"description"`
}

// ThemeSpec is the on-disk shape of a user theme. Every field is optional;
// omitted styles inherit from the base theme.
type ThemeSpec struct {
	Metadata *Metadata  `json:"metadata" toml:"metadata"`
	Styles   StylesSpec `json:"styles"   toml:"styles"`
}

type StylesSpec struct {
	AppFrame     *StyleSpec `json:"app_frame"     toml:"app_frame"`
	Title        *StyleSpec `json:"title"         toml:"title"`
	FieldLabel   *StyleSpec `json:"field_label"   toml:"field_label"`
	FieldFocused *StyleSpec `json:"field_focused" toml:"field_focused"`
	StatusBar    *StyleSpec `json:"status_bar"    toml:"status_bar"`
	StatusError  *StyleSpec `json:"status_error"  toml:"status_error"`
	HistoryTitle *StyleSpec `json:"history_title" toml:"history_title"`
	HistoryEntry *StyleSpec `json:"history_entry" toml:"history_entry"`
	HistoryTime  *StyleSpec `json:"history_time"  toml:"history_time"`

	Input        *InputSpec `json:"input"         toml:"input"`
	InputBlurred *InputSpec `json:"input_blurred" toml:"input_blurred"`
}

// InputSpec overrides the widget styles for one focus state.
type InputSpec struct {
	Prompt      *StyleSpec `json:"prompt"      toml:"prompt"`
	Text        *StyleSpec `json:"text"        toml:"text"`
	Placeholder *StyleSpec `json:"placeholder" toml:"placeholder"`
	Cursor      *StyleSpec `json:"cursor"      toml:"cursor"`
}

type StyleSpec struct {
	Foreground *string `json:"foreground" toml:"foreground"`
	Background *string `json:"background" toml:"background"`
	Bold       *bool   `json:"bold"       toml:"bold"`
	Italic     *bool   `json:"italic"     toml:"italic"`
	Underline  *bool   `json:"underline"  toml:"underline"`
	Faint      *bool   `json:"faint"      toml:"faint"`
	Reverse    *bool   `json:"reverse"    toml:"reverse"`
}

// ApplySpec layers a parsed theme file over base and returns the result.
func ApplySpec(base Theme, spec ThemeSpec) (Theme, error) {
	out := base

	apply := func(name string, target *lipgloss.Style, override *StyleSpec) error {
		if override == nil {
			return nil
		}
		next, err := override.apply(*target)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*target = next
		return nil
	}

	fields := []struct {
		name   string
		target *lipgloss.Style
		spec   *StyleSpec
	}{
		{"app_frame", &out.AppFrame, spec.Styles.AppFrame},
		{"title", &out.Title, spec.Styles.Title},
		{"field_label", &out.FieldLabel, spec.Styles.FieldLabel},
		{"field_focused", &out.FieldFocused, spec.Styles.FieldFocused},
		{"status_bar", &out.StatusBar, spec.Styles.StatusBar},
		{"status_error", &out.StatusError, spec.Styles.StatusError},
		{"history_title", &out.HistoryTitle, spec.Styles.HistoryTitle},
		{"history_entry", &out.HistoryEntry, spec.Styles.HistoryEntry},
		{"history_time", &out.HistoryTime, spec.Styles.HistoryTime},
	}
	for _, f := range fields {
		if err := apply(f.name, f.target, f.spec); err != nil {
			return Theme{}, err
		}
	}

	if err := applyInput("input", &out.InputFocused, spec.Styles.Input); err != nil {
		return Theme{}, err
	}
	if err := applyInput("input_blurred", &out.InputBlurred, spec.Styles.InputBlurred); err != nil {
		return Theme{}, err
	}
	return out, nil
}

func applyInput(name string, dst *textinput.Styles, spec *InputSpec) error {
	if spec == nil {
		return nil
	}
	parts := []struct {
		name   string
		target *lipgloss.Style
		spec   *StyleSpec
	}{
		{"prompt", &dst.Prompt, spec.Prompt},
		{"text", &dst.Text, spec.Text},
		{"placeholder", &dst.Placeholder, spec.Placeholder},
		{"cursor", &dst.Cursor, spec.Cursor},
	}
	for _, p := range parts {
		if p.spec == nil {
			continue
		}
		next, err := p.spec.apply(*p.target)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", name, p.name, err)
		}
		*p.target = next
	}
	return nil
}

func (s *StyleSpec) apply(base lipgloss.Style) (lipgloss.Style, error) {
	if s == nil {
		return base, nil
	}
	current := base
	if s.Foreground != nil {
		color, err := toColor("foreground", *s.Foreground)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.Foreground(color)
	}
	if s.Background != nil {
		color, err := toColor("background", *s.Background)
		if err != nil {
			return lipgloss.Style{}, err
		}
		current = current.Background(color)
	}
	if s.Bold != nil {
		current = current.Bold(*s.Bold)
	}
	if s.Italic != nil {
		current = current.Italic(*s.Italic)
	}
	if s.Underline != nil {
		current = current.Underline(*s.Underline)
	}
	if s.Faint != nil {
		current = current.Faint(*s.Faint)
	}
	if s.Reverse != nil {
		current = current.Reverse(*s.Reverse)
	}
	return current, nil
}

func toColor(field string, value string) (lipgloss.Color, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s: colour value may not be empty", field)
	}
	return lipgloss.Color(trimmed), nil
}
