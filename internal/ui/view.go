package ui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("promptline"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		label := t.FieldLabel
		if i == m.focused {
			label = t.FieldFocused
		}
		b.WriteString(label.Render(f.label))
		b.WriteString("\n")
		b.WriteString(f.input.View())
		b.WriteString("\n\n")
	}

	if m.store != nil {
		b.WriteString(t.HistoryTitle.Render("Recent"))
		b.WriteString("\n")
		if len(m.recent) == 0 {
			b.WriteString(t.HistoryEntry.Render("(empty)"))
			b.WriteString("\n")
		}
		for _, entry := range m.recent {
			line := fmt.Sprintf(
				"%s %s",
				t.HistoryTime.Render(entry.SubmittedAt.Format("15:04:05")),
				t.HistoryEntry.Render(fmt.Sprintf("%s: %s", entry.Field, entry.Value)),
			)
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(t.StatusError.Render("error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(t.StatusBar.Render(m.status))
	default:
		b.WriteString(t.StatusBar.Render("tab: next field · enter: submit · esc: quit"))
	}

	frame := t.AppFrame
	if m.width > 0 {
		frame = frame.MaxWidth(m.width)
	}
	return frame.Render(b.String())
}
