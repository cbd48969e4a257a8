package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func strPtr(value string) *string {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}

func TestApplySpecOverridesStyles(t *testing.T) {
	base := DefaultTheme()
	spec := ThemeSpec{
		Styles: StylesSpec{
			Title:        &StyleSpec{Foreground: strPtr("#222233"), Bold: boolPtr(false)},
			HistoryEntry: &StyleSpec{Foreground: strPtr("#9999aa")},
			Input: &InputSpec{
				Prompt: &StyleSpec{Foreground: strPtr("#abcdef")},
				Cursor: &StyleSpec{Reverse: boolPtr(false), Background: strPtr("#ffffff")},
			},
		},
	}

	updated, err := ApplySpec(base, spec)
	if err != nil {
		t.Fatalf("ApplySpec returned error: %v", err)
	}

	if got := updated.Title.GetForeground(); got != lipgloss.Color("#222233") {
		t.Errorf("expected title foreground #222233, got %v", got)
	}
	if updated.Title.GetBold() {
		t.Errorf("expected bold override to clear the default")
	}
	if got := updated.HistoryEntry.GetForeground(); got != lipgloss.Color("#9999aa") {
		t.Errorf("expected history entry foreground #9999aa, got %v", got)
	}
	if got := updated.InputFocused.Prompt.GetForeground(); got != lipgloss.Color("#abcdef") {
		t.Errorf("expected input prompt foreground #abcdef, got %v", got)
	}
	if updated.InputFocused.Cursor.GetReverse() {
		t.Errorf("expected cursor reverse video to be disabled")
	}
	if base.InputFocused.Cursor.GetReverse() != true {
		t.Errorf("base theme should remain unchanged")
	}
}

func TestApplySpecRejectsEmptyColour(t *testing.T) {
	spec := ThemeSpec{
		Styles: StylesSpec{
			Title: &StyleSpec{Foreground: strPtr("  ")},
		},
	}
	if _, err := ApplySpec(DefaultTheme(), spec); err == nil {
		t.Fatalf("expected empty colour value to be rejected")
	}
}

func TestApplySpecLeavesUnsetFieldsAlone(t *testing.T) {
	base := DefaultTheme()
	updated, err := ApplySpec(base, ThemeSpec{})
	if err != nil {
		t.Fatalf("ApplySpec returned error: %v", err)
	}
	if updated.Title.GetForeground() != base.Title.GetForeground() {
		t.Fatalf("expected empty spec to change nothing")
	}
	if !updated.InputFocused.Cursor.GetReverse() {
		t.Fatalf("expected default cursor to stay reverse video")
	}
}
