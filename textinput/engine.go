package textinput

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/runeutil"
	tea "github.com/charmbracelet/bubbletea"
)

// Cursor is the insertion point within a line. Pos is a rune offset in
// [0, len(line)]; LastInsert is the rune length of the most recent
// multi-rune insertion and exists only so a paste can be highlighted. It is
// zero after single-rune input and after every non-insert operation.
type Cursor struct {
	Pos        int
	LastInsert int
}

func (c Cursor) clampTo(limit int) Cursor {
	c.Pos = clamp(c.Pos, 0, limit)
	return c
}

// Result is the outcome of running one key event through the edit engine.
//
// Submitted short-circuits everything else: the line and cursor come back
// untouched so the host receives the pre-event value verbatim. Changed is
// set only when the returned value differs from the input value.
type Result struct {
	Value     string
	Cursor    Cursor
	Changed   bool
	Submitted bool
}

// Pasted clipboard content may carry newlines and tabs; collapse them to
// spaces so the line stays a line.
var sanitizer = runeutil.NewSanitizer(
	runeutil.ReplaceNewlines(" "),
	runeutil.ReplaceTabs(" "),
)

// Apply maps one key event onto the line and returns the next line and
// cursor. The engine never retains the line between calls, so hosts that
// own their content can feed it in on every event and decide themselves
// whether to accept the result.
//
// A stale cursor (for example after the host truncated the value) is
// silently clamped rather than reported: odd terminal input must never
// crash the program, and unrecognised key chords fall through to literal
// insertion of their payload for the same reason.
//
// When showCursor is false the line behaves like an append-only prompt:
// motions are no-ops, while deletions and insertions still apply at the
// (necessarily end-of-line) cursor. Deleting to line start or end works
// regardless, since neither needs a visible cursor to make sense.
func Apply(value string, cur Cursor, msg tea.KeyMsg, km KeyMap, showCursor bool) Result {
	runes := []rune(value)
	cur = cur.clampTo(len(runes))

	if key.Matches(msg, km.Submit) {
		return Result{Value: value, Cursor: cur, Submitted: true}
	}
	if reservedKey(msg) {
		return Result{Value: value, Cursor: cur}
	}

	pos := cur.Pos
	next := Cursor{Pos: pos}
	out := runes

	switch {
	case key.Matches(msg, km.LineStart):
		if showCursor {
			next.Pos = 0
		}
	case key.Matches(msg, km.LineEnd):
		if showCursor {
			next.Pos = len(runes)
		}
	case key.Matches(msg, km.WordBackward):
		if showCursor {
			next.Pos = prevBoundary(runes, pos)
		}
	case key.Matches(msg, km.WordForward):
		if showCursor {
			next.Pos = nextBoundary(runes, pos)
		}
	case key.Matches(msg, km.CharacterBackward):
		if showCursor && pos > 0 {
			next.Pos = pos - 1
		}
	case key.Matches(msg, km.CharacterForward):
		if showCursor && pos < len(runes) {
			next.Pos = pos + 1
		}
	case key.Matches(msg, km.DeleteBeforeCursor):
		out = runes[pos:]
		next.Pos = 0
	case key.Matches(msg, km.DeleteAfterCursor):
		out = runes[:pos]
	case key.Matches(msg, km.DeleteWordBackward):
		prev := prevBoundary(runes, pos)
		out = spliceRunes(runes, prev, pos)
		next.Pos = prev
	case key.Matches(msg, km.DeleteWordForward):
		out = spliceRunes(runes, pos, nextBoundary(runes, pos))
	case key.Matches(msg, km.DeleteCharacterBackward):
		if pos > 0 {
			out = spliceRunes(runes, pos-1, pos)
			next.Pos = pos - 1
		}
	case key.Matches(msg, km.DeleteCharacterForward):
		if pos < len(runes) {
			out = spliceRunes(runes, pos, pos+1)
		}
	default:
		ins := sanitizer.Sanitize(collapseCRLF(msg.Runes))
		if len(ins) == 0 {
			break
		}
		out = make([]rune, 0, len(runes)+len(ins))
		out = append(out, runes[:pos]...)
		out = append(out, ins...)
		out = append(out, runes[pos:]...)
		next.Pos = pos + len(ins)
		if len(ins) > 1 {
			next.LastInsert = len(ins)
		}
	}

	next = next.clampTo(len(out))
	value2 := string(out)
	return Result{Value: value2, Cursor: next, Changed: value2 != value}
}

// collapseCRLF folds each \r\n pair into one rune so the sanitizer turns
// the pair into a single space instead of two.
func collapseCRLF(in []rune) []rune {
	out := make([]rune, 0, len(in))
	for i := 0; i < len(in); i++ {
		if in[i] == '\r' && i+1 < len(in) && in[i+1] == '\n' {
			continue
		}
		out = append(out, in[i])
	}
	return out
}

// spliceRunes returns line with the range [from, to) removed, leaving the
// input slice untouched.
func spliceRunes(line []rune, from, to int) []rune {
	out := make([]rune, 0, len(line)-(to-from))
	out = append(out, line[:from]...)
	return append(out, line[to:]...)
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
