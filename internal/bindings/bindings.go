// Package bindings resolves user-remappable shortcuts for the input widget.
// A bindings.toml or bindings.json in the config directory overrides the
// defaults per action; the resolved map converts into a textinput.KeyMap.
package bindings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/unkn0wn-root/promptline/textinput"
)

// Format identifies the serialization format for shortcut configs.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Source describes where the bindings config was loaded from.
type Source struct {
	Path   string
	Format Format
}

// ActionID uniquely identifies a shortcut action.
type ActionID string

const (
	ActionCharacterBackward ActionID = "character_backward"
	ActionCharacterForward  ActionID = "character_forward"
	ActionWordBackward      ActionID = "word_backward"
	ActionWordForward       ActionID = "word_forward"
	ActionLineStart         ActionID = "line_start"
	ActionLineEnd           ActionID = "line_end"
	ActionKillToStart       ActionID = "kill_to_start"
	ActionKillToEnd         ActionID = "kill_to_end"
	ActionKillWordBackward  ActionID = "kill_word_backward"
	ActionKillWordForward   ActionID = "kill_word_forward"
	ActionDeleteBackward    ActionID = "delete_backward"
	ActionDeleteForward     ActionID = "delete_forward"
	ActionSubmit            ActionID = "submit"
)

type definition struct {
	id       ActionID
	defaults []string
	help     string
}

var definitions = []definition{
	{ActionCharacterBackward, []string{"left", "ctrl+b"}, "character backward"},
	{ActionCharacterForward, []string{"right", "ctrl+f"}, "character forward"},
	{ActionWordBackward, []string{"ctrl+left", "alt+b"}, "word backward"},
	{ActionWordForward, []string{"ctrl+right", "alt+f"}, "word forward"},
	{ActionLineStart, []string{"home", "ctrl+a"}, "line start"},
	{ActionLineEnd, []string{"end", "ctrl+e"}, "line end"},
	{ActionKillToStart, []string{"ctrl+u"}, "delete before cursor"},
	{ActionKillToEnd, []string{"ctrl+k"}, "delete after cursor"},
	{ActionKillWordBackward, []string{"ctrl+w"}, "delete word backward"},
	{ActionKillWordForward, []string{"alt+d"}, "delete word forward"},
	{ActionDeleteBackward, []string{"backspace", "ctrl+h"}, "delete character backward"},
	{ActionDeleteForward, []string{"delete", "ctrl+d"}, "delete character forward"},
	{ActionSubmit, []string{"enter", "ctrl+m"}, "submit"},
}

var definitionLookup = func() map[ActionID]definition {
	lookup := make(map[ActionID]definition, len(definitions))
	for _, def := range definitions {
		lookup[def.id] = def
	}
	return lookup
}()

// Keys the widget deliberately leaves to the host program; binding an
// action to one of these would make focus traversal or interrupt handling
// unreachable.
var reservedKeys = map[string]struct{}{
	"up":        {},
	"down":      {},
	"tab":       {},
	"shift+tab": {},
	"ctrl+c":    {},
}

// Map stores the resolved key list per action.
type Map struct {
	byAction map[ActionID][]string
	byKey    map[string]ActionID
}

// Load attempts to read bindings from bindings.toml/json in dir. Missing
// files fall back to defaults.
func Load(dir string) (*Map, Source, error) {
	candidates := []Source{
		{Path: filepath.Join(dir, "bindings.toml"), Format: FormatTOML},
		{Path: filepath.Join(dir, "bindings.json"), Format: FormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				fmt.Errorf("read bindings %q: %w", candidate.Path, err),
			)
			continue
		}

		overrides, err := parseConfig(data, candidate.Format)
		if err != nil {
			return nil, Source{}, fmt.Errorf("parse bindings %q: %w", candidate.Path, err)
		}
		built, err := buildMap(overrides)
		if err != nil {
			return nil, Source{}, fmt.Errorf("apply bindings %q: %w", candidate.Path, err)
		}
		return built, candidate, nil
	}

	if accumulated != nil {
		return nil, Source{}, accumulated
	}

	built, err := buildMap(nil)
	if err != nil {
		return nil, Source{}, err
	}
	return built, Source{Path: candidates[0].Path, Format: FormatTOML}, nil
}

// DefaultMap builds the built-in bindings without consulting disk.
func DefaultMap() *Map {
	m, err := buildMap(nil)
	if err != nil {
		panic(err)
	}
	return m
}

// Keys returns the key list bound to an action.
func (m *Map) Keys(action ActionID) []string {
	if m == nil {
		return nil
	}
	keys := m.byAction[action]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Lookup returns the action a key resolves to, if any.
func (m *Map) Lookup(keyName string) (ActionID, bool) {
	if m == nil {
		return "", false
	}
	action, ok := m.byKey[normalizeLookup(keyName)]
	return action, ok
}

// KeyMap converts the resolved bindings into the widget key map.
func (m *Map) KeyMap() textinput.KeyMap {
	binding := func(action ActionID) key.Binding {
		keys := m.byAction[action]
		help := definitionLookup[action].help
		hint := ""
		if len(keys) > 0 {
			hint = keys[0]
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(hint, help))
	}
	return textinput.KeyMap{
		CharacterBackward:       binding(ActionCharacterBackward),
		CharacterForward:        binding(ActionCharacterForward),
		WordBackward:            binding(ActionWordBackward),
		WordForward:             binding(ActionWordForward),
		LineStart:               binding(ActionLineStart),
		LineEnd:                 binding(ActionLineEnd),
		DeleteBeforeCursor:      binding(ActionKillToStart),
		DeleteAfterCursor:       binding(ActionKillToEnd),
		DeleteWordBackward:      binding(ActionKillWordBackward),
		DeleteWordForward:       binding(ActionKillWordForward),
		DeleteCharacterBackward: binding(ActionDeleteBackward),
		DeleteCharacterForward:  binding(ActionDeleteForward),
		Submit:                  binding(ActionSubmit),
	}
}

// KnownActions returns the sorted list of action identifiers.
func KnownActions() []ActionID {
	ids := make([]ActionID, 0, len(definitions))
	for _, def := range definitions {
		ids = append(ids, def.id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type configFile struct {
	Bindings map[string][]string `json:"bindings" toml:"bindings"`
}

func parseConfig(data []byte, format Format) (map[ActionID][]string, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var payload configFile
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	if len(payload.Bindings) == 0 {
		return nil, nil
	}

	overrides := make(map[ActionID][]string, len(payload.Bindings))
	for name, specs := range payload.Bindings {
		id := ActionID(name)
		if _, ok := definitionLookup[id]; !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		keys := make([]string, 0, len(specs))
		for _, spec := range specs {
			normalized, err := normalizeStep(spec)
			if err != nil {
				return nil, fmt.Errorf("action %q: %w", name, err)
			}
			keys = append(keys, normalized)
		}
		overrides[id] = keys
	}
	return overrides, nil
}

func buildMap(overrides map[ActionID][]string) (*Map, error) {
	byAction := make(map[ActionID][]string, len(definitions))
	for _, def := range definitions {
		byAction[def.id] = append([]string(nil), def.defaults...)
	}
	for id, keys := range overrides {
		if len(keys) == 0 {
			return nil, fmt.Errorf("action %s: at least one key required", id)
		}
		byAction[id] = append([]string(nil), keys...)
	}

	byKey := make(map[string]ActionID)
	for _, def := range definitions {
		id := def.id
		seen := make(map[string]struct{})
		for _, k := range byAction[id] {
			if _, ok := reservedKeys[k]; ok {
				return nil, fmt.Errorf("action %s: key %q is reserved for the host", id, k)
			}
			if _, ok := seen[k]; ok {
				return nil, fmt.Errorf("action %s: duplicate binding %q", id, k)
			}
			seen[k] = struct{}{}
			if existing, ok := byKey[k]; ok {
				return nil, fmt.Errorf(
					"binding %q assigned to both %s and %s",
					k,
					existing,
					id,
				)
			}
			byKey[k] = id
		}
	}

	return &Map{byAction: byAction, byKey: byKey}, nil
}

func normalizeLookup(raw string) string {
	normalized, err := normalizeStep(raw)
	if err != nil {
		return ""
	}
	return normalized
}

func normalizeStep(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty key")
	}
	if raw == " " {
		raw = "space"
	}

	runes := []rune(raw)
	if len(runes) == 1 && !strings.Contains(raw, "+") {
		r := runes[0]
		if unicode.IsLetter(r) && unicode.IsUpper(r) {
			return "shift+" + strings.ToLower(raw), nil
		}
		return strings.ToLower(raw), nil
	}

	if !strings.Contains(raw, "+") {
		return strings.ToLower(raw), nil
	}

	parts := strings.Split(raw, "+")
	var keyParts []string
	modSet := make(map[string]struct{})
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		switch lower {
		case "ctrl", "control":
			modSet["ctrl"] = struct{}{}
		case "alt", "option", "meta":
			modSet["alt"] = struct{}{}
		case "shift":
			modSet["shift"] = struct{}{}
		default:
			keyParts = append(keyParts, lower)
		}
	}
	if len(keyParts) == 0 {
		return "", fmt.Errorf("binding %q missing key", raw)
	}
	keyName := strings.Join(keyParts, "+")
	mods := orderedModifiers(modSet)
	if len(mods) == 0 {
		return keyName, nil
	}
	return strings.Join(append(mods, keyName), "+"), nil
}

func orderedModifiers(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	order := []string{"ctrl", "alt", "shift"}
	out := make([]string, 0, len(set))
	for _, mod := range order {
		if _, ok := set[mod]; ok {
			out = append(out, mod)
		}
	}
	return out
}
