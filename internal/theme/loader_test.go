package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLoadCatalogIncludesDefaultAndUserThemes(t *testing.T) {
	dir := t.TempDir()

	tomlContent := []byte(`
[metadata]
name = "Oceanic"
author = "QA"

[styles.title]
foreground = "#ddeeff"

[styles.input.cursor]
reverse = false
background = "#335577"
`)
	if err := os.WriteFile(filepath.Join(dir, "oceanic.toml"), tomlContent, 0o644); err != nil {
		t.Fatalf("write toml theme: %v", err)
	}

	jsonContent := []byte(`{
  "metadata": {
    "name": "Oceanic",
    "author": "QA"
  },
  "styles": {
    "field_label": {"foreground": "#ff9900"}
  }
}`)
	if err := os.WriteFile(filepath.Join(dir, "sunset.json"), jsonContent, 0o644); err != nil {
		t.Fatalf("write json theme: %v", err)
	}

	catalog, err := LoadCatalog([]string{dir})
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}

	if _, ok := catalog.Get("default"); !ok {
		t.Fatalf("expected default theme to be present")
	}

	oceanic, ok := catalog.Get("oceanic")
	if !ok {
		t.Fatalf("expected oceanic theme to load")
	}
	if oceanic.Metadata.Author != "QA" {
		t.Fatalf("expected author QA, got %q", oceanic.Metadata.Author)
	}
	if got := oceanic.Theme.Title.GetForeground(); got != lipgloss.Color("#ddeeff") {
		t.Fatalf("expected title foreground override, got %v", got)
	}
	if got := oceanic.Theme.InputFocused.Cursor.GetBackground(); got != lipgloss.Color("#335577") {
		t.Fatalf("expected cursor background override, got %v", got)
	}

	duplicate, ok := catalog.Get("oceanic-1")
	if !ok {
		t.Fatalf("expected duplicate slug to be uniquified")
	}
	if got := duplicate.Theme.FieldLabel.GetForeground(); got != lipgloss.Color("#ff9900") {
		t.Fatalf("expected JSON field label override, got %v", got)
	}
}

func TestLoadCatalogHandlesMissingDirectory(t *testing.T) {
	catalog, err := LoadCatalog([]string{"/nonexistent/path"})
	if err != nil {
		t.Fatalf("LoadCatalog should not error on missing directories: %v", err)
	}
	if _, ok := catalog.Get("default"); !ok {
		t.Fatalf("expected default theme even when directories are missing")
	}
	if len(catalog.All()) != 1 {
		t.Fatalf("expected only default theme, got %d", len(catalog.All()))
	}
}

func TestLoadCatalogCollectsBrokenFilesWithoutFailing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("= nonsense"), 0o644); err != nil {
		t.Fatalf("write broken theme: %v", err)
	}
	good := []byte("[metadata]\nname = \"Fine\"\n")
	if err := os.WriteFile(filepath.Join(dir, "fine.toml"), good, 0o644); err != nil {
		t.Fatalf("write good theme: %v", err)
	}

	catalog, err := LoadCatalog([]string{dir})
	if err == nil {
		t.Fatalf("expected error describing the broken theme file")
	}
	if _, ok := catalog.Get("fine"); !ok {
		t.Fatalf("expected the valid theme to load despite the broken one")
	}
}
