package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/promptline/internal/bindings"
	"github.com/unkn0wn-root/promptline/internal/config"
	"github.com/unkn0wn-root/promptline/internal/history"
	"github.com/unkn0wn-root/promptline/internal/theme"
	"github.com/unkn0wn-root/promptline/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	var (
		themeName   string
		configDir   string
		historyPath string
		noHistory   bool
		listThemes  bool
		showVersion bool
	)

	flag.StringVar(&themeName, "theme", "", "Theme to use (overrides the configured default)")
	flag.StringVar(&configDir, "config-dir", "", "Config directory (overrides the platform default)")
	flag.StringVar(&historyPath, "history", "", "Path to the history database")
	flag.BoolVar(&noHistory, "no-history", false, "Disable submission history")
	flag.BoolVar(&listThemes, "list-themes", false, "List available themes and exit")
	flag.BoolVar(&showVersion, "version", false, "Show promptline version")
	flag.Parse()

	if showVersion {
		fmt.Printf("promptline %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if configDir != "" {
		if err := os.Setenv("PROMPTLINE_CONFIG_DIR", configDir); err != nil {
			log.Fatalf("set config dir: %v", err)
		}
	}

	settings, _, err := config.LoadSettings()
	if err != nil {
		log.Printf("settings load error: %v", err)
		settings = config.NormaliseSettings(config.Settings{})
	}

	themeCatalog, themeErr := theme.LoadCatalog([]string{config.ThemeDir()})
	if themeErr != nil {
		log.Printf("theme load error: %v", themeErr)
	}

	if listThemes {
		for _, def := range themeCatalog.All() {
			fmt.Printf("%-20s %s (%s)\n", def.Key, def.DisplayName, def.Source)
		}
		os.Exit(0)
	}

	activeThemeKey := strings.TrimSpace(strings.ToLower(themeName))
	if activeThemeKey == "" {
		activeThemeKey = strings.TrimSpace(strings.ToLower(settings.DefaultTheme))
	}
	if activeThemeKey == "" {
		activeThemeKey = "default"
	}

	th := theme.DefaultTheme()
	if def, ok := themeCatalog.Get(activeThemeKey); ok {
		th = def.Theme
	} else if activeThemeKey != "default" {
		log.Printf("theme %q not found; using built-in default", activeThemeKey)
	}

	bindingMap, _, bindingErr := bindings.Load(config.Dir())
	if bindingErr != nil {
		log.Printf("bindings load error: %v", bindingErr)
		bindingMap = bindings.DefaultMap()
	}
	keyMap := bindingMap.KeyMap()

	var store *history.Store
	if !noHistory && !settings.History.Disabled {
		path := historyPath
		if path == "" {
			path = config.HistoryPath()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Printf("history dir error: %v", err)
		} else if store, err = history.Open(path, settings.History.MaxEntries); err != nil {
			log.Printf("history open error: %v", err)
			store = nil
		}
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("history close error: %v", err)
			}
		}()
	}

	model := ui.New(ui.Options{
		Theme:          th,
		KeyMap:         &keyMap,
		Store:          store,
		HighlightPaste: settings.Input.HighlightPaste,
		SecretMask:     settings.Input.MaskRune(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
