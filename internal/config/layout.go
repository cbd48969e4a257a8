package config

import "path/filepath"

// ThemeDir is where user theme files live.
func ThemeDir() string {
	return filepath.Join(Dir(), "themes")
}

// HistoryPath is the default location of the submission history database.
func HistoryPath() string {
	return filepath.Join(Dir(), "history.db")
}
