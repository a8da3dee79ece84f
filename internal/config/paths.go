package config

import (
	"os"
	"path/filepath"
)

// GetPraxisHome returns the praxis home directory, honoring $PRAXIS_HOME
func GetPraxisHome() string {
	if home := os.Getenv("PRAXIS_HOME"); home != "" {
		return ExpandPath(home)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "~/.praxis" // Fallback to unexpanded path
	}
	return filepath.Join(homeDir, ".praxis")
}

// GetSettingsPath returns the path to settings.json
func GetSettingsPath() string {
	return filepath.Join(GetPraxisHome(), "settings.json")
}

// GetDBPath returns the path to the SQLite database
func GetDBPath() string {
	return filepath.Join(GetPraxisHome(), "state.db")
}

// GetChecklistsPath returns the path to the checklist template overrides
func GetChecklistsPath() string {
	return filepath.Join(GetPraxisHome(), "checklists.yaml")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[1:])
}
