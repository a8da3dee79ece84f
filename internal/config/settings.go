package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultSessionSoftLimitMinutes is the soft cap on session duration.
// Sessions running past it are flagged, never rejected.
const DefaultSessionSoftLimitMinutes = 45

// Settings represents the structure of $PRAXIS_HOME/settings.json
type Settings struct {
	DBPath                  string `json:"db_path,omitempty"`
	Debug                   *bool  `json:"debug,omitempty"`
	MaxLogFiles             *int   `json:"max_log_files,omitempty"`
	SessionSoftLimitMinutes *int   `json:"session_soft_limit_minutes,omitempty"`
}

// SessionSoftLimit returns the configured soft limit in minutes, falling back
// to the default when unset or non-positive.
func (s *Settings) SessionSoftLimit() int {
	if s.SessionSoftLimitMinutes != nil && *s.SessionSoftLimitMinutes > 0 {
		return *s.SessionSoftLimitMinutes
	}
	return DefaultSessionSoftLimitMinutes
}

// LoadSettings loads settings from $PRAXIS_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.DBPath != "" {
		settings.DBPath = ExpandPath(settings.DBPath)
	}

	return &settings, nil
}

// SaveSettings saves settings to $PRAXIS_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
