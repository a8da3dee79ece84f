package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Setenv("PRAXIS_HOME", t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Empty(t, settings.DBPath)
	assert.Nil(t, settings.Debug)
	assert.Equal(t, DefaultSessionSoftLimitMinutes, settings.SessionSoftLimit())
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv("PRAXIS_HOME", t.TempDir())

	limit := 60
	debug := true
	require.NoError(t, SaveSettings(&Settings{
		DBPath:                  "/tmp/praxis/state.db",
		Debug:                   &debug,
		SessionSoftLimitMinutes: &limit,
	}))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/praxis/state.db", loaded.DBPath)
	require.NotNil(t, loaded.Debug)
	assert.True(t, *loaded.Debug)
	assert.Equal(t, 60, loaded.SessionSoftLimit())
}

func TestSessionSoftLimitFallback(t *testing.T) {
	zero := 0
	tests := []struct {
		name     string
		settings Settings
		want     int
	}{
		{"unset", Settings{}, DefaultSessionSoftLimitMinutes},
		{"zero", Settings{SessionSoftLimitMinutes: &zero}, DefaultSessionSoftLimitMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.SessionSoftLimit())
		})
	}
}
