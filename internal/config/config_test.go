package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GARMIN_EMAIL", "runner@example.com")
	t.Setenv("GARMIN_PASSWORD", "hunter2")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 90, cfg.HistoryDays)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gpt-4o", cfg.Model.Name)
	assert.Equal(t, 2, cfg.Model.MaxRetries)
	assert.False(t, cfg.NoCache)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RACEPLAN_HISTORY_DAYS", "30")
	t.Setenv("RACEPLAN_HTTP_TIMEOUT", "90s")
	t.Setenv("RACEPLAN_MODEL", "gpt-4o-mini")
	t.Setenv("RACEPLAN_NOCACHE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.HistoryDays)
	assert.Equal(t, 90*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.True(t, cfg.NoCache)
}

func TestValidateMissingCredentials(t *testing.T) {
	t.Setenv("GARMIN_EMAIL", "")
	t.Setenv("GARMIN_PASSWORD", "hunter2")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GARMIN_EMAIL")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.NotContains(t, err.Error(), "GARMIN_PASSWORD")
}

func TestValidateRejectsBadNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("RACEPLAN_HISTORY_DAYS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "RACEPLAN_HISTORY_DAYS")
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("RACEPLAN_HTTP_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}
