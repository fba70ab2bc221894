package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCLIHelp(t *testing.T) {
	require.NoError(t, runCLI([]string{"--help"}))
	require.NoError(t, runCLI([]string{"help"}))
}

func TestRunCLIVersion(t *testing.T) {
	require.NoError(t, runCLI([]string{"-v"}))
}

func TestRunCLIUnknownArgument(t *testing.T) {
	err := runCLI([]string{"--frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--frobnicate")
}

func TestRunCLIDaysValidation(t *testing.T) {
	err := runCLI([]string{"--days"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--days requires a number")

	err = runCLI([]string{"--days", "zero"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --days")

	err = runCLI([]string{"--days", "-5"})
	require.Error(t, err)
}

func TestRunFailsFastWithoutCredentials(t *testing.T) {
	t.Setenv("GARMIN_EMAIL", "")
	t.Setenv("GARMIN_PASSWORD", "")
	t.Setenv("OPENAI_API_KEY", "")

	err := runCLI([]string{"--dry-run"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GARMIN_EMAIL")
}
