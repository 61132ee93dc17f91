package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets all SOLITAIRE_ variables for the test, restoring them
// afterwards via t.Setenv's cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SOLITAIRE_DRAW_COUNT",
		"SOLITAIRE_SEED",
		"SOLITAIRE_SAVE_DIR",
		"SOLITAIRE_LEADERBOARD_PATH",
		"SOLITAIRE_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.DrawCount)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.SaveDir)
	assert.NotEmpty(t, cfg.LeaderboardPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOLITAIRE_DRAW_COUNT", "3")
	t.Setenv("SOLITAIRE_SEED", "42")
	t.Setenv("SOLITAIRE_SAVE_DIR", "/tmp/sol-saves")
	t.Setenv("SOLITAIRE_LEADERBOARD_PATH", "/tmp/sol-scores.db")
	t.Setenv("SOLITAIRE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.DrawCount)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "/tmp/sol-saves", cfg.SaveDir)
	assert.Equal(t, "/tmp/sol-scores.db", cfg.LeaderboardPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadDrawCount(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOLITAIRE_DRAW_COUNT", "2")

	_, err := Load()
	assert.ErrorContains(t, err, "SOLITAIRE_DRAW_COUNT")
}
