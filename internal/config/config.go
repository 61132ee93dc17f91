// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries all runtime settings for the solitaire application.
type Config struct {
	// DrawCount is the number of cards turned per stock draw, 1 or 3.
	DrawCount int `env:"SOLITAIRE_DRAW_COUNT" envDefault:"1"`
	// Seed fixes the shuffle when non-zero; zero means a random deal.
	Seed uint64 `env:"SOLITAIRE_SEED" envDefault:"0"`
	// SaveDir is the directory holding the saved-game file.
	SaveDir string `env:"SOLITAIRE_SAVE_DIR"`
	// LeaderboardPath is the SQLite database file for high scores.
	LeaderboardPath string `env:"SOLITAIRE_LEADERBOARD_PATH"`
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `env:"SOLITAIRE_LOG_LEVEL" envDefault:"info"`
}

// Load reads a .env file if present, then the process environment, and
// fills in platform defaults for unset paths.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DrawCount != 1 && cfg.DrawCount != 3 {
		return Config{}, fmt.Errorf("SOLITAIRE_DRAW_COUNT must be 1 or 3, got %d", cfg.DrawCount)
	}

	if cfg.SaveDir == "" || cfg.LeaderboardPath == "" {
		base, err := defaultDataDir()
		if err != nil {
			return Config{}, err
		}
		if cfg.SaveDir == "" {
			cfg.SaveDir = base
		}
		if cfg.LeaderboardPath == "" {
			cfg.LeaderboardPath = filepath.Join(base, "leaderboard.db")
		}
	}
	return cfg, nil
}

func defaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "pysolitaire"), nil
}
