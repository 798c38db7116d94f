package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loadDotEnv exports variables from a .env file in the working directory or
// its parent. Variables already present in the environment win, and a
// missing file is not an error.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env"))
}

// parseEnv overlays Config fields that have their environment variable set.
// Unset variables leave the current value untouched. A malformed value
// (e.g. TOKEN_TTL=soon) panics, like a malformed JSON file does.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
