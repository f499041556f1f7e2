package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with TERMINALCHAT_* environment variables. A .env
// file in the working directory is loaded first; already-set variables win
// over the file, and a missing file is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("TERMINALCHAT_APP_DIR"); ok {
		cfg.AppDir = v
	}
	if v, ok := os.LookupEnv("TERMINALCHAT_DATABASE_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv("TERMINALCHAT_FILES_DIR"); ok {
		cfg.FilesDir = v
	}
	if v, ok := os.LookupEnv("TERMINALCHAT_SESSION_SECRET"); ok {
		cfg.SessionSecret = v
	}
	if v, ok := os.LookupEnv("TERMINALCHAT_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}
