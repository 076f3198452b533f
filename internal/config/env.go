package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Recognized environment variables. Only prefixed variables are consulted.
const (
	EnvSite     = "SITEBUILDER_SITE"
	EnvSitesDir = "SITEBUILDER_SITES_DIR"
)

// loadDotEnv loads the first .env file found. Existing process environment
// variables are never overwritten.
func loadDotEnv() {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
		return
	}
}
