// Package config loads runtime configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/geo"
)

// Config holds all environment-driven settings.
type Config struct {
	// APIBaseURL is the marketplace service address.
	APIBaseURL string
	// GeocoderURL is the Nominatim-compatible search endpoint.
	GeocoderURL string
	// CachePath overrides the default catalog cache location.
	CachePath string
	// DevMode switches logging to human-readable debug output.
	DevMode bool
}

// Load reads the .env file (if present) and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment")
	}

	return &Config{
		APIBaseURL:  getEnv("LANDX_API_URL", catalog.DefaultBaseURL),
		GeocoderURL: getEnv("LANDX_GEOCODER_URL", geo.DefaultSearchURL),
		CachePath:   getEnv("LANDX_CACHE_PATH", ""),
		DevMode:     getEnv("LANDX_DEV", "") != "",
	}
}

// getEnv returns an environment variable or a default when unset.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
