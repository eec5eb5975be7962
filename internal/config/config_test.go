package config

import (
	"testing"

	"github.com/evcraddock/landx/internal/catalog"
	"github.com/evcraddock/landx/internal/geo"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LANDX_API_URL", "")
	t.Setenv("LANDX_GEOCODER_URL", "")
	t.Setenv("LANDX_CACHE_PATH", "")
	t.Setenv("LANDX_DEV", "")

	cfg := Load()
	if cfg.APIBaseURL != catalog.DefaultBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, catalog.DefaultBaseURL)
	}
	if cfg.GeocoderURL != geo.DefaultSearchURL {
		t.Errorf("GeocoderURL = %q, want %q", cfg.GeocoderURL, geo.DefaultSearchURL)
	}
	if cfg.CachePath != "" {
		t.Errorf("CachePath = %q, want empty", cfg.CachePath)
	}
	if cfg.DevMode {
		t.Error("DevMode must default to off")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LANDX_API_URL", "http://lands.example.com")
	t.Setenv("LANDX_GEOCODER_URL", "http://geo.example.com/search")
	t.Setenv("LANDX_CACHE_PATH", "/tmp/landx.db")
	t.Setenv("LANDX_DEV", "1")

	cfg := Load()
	if cfg.APIBaseURL != "http://lands.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.GeocoderURL != "http://geo.example.com/search" {
		t.Errorf("GeocoderURL = %q", cfg.GeocoderURL)
	}
	if cfg.CachePath != "/tmp/landx.db" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
	if !cfg.DevMode {
		t.Error("DevMode must be on when LANDX_DEV is set")
	}
}
