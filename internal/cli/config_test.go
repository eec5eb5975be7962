package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Missing file reads as a zero config.
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loading missing config: %v", err)
	}
	if cfg != (CLIConfig{}) {
		t.Errorf("expected zero config, got %+v", cfg)
	}

	want := CLIConfig{APIURL: "http://lands.example.com", Token: "tok123"}
	if err := saveConfig(want); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	got, err := loadConfig()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestConfigFilePermissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := saveConfig(CLIConfig{Token: "secret"}); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	path, err := configPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	// The token lives here, keep it private.
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("config file = %q", path)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "landx")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: [unterminated"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := loadConfig(); err == nil {
		t.Error("expected parse error")
	}
}

func TestAPIBaseURLResolution(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LANDX_API_URL", "")

	origFlag := flagAPI
	t.Cleanup(func() { flagAPI = origFlag })

	flagAPI = ""
	if got := apiBaseURL(); got != "http://localhost:5000" {
		t.Errorf("default = %q", got)
	}

	if err := saveConfig(CLIConfig{APIURL: "http://stored.example.com"}); err != nil {
		t.Fatalf("saving config: %v", err)
	}
	if got := apiBaseURL(); got != "http://stored.example.com" {
		t.Errorf("stored config = %q", got)
	}

	t.Setenv("LANDX_API_URL", "http://env.example.com")
	if got := apiBaseURL(); got != "http://env.example.com" {
		t.Errorf("env = %q, must beat stored config", got)
	}

	flagAPI = "http://flag.example.com"
	if got := apiBaseURL(); got != "http://flag.example.com" {
		t.Errorf("flag = %q, must beat everything", got)
	}
}

func TestAuthContextFromStoredToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if authContext().Authenticated() {
		t.Error("no stored token must mean anonymous")
	}

	if err := saveConfig(CLIConfig{Token: "tok123"}); err != nil {
		t.Fatalf("saving config: %v", err)
	}
	ctx := authContext()
	if !ctx.Authenticated() || ctx.Token != "tok123" {
		t.Errorf("context = %+v", ctx)
	}
}
