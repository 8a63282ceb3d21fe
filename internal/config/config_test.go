package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv isolates a test from the caller's environment and home directory.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"VF_PORT", "VF_DEV_MODE", "VF_REFRESH_TTL", "VF_GEOCODE_TIMEOUT", "VF_GEOCODE_CACHE",
		"GOOGLE_SHEETS_API_KEY", "GOOGLE_SHEETS_ID", "GOOGLE_SHEETS_RANGE",
		"MAPBOX_ACCESS_TOKEN", "NEXT_PUBLIC_MAPBOX_ACCESS_TOKEN",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, Default())
	}
	if cfg.RefreshTTL != 15*time.Minute {
		t.Errorf("refresh ttl = %s, want 15m", cfg.RefreshTTL)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("addr = %q", cfg.Addr())
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
port: "9090"
dev_mode: true
sheets_api_key: key
sheets_id: sheet
sheets_range: Venues!A1:Q200
mapbox_token: pk.file
geocode_timeout: 3s
geocode_cache: "off"
refresh_ttl: 1h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		Port:           "9090",
		DevMode:        true,
		SheetsAPIKey:   "key",
		SheetsID:       "sheet",
		SheetsRange:    "Venues!A1:Q200",
		MapboxToken:    "pk.file",
		GeocodeTimeout: 3 * time.Second,
		GeocodeCache:   CacheDisabled,
		RefreshTTL:     time.Hour,
	}
	if cfg != want {
		t.Errorf("cfg = %+v\nwant  %+v", cfg, want)
	}
}

func TestLoadDefaultFileLocation(t *testing.T) {
	clearEnv(t)
	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".config", "vf")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "server.yaml"), []byte("port: \"7000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("port = %q, want 7000", cfg.Port)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "port: \"9090\"\nmapbox_token: pk.file\nrefresh_ttl: 1h\n")

	t.Setenv("VF_PORT", "3000")
	t.Setenv("MAPBOX_ACCESS_TOKEN", "pk.env")
	t.Setenv("VF_REFRESH_TTL", "0")
	t.Setenv("VF_DEV_MODE", "true")
	t.Setenv("GOOGLE_SHEETS_ID", "env-sheet")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Port)
	}
	if cfg.MapboxToken != "pk.env" {
		t.Errorf("token = %q, want pk.env", cfg.MapboxToken)
	}
	if cfg.RefreshTTL != 0 {
		t.Errorf("refresh ttl = %s, want 0", cfg.RefreshTTL)
	}
	if !cfg.DevMode {
		t.Error("expected dev mode")
	}
	if cfg.SheetsID != "env-sheet" {
		t.Errorf("sheets id = %q", cfg.SheetsID)
	}
}

func TestPublicMapboxTokenFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_MAPBOX_ACCESS_TOKEN", "pk.public")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MapboxToken != "pk.public" {
		t.Errorf("token = %q, want pk.public", cfg.MapboxToken)
	}

	t.Setenv("MAPBOX_ACCESS_TOKEN", "pk.server")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MapboxToken != "pk.server" {
		t.Errorf("token = %q, want pk.server to win", cfg.MapboxToken)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{"bad yaml", "port: [", nil, "parsing config"},
		{"bad port", "port: abc", nil, "invalid port"},
		{"negative ttl", "refresh_ttl: -1m", nil, "refresh ttl"},
		{"zero timeout", "geocode_timeout: 0s", nil, "geocode timeout"},
		{"bad env duration", "", map[string]string{"VF_REFRESH_TTL": "soon"}, "VF_REFRESH_TTL"},
		{"bad env bool", "", map[string]string{"VF_DEV_MODE": "maybe"}, "VF_DEV_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeFile(t, tt.file))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "VF_TEST_DOTENV_VALUE"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := loadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
	if got := os.Getenv(key); got != "from-dotenv" {
		t.Errorf("%s = %q, want from-dotenv", key, got)
	}
}
