package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PIXELHIVE_API_BASE_URL", "")
	t.Setenv("PIXELHIVE_COOKIE_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:3000/api/v1" {
		t.Errorf("unexpected default base URL: %s", cfg.APIBaseURL)
	}

	if cfg.CookiePath == "" {
		t.Error("cookie path should default to a path under the user config dir")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("unexpected default log level: %s", cfg.LogLevel)
	}
}

func TestLoadBaseURLOverride(t *testing.T) {
	t.Setenv("PIXELHIVE_API_BASE_URL", "https://pixelhive.example.com/api/v1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIBaseURL != "https://pixelhive.example.com/api/v1" {
		t.Errorf("override not applied: %s", cfg.APIBaseURL)
	}
}
