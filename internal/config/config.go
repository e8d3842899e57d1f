package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds all client configuration. The only backend-facing knob is the
// API base URL; everything else is local behavior.
type Config struct {
	// APIBaseURL is the origin all calls are sent to.
	APIBaseURL string `env:"PIXELHIVE_API_BASE_URL,default=http://localhost:3000/api/v1"`

	// CookiePath is where the session cookie jar is persisted between CLI
	// invocations. Empty selects the default under the user config dir.
	CookiePath string `env:"PIXELHIVE_COOKIE_PATH"`

	// LogPath receives debug logs while the TUI owns the terminal.
	LogPath string `env:"PIXELHIVE_LOG_PATH"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"PIXELHIVE_LOG_LEVEL,default=info"`
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env entries.
func Load() (Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode environment: %w", err)
	}

	if cfg.CookiePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		cfg.CookiePath = filepath.Join(dir, "pixelhive", "cookies.json")
	}

	return cfg, nil
}
