package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the client configuration, loaded from the environment
type Config struct {
	// APIBaseURL is the base URL of the delivery operations API,
	// including any /api path prefix.
	APIBaseURL string `env:"DELIVERY_DESK_API_URL" envDefault:"http://localhost:8000/api"`

	// DataDir is where the token file and the local record cache live.
	// Defaults to ~/.delivery-desk.
	DataDir string `env:"DELIVERY_DESK_DATA_DIR"`
}

// Load reads configuration from a .env file (if present) and the process
// environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to determine user home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(homeDir, ".delivery-desk")
	}

	return cfg, nil
}
