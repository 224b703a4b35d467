package config

import (
	"os"
	"path/filepath"
)

// Config holds environment-driven configuration.
type Config struct {
	// Addr is the listen address of the local dashboard.
	Addr string
	// APIBaseURL points at the remote shop backend.
	APIBaseURL string
	// TokenDir is where the auth token file lives.
	TokenDir string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("SHOP_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	apiURL := os.Getenv("SHOP_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:5000"
	}

	tokenDir := os.Getenv("SHOP_TOKEN_DIR")
	if tokenDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			tokenDir = filepath.Join(dir, "gadget-shop")
		} else {
			tokenDir = "."
		}
	}

	return Config{
		Addr:       addr,
		APIBaseURL: apiURL,
		TokenDir:   tokenDir,
	}
}
