// Package config provides client configuration for QueryDesk.
// Values are resolved with the priority: environment variables > local .env >
// config-dir .env > built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"querydesk/internal/logger"
)

// EnvPrefix is the prefix for all QueryDesk environment variables
// (QUERYDESK_BASE_URL, QUERYDESK_PAGE_NAME, ...).
const EnvPrefix = "QUERYDESK"

// Built-in defaults.
const (
	DefaultBaseURL      = "http://localhost:8000"
	DefaultPageName     = "chat"
	DefaultHistoryLimit = 50
)

// tokenFileName is the fixed name of the credential file inside the config dir.
const tokenFileName = "token"

// Config holds the resolved client configuration.
type Config struct {
	BaseURL      string
	PageName     string
	HistoryLimit int
	ConfigDir    string
	TestMode     bool
}

// Load resolves the configuration from all sources.
// The config directory is created if it does not exist so the credential
// store always has a home.
func Load() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// godotenv never overrides variables that are already set, so loading
	// highest-priority files first yields: env > local .env > config .env.
	loadDotEnv(".env")
	loadDotEnv(filepath.Join(dir, ".env"))

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("page_name", DefaultPageName)
	v.SetDefault("history_limit", DefaultHistoryLimit)

	cfg := &Config{
		BaseURL:      v.GetString("base_url"),
		PageName:     v.GetString("page_name"),
		HistoryLimit: v.GetInt("history_limit"),
		ConfigDir:    dir,
	}

	logger.Debug("Configuration loaded",
		"base_url", cfg.BaseURL,
		"page_name", cfg.PageName,
		"history_limit", cfg.HistoryLimit,
		"config_dir", cfg.ConfigDir)

	return cfg, nil
}

// TokenPath returns the location of the persisted bearer token.
func (c *Config) TokenPath() string {
	return filepath.Join(c.ConfigDir, tokenFileName)
}

// configDir resolves the QueryDesk configuration directory, honoring
// QUERYDESK_CONFIG_DIR for tests and non-standard setups.
func configDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "querydesk"), nil
}

func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		logger.Warn("Failed to load .env file", "path", path, "error", err)
	}
}
