package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey is returned by Load when no credential is configured.
// Startup-fatal: no tool can run without it.
var ErrMissingAPIKey = errors.New(
	"RENDER_API_KEY is not set: create an API key under Account Settings > API Keys " +
		"in the Render dashboard, then export RENDER_API_KEY or add it to a .env file")

// For mocking in tests
var (
	osUserHomeDir = os.UserHomeDir
	osGetwd       = os.Getwd
	dotenvLoad    = godotenv.Load
)

const (
	userConfigDir    = ".config/renderctl"
	projectConfigDir = ".renderctl"
	configFileName   = "config.yaml"
)

// Load resolves the configuration. It fails only when the API key is
// absent or a config file that exists cannot be parsed; missing config
// files are fine.
func Load() (*Config, error) {
	// .env first, so the subsequent os.Getenv calls see it. godotenv
	// never overrides variables already present in the environment.
	if err := dotenvLoad(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	cfg := &Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
	}

	for _, path := range configFilePaths() {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		fc, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		applyFileConfig(cfg, fc)
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	cfg.APIKey = os.Getenv(EnvAPIKey)
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
}

// configFilePaths returns candidate config files in ascending precedence.
func configFilePaths() []string {
	var paths []string
	if home, err := osUserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, userConfigDir, configFileName))
	}
	if wd, err := osGetwd(); err == nil {
		paths = append(paths, filepath.Join(wd, projectConfigDir, configFileName))
	}
	return paths
}

func loadConfigFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, err
	}
	return fc, nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.RequestTimeout != "" {
		if d, err := time.ParseDuration(fc.RequestTimeout); err == nil && d > 0 {
			cfg.RequestTimeout = d
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring invalid requestTimeout %q\n", fc.RequestTimeout)
		}
	}
}
