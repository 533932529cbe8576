package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/LoadPlanner/internal/debug"
	"github.com/piwi3910/LoadPlanner/internal/model"
)

// Environment variables that override config file values.
const (
	EnvConfigPath   = "LOADPLAN_CONFIG"
	EnvPriority     = "LOADPLAN_PRIORITY" // Comma-separated tokens
	EnvNameMatching = "LOADPLAN_NAME_MATCHING"
	EnvCatalogPath  = "LOADPLAN_CATALOG"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.loadplan/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".loadplan")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// SaveAppConfig persists an AppConfig to the given path as YAML.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. Keys missing from
// the file keep their default values. If the file does not exist, it returns
// DefaultAppConfig with no error. JSON files are accepted as YAML.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Log("config", "no config file, using defaults", "path", path)
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	if config.RecentManifests == nil {
		config.RecentManifests = []string{}
	}
	debug.Log("config", "loaded config", "path", path, "priority", strings.Join(config.Priority, ","))
	return config, nil
}

// ApplyEnvOverrides maps LOADPLAN_* environment variables onto config fields.
// Malformed values are ignored.
func ApplyEnvOverrides(config *model.AppConfig) {
	if v := os.Getenv(EnvPriority); v != "" {
		var tokens []string
		for _, tok := range strings.Split(v, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		if len(tokens) > 0 {
			config.Priority = tokens
		}
	}
	if v := os.Getenv(EnvNameMatching); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.NameMatching = b
		}
	}
	if v := os.Getenv(EnvCatalogPath); v != "" {
		config.CatalogPath = v
	}
	if v := os.Getenv(debug.EnvLevel); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv(debug.EnvCategories); v != "" {
		config.Debug = v
	}
}

// LoadConfig resolves the config file (explicit path, then LOADPLAN_CONFIG,
// then the default path), loads it, applies environment overrides and
// validates the result.
func LoadConfig(path string) (model.AppConfig, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultConfigPath()
	}

	config, err := LoadAppConfig(path)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("loading config file %s: %w", path, err)
	}
	ApplyEnvOverrides(&config)

	if err := config.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("config validation: %w", err)
	}
	return config, nil
}
