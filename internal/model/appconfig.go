package model

import (
	"errors"
	"strings"
)

// PlannerSettings holds the equipment selection configuration.
type PlannerSettings struct {
	Priority     []string `json:"priority" yaml:"priority"`           // Priority tokens, cheapest/simplest first
	NameMatching bool     `json:"name_matching" yaml:"name_matching"` // Legacy: match tokens as substrings of class names
}

func DefaultSettings() PlannerSettings {
	return PlannerSettings{
		Priority:     DefaultPriority(),
		NameMatching: false,
	}
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Planner defaults applied to every run
	Priority     []string `json:"priority" yaml:"priority"`
	NameMatching bool     `json:"name_matching" yaml:"name_matching"`

	// Catalog file; empty means the default location
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`

	// Logging
	LogLevel string `json:"log_level" yaml:"log_level"` // TRACE, DEBUG, INFO, WARN, ERROR
	Debug    string `json:"debug" yaml:"debug"`         // Comma-separated debug categories

	RecentManifests []string `json:"recent_manifests" yaml:"recent_manifests"`
}

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		Priority:        defaults.Priority,
		NameMatching:    defaults.NameMatching,
		LogLevel:        "INFO",
		RecentManifests: []string{},
	}
}

// ApplyToSettings copies the planner values from AppConfig into a PlannerSettings struct.
func (c AppConfig) ApplyToSettings(s *PlannerSettings) {
	s.Priority = append([]string(nil), c.Priority...)
	s.NameMatching = c.NameMatching
}

// Validate checks the configuration for values the planner cannot use.
func (c AppConfig) Validate() error {
	if len(c.Priority) == 0 {
		return errors.New("priority must list at least one equipment token")
	}
	for i, tok := range c.Priority {
		if strings.TrimSpace(tok) == "" {
			return errors.New("priority tokens must not be empty")
		}
		for _, prev := range c.Priority[:i] {
			if strings.EqualFold(prev, tok) {
				return errors.New("priority token " + tok + " is listed twice")
			}
		}
	}
	return nil
}
