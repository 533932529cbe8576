package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if len(cfg.Priority) != len(defaults.Priority) {
		t.Fatalf("Priority length mismatch: config=%d settings=%d", len(cfg.Priority), len(defaults.Priority))
	}
	for i := range cfg.Priority {
		if cfg.Priority[i] != defaults.Priority[i] {
			t.Errorf("Priority[%d] mismatch: config=%s settings=%s", i, cfg.Priority[i], defaults.Priority[i])
		}
	}
	if cfg.NameMatching != defaults.NameMatching {
		t.Errorf("NameMatching mismatch: config=%v settings=%v", cfg.NameMatching, defaults.NameMatching)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("expected default log level INFO, got %s", cfg.LogLevel)
	}
	if cfg.RecentManifests == nil {
		t.Error("RecentManifests should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Priority = []string{"van", "flatbed"}
	cfg.NameMatching = true

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if len(s.Priority) != 2 || s.Priority[0] != "van" {
		t.Errorf("expected priority [van flatbed], got %v", s.Priority)
	}
	if !s.NameMatching {
		t.Error("expected NameMatching=true")
	}

	// Settings must not alias the config slice
	cfg.Priority[0] = "changed"
	if s.Priority[0] != "van" {
		t.Errorf("settings priority aliased config slice: %v", s.Priority)
	}
}

func TestAppConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		priority []string
		wantErr  bool
	}{
		{"defaults", DefaultPriority(), false},
		{"empty", nil, true},
		{"blank token", []string{"flatbed", " "}, true},
		{"duplicate ignoring case", []string{"flatbed", "FLATBED"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			cfg.Priority = tt.priority
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
