package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfigPath, EnvPriority, EnvNameMatching, EnvCatalogPath, "LOADPLAN_LOG_LEVEL", "LOADPLAN_DEBUG"} {
		t.Setenv(k, "")
	}
}

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := model.DefaultAppConfig()
	cfg.Priority = []string{"step-deck", "heavy-haul"}
	cfg.NameMatching = true
	cfg.CatalogPath = "/srv/catalog.yaml"
	cfg.RecentManifests = []string{"/tmp/a.csv", "/tmp/b.xlsx"}

	require.NoError(t, SaveAppConfig(path, cfg))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "nonexistent", "config.yaml"))

	require.NoError(t, err)
	assert.Equal(t, model.DefaultAppConfig(), cfg)
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name_matching: true\n"), 0644))

	cfg, err := LoadAppConfig(path)

	require.NoError(t, err)
	assert.True(t, cfg.NameMatching)
	assert.Equal(t, model.DefaultPriority(), cfg.Priority)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.NotNil(t, cfg.RecentManifests)
}

func TestLoadAppConfigAcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"priority": ["lowboy"], "log_level": "DEBUG", "recent_manifests": null}`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadAppConfig(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"lowboy"}, cfg.Priority)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.NotNil(t, cfg.RecentManifests)
}

func TestLoadAppConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("priority: [unclosed\n"), 0644))

	_, err := LoadAppConfig(path)
	assert.Error(t, err)
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.yaml")

	require.NoError(t, SaveAppConfig(path, model.DefaultAppConfig()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPriority, " lowboy , ,heavy-haul")
	t.Setenv(EnvNameMatching, "true")
	t.Setenv(EnvCatalogPath, "/etc/loadplan/catalog.yaml")
	t.Setenv("LOADPLAN_LOG_LEVEL", "TRACE")
	t.Setenv("LOADPLAN_DEBUG", "catalog")

	cfg := model.DefaultAppConfig()
	ApplyEnvOverrides(&cfg)

	assert.Equal(t, []string{"lowboy", "heavy-haul"}, cfg.Priority)
	assert.True(t, cfg.NameMatching)
	assert.Equal(t, "/etc/loadplan/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, "TRACE", cfg.LogLevel)
	assert.Equal(t, "catalog", cfg.Debug)
}

func TestApplyEnvOverridesIgnoresMalformed(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPriority, " , ")
	t.Setenv(EnvNameMatching, "sometimes")

	cfg := model.DefaultAppConfig()
	ApplyEnvOverrides(&cfg)

	assert.Equal(t, model.DefaultAppConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := model.DefaultAppConfig()
	cfg.Priority = []string{"step-deck"}
	require.NoError(t, SaveAppConfig(path, cfg))

	t.Run("explicit path", func(t *testing.T) {
		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"step-deck"}, loaded.Priority)
	})

	t.Run("path from environment", func(t *testing.T) {
		t.Setenv(EnvConfigPath, path)
		loaded, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, []string{"step-deck"}, loaded.Priority)
	})

	t.Run("default path under home", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		loaded, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, model.DefaultPriority(), loaded.Priority)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv(EnvPriority, "heavy-haul")
		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"heavy-haul"}, loaded.Priority)
	})
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("priority: [flatbed, FLATBED]\n"), 0644))

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation")
}
