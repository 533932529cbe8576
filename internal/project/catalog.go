package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/LoadPlanner/internal/debug"
	"github.com/piwi3910/LoadPlanner/internal/model"
)

// DefaultCatalogPath returns the default file path for the equipment catalog.
// This is located at ~/.loadplan/catalog.yaml.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.yaml")
}

// SaveCatalog writes the catalog to the specified YAML file.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, catalog model.Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(catalog)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalog reads the catalog from the specified YAML file.
// If the file does not exist, it returns the built-in default catalog.
// Entries that fail validation are kept and logged as warnings; the planner
// evaluates them as-is.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Log("catalog", "no catalog file, using defaults", "path", path)
			return model.DefaultCatalog(), nil
		}
		return model.Catalog{}, err
	}
	var catalog model.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return model.Catalog{}, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	warnMalformed(path, catalog)
	debug.Log("catalog", "loaded catalog", "path", path, "classes", len(catalog.Classes), "active", len(catalog.Active()))
	return catalog, nil
}

// LoadOrCreateCatalog loads the catalog from the default path.
// If the file does not exist, it writes the default catalog there first.
func LoadOrCreateCatalog() (model.Catalog, string, error) {
	path := DefaultCatalogPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		catalog := model.DefaultCatalog()
		if err := SaveCatalog(path, catalog); err != nil {
			return catalog, path, err
		}
		return catalog, path, nil
	}
	catalog, err := LoadCatalog(path)
	return catalog, path, err
}

// ImportCatalog reads a catalog from a user-specified file and merges it
// into existing. Classes whose ID is already present are skipped, as are
// alias tokens already defined.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Catalog
	if err := yaml.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	warnMalformed(path, imported)

	merged := existing.Clone()
	ids := make(map[string]bool, len(merged.Classes))
	for _, c := range merged.Classes {
		ids[c.ID] = true
	}
	for _, c := range imported.Classes {
		if ids[c.ID] {
			debug.Log("catalog", "skipping duplicate class", "id", c.ID)
			continue
		}
		merged.Classes = append(merged.Classes, c)
		ids[c.ID] = true
	}

	for token, targets := range imported.Aliases {
		if _, ok := merged.Aliases[token]; ok {
			continue
		}
		if merged.Aliases == nil {
			merged.Aliases = make(map[string][]string)
		}
		merged.Aliases[token] = append([]string(nil), targets...)
	}
	return merged, nil
}

func warnMalformed(path string, catalog model.Catalog) {
	for _, c := range catalog.Classes {
		if err := c.Validate(); err != nil {
			slog.Warn("malformed equipment class", "path", path, "id", c.ID, "error", err)
		}
	}
}
