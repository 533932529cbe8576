package project

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// DefaultTemplatePath returns the default file path for the shipment template
// store. This is located at ~/.loadplan/templates.yaml.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.yaml")
}

// SaveTemplates writes the template store to a YAML file.
func SaveTemplates(path string, store model.TemplateStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(store)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template store from a YAML file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	var store model.TemplateStore
	if err := yaml.Unmarshal(data, &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.ShipmentTemplate{}
	}
	return store, nil
}
