package project

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// ExportClass writes a single equipment class to a YAML file for sharing.
func ExportClass(path string, class model.EquipmentClass) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(class)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportClass reads a single equipment class from a YAML file.
// Classes without an ID or name are rejected.
func ImportClass(path string) (model.EquipmentClass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.EquipmentClass{}, err
	}

	var class model.EquipmentClass
	if err := yaml.Unmarshal(data, &class); err != nil {
		return model.EquipmentClass{}, err
	}
	if class.ID == "" {
		return model.EquipmentClass{}, errors.New("imported equipment class has no id")
	}
	if class.Name == "" {
		return model.EquipmentClass{}, errors.New("imported equipment class has no name")
	}
	return class, nil
}

// AddClass appends class to the catalog, replacing any class with the same ID.
func AddClass(catalog model.Catalog, class model.EquipmentClass) model.Catalog {
	out := catalog.Clone()
	for i := range out.Classes {
		if out.Classes[i].ID == class.ID {
			out.Classes[i] = class
			return out
		}
	}
	out.Classes = append(out.Classes, class)
	return out
}
