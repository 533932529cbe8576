package model

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentTemplate is a saved, reusable cargo manifest together with the
// planner settings it was planned with. It never stores plan results.
type ShipmentTemplate struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	CreatedAt   string          `json:"created_at" yaml:"created_at"`
	UpdatedAt   string          `json:"updated_at" yaml:"updated_at"`
	Items       []CargoItem     `json:"items" yaml:"items"`
	Settings    PlannerSettings `json:"settings" yaml:"settings"`
}

// NewShipmentTemplate captures the items and settings under a new template id.
func NewShipmentTemplate(name, description string, items []CargoItem, settings PlannerSettings) ShipmentTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	settings.Priority = append([]string(nil), settings.Priority...)
	return ShipmentTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       copyItems(items),
		Settings:    settings,
	}
}

// ToItems returns the template's cargo with fresh item ids, so a new
// shipment built from it is independent of the template.
func (t ShipmentTemplate) ToItems() []CargoItem {
	items := make([]CargoItem, len(t.Items))
	for i, it := range t.Items {
		items[i] = NewCargoItem(it.Description, it.Length, it.Width, it.Height, it.Weight, it.Quantity)
		items[i].Stackable = it.Stackable
	}
	return items
}

// TemplateStore holds a collection of shipment templates.
type TemplateStore struct {
	Templates []ShipmentTemplate `json:"templates" yaml:"templates"`
}

func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ShipmentTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ShipmentTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ShipmentTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ShipmentTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyItems(items []CargoItem) []CargoItem {
	if items == nil {
		return []CargoItem{}
	}
	cp := make([]CargoItem, len(items))
	copy(cp, items)
	return cp
}
