package model

import (
	"sort"
	"strings"
)

// Catalog is the list of equipment classes available to the planner.
// The planner treats it as read-only for the duration of a call.
type Catalog struct {
	Classes []EquipmentClass `json:"classes" yaml:"classes"`
	// Aliases maps generic priority tokens ("flatbed", "step-deck") onto the
	// class ids of a differently-named custom catalog.
	Aliases map[string][]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Clone returns a deep copy so hosts can snapshot a hot-reloadable catalog.
func (c Catalog) Clone() Catalog {
	out := Catalog{Classes: make([]EquipmentClass, len(c.Classes))}
	copy(out.Classes, c.Classes)
	if c.Aliases != nil {
		out.Aliases = make(map[string][]string, len(c.Aliases))
		for k, ids := range c.Aliases {
			out.Aliases[k] = append([]string(nil), ids...)
		}
	}
	return out
}

// Active returns the active classes in catalog order. A class with a NaN
// maximum is never active: no cargo can be measured against it.
func (c Catalog) Active() []EquipmentClass {
	var out []EquipmentClass
	for _, e := range c.Classes {
		if e.IsActive && !e.hasNaNMax() {
			out = append(out, e)
		}
	}
	return out
}

// ByID returns the class with the given id.
func (c Catalog) ByID(id string) (EquipmentClass, bool) {
	for _, e := range c.Classes {
		if e.ID == id {
			return e, true
		}
	}
	return EquipmentClass{}, false
}

// AliasTargets returns the class ids registered for a priority token.
// Token lookup is case-insensitive.
func (c Catalog) AliasTargets(token string) []string {
	if ids, ok := c.Aliases[token]; ok {
		return ids
	}
	// Sorted so that keys differing only in case resolve deterministically
	keys := make([]string, 0, len(c.Aliases))
	for k := range c.Aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.EqualFold(k, strings.TrimSpace(token)) {
			return c.Aliases[k]
		}
	}
	return nil
}

// DefaultPriority is the cheapest-first order used by DefaultSettings.
func DefaultPriority() []string {
	return []string{"flatbed", "step-deck", "lowboy", "heavy-haul"}
}

// DefaultCatalog returns the built-in North American equipment table
// (inches and pounds). A fresh copy is returned on every call.
func DefaultCatalog() Catalog {
	return Catalog{
		Classes: []EquipmentClass{
			{
				ID: "flatbed", Name: "Flatbed 48'",
				MaxLength: 576, MaxWidth: 144, MaxHeight: 102, MaxWeight: 48000,
				LegalLength: 576, LegalWidth: 102, LegalHeight: 102, LegalWeight: 48000,
				IsActive: true,
			},
			{
				ID: "step-deck", Name: "Step Deck 53'",
				MaxLength: 636, MaxWidth: 144, MaxHeight: 120, MaxWeight: 48000,
				LegalLength: 636, LegalWidth: 102, LegalHeight: 120, LegalWeight: 48000,
				IsActive: true,
			},
			{
				ID: "conestoga", Name: "Conestoga 53'",
				MaxLength: 636, MaxWidth: 100, MaxHeight: 96, MaxWeight: 44000,
				LegalLength: 636, LegalWidth: 100, LegalHeight: 96, LegalWeight: 44000,
				IsActive: false,
			},
			{
				ID: "lowboy", Name: "Lowboy Double Drop",
				MaxLength: 348, MaxWidth: 168, MaxHeight: 144, MaxWeight: 80000,
				LegalLength: 348, LegalWidth: 102, LegalHeight: 138, LegalWeight: 40000,
				IsActive: true,
			},
			{
				ID: "heavy-haul", Name: "Heavy Haul RGN 9-Axle",
				MaxLength: 420, MaxWidth: 192, MaxHeight: 156, MaxWeight: 150000,
				LegalLength: 420, LegalWidth: 102, LegalHeight: 138, LegalWeight: 42000,
				IsActive: true,
			},
		},
		Aliases: map[string][]string{
			"flatbed":    {"flatbed"},
			"step-deck":  {"step-deck"},
			"lowboy":     {"lowboy"},
			"heavy-haul": {"heavy-haul"},
		},
	}
}
