package engine

import "github.com/piwi3910/LoadPlanner/internal/model"

// testCatalog is a four-class catalog with plain ids and no aliases, so
// priority tokens resolve by id.
func testCatalog() model.Catalog {
	return model.Catalog{
		Classes: []model.EquipmentClass{
			{
				ID: "flatbed", Name: "Flatbed",
				MaxLength: 636, MaxWidth: 102, MaxHeight: 102, MaxWeight: 48000,
				LegalLength: 636, LegalWidth: 102, LegalHeight: 102, LegalWeight: 48000,
				IsActive: true,
			},
			{
				ID: "step-deck", Name: "Step Deck",
				MaxLength: 636, MaxWidth: 102, MaxHeight: 120, MaxWeight: 48000,
				LegalLength: 636, LegalWidth: 102, LegalHeight: 120, LegalWeight: 48000,
				IsActive: true,
			},
			{
				ID: "lowboy", Name: "Lowboy",
				MaxLength: 348, MaxWidth: 144, MaxHeight: 144, MaxWeight: 80000,
				LegalLength: 348, LegalWidth: 102, LegalHeight: 138, LegalWeight: 40000,
				IsActive: true,
			},
			{
				ID: "heavy-haul", Name: "Heavy Haul",
				MaxLength: 420, MaxWidth: 192, MaxHeight: 156, MaxWeight: 150000,
				LegalLength: 420, LegalWidth: 102, LegalHeight: 138, LegalWeight: 42000,
				IsActive: true,
			},
		},
	}
}

func testSettings() model.PlannerSettings {
	return model.PlannerSettings{
		Priority: []string{"flatbed", "step-deck", "lowboy", "heavy-haul"},
	}
}

// flatbedOnly is a single-class catalog matching the 48,000 lb flatbed used
// in the multi-unit scenarios.
func flatbedOnly() model.Catalog {
	return model.Catalog{Classes: []model.EquipmentClass{testCatalog().Classes[0]}}
}

func crate(id string, l, w, h, weight float64, qty int) model.CargoItem {
	return model.CargoItem{ID: id, Description: id, Quantity: qty, Length: l, Width: w, Height: h, Weight: weight}
}

func stackableCrate(id string, l, w, h, weight float64, qty int) model.CargoItem {
	c := crate(id, l, w, h, weight, qty)
	c.Stackable = true
	return c
}
