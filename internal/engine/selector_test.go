package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

func TestSelect_SingleClassWithinLegalLimits(t *testing.T) {
	catalog := model.Catalog{Classes: []model.EquipmentClass{{
		ID: "fb", Name: "Flatbed",
		MaxLength: 636, MaxWidth: 102, MaxHeight: 102, MaxWeight: 48000,
		LegalLength: 636, LegalWidth: 102, LegalHeight: 102, LegalWeight: 48000,
		IsActive: true,
	}}}
	planner := New(model.PlannerSettings{Priority: []string{"fb"}})

	req := Aggregate([]model.CargoItem{crate("A", 240, 96, 96, 20000, 1)})
	rec := planner.Select(req, catalog)

	assert.Equal(t, model.Requirement{LengthRequired: 240, WidthRequired: 96, HeightRequired: 96, WeightRequired: 20000}, rec.Requirement)
	assert.Equal(t, "fb", rec.EquipmentID)
	assert.Equal(t, model.StatusSelected, rec.Status)
	assert.False(t, rec.OversizePermit)
	assert.False(t, rec.OverweightPermit)
	assert.Nil(t, rec.MultiUnit)
}

func TestSelect_SkipsClassTooLowByPriority(t *testing.T) {
	planner := New(testSettings())

	req := Aggregate([]model.CargoItem{crate("A", 240, 96, 110, 20000, 1)})
	rec := planner.Select(req, testCatalog())

	assert.Equal(t, "step-deck", rec.EquipmentID, "flatbed max height 102 < 110")
	assert.Equal(t, model.StatusSelected, rec.Status)
}

func TestSelect_CheapestFitWinsEvenIfLaterClassIsRoomier(t *testing.T) {
	planner := New(testSettings())

	rec := planner.Select(model.Requirement{LengthRequired: 100, WidthRequired: 50, HeightRequired: 50, WeightRequired: 1000}, testCatalog())

	assert.Equal(t, "flatbed", rec.EquipmentID)
	assert.False(t, rec.PermitRequired(), "permits come from legal limits only")
}

func TestSelect_SelectedClassAlwaysFitsUnlessFlagged(t *testing.T) {
	planner := New(testSettings())
	catalog := testCatalog()

	reqs := []model.Requirement{
		{LengthRequired: 100, WidthRequired: 50, HeightRequired: 50, WeightRequired: 1000},
		{LengthRequired: 600, WidthRequired: 100, HeightRequired: 118, WeightRequired: 47000},
		{LengthRequired: 300, WidthRequired: 140, HeightRequired: 140, WeightRequired: 70000},
		{LengthRequired: 400, WidthRequired: 180, HeightRequired: 150, WeightRequired: 120000},
		{LengthRequired: 700, WidthRequired: 50, HeightRequired: 50, WeightRequired: 1000},
		{LengthRequired: 100, WidthRequired: 50, HeightRequired: 50, WeightRequired: 400000},
	}

	for _, req := range reqs {
		rec := planner.Select(req, catalog)
		class, ok := catalog.ByID(rec.EquipmentID)
		require.True(t, ok, "%v", req)
		if rec.Status == model.StatusSelected {
			assert.True(t, Fits(req, class), "%v selected %s which does not fit", req, class.ID)
		} else {
			assert.True(t, rec.OversizePermit && rec.OverweightPermit, "fallback for %v must flag permits", req)
		}
	}
}

func TestSelect_IgnoresInactiveClasses(t *testing.T) {
	catalog := testCatalog()
	catalog.Classes[0].IsActive = false
	planner := New(testSettings())

	rec := planner.Select(model.Requirement{LengthRequired: 100, WidthRequired: 50, HeightRequired: 50, WeightRequired: 1000}, catalog)

	assert.Equal(t, "step-deck", rec.EquipmentID)
}

func TestSelect_ClassesOutsidePriorityNeverSelected(t *testing.T) {
	planner := New(model.PlannerSettings{Priority: []string{"step-deck", "heavy-haul"}})

	rec := planner.Select(model.Requirement{LengthRequired: 100, WidthRequired: 50, HeightRequired: 50, WeightRequired: 1000}, testCatalog())

	assert.Equal(t, "step-deck", rec.EquipmentID, "flatbed fits but is not prioritized")
}

func TestSelect_ExplicitAliasTable(t *testing.T) {
	catalog := model.Catalog{
		Classes: []model.EquipmentClass{
			{ID: "fb-48", Name: "Open Deck 48", MaxLength: 576, MaxWidth: 102, MaxHeight: 102, MaxWeight: 48000,
				LegalLength: 576, LegalWidth: 102, LegalHeight: 102, LegalWeight: 48000, IsActive: true},
			{ID: "sd-53", Name: "Drop Deck 53", MaxLength: 636, MaxWidth: 102, MaxHeight: 120, MaxWeight: 48000,
				LegalLength: 636, LegalWidth: 102, LegalHeight: 120, LegalWeight: 48000, IsActive: true},
		},
		Aliases: map[string][]string{
			"flatbed":   {"fb-48"},
			"step-deck": {"sd-53"},
		},
	}
	planner := New(model.PlannerSettings{Priority: []string{"flatbed", "step-deck"}})

	rec := planner.Select(model.Requirement{LengthRequired: 300, WidthRequired: 90, HeightRequired: 90, WeightRequired: 10000}, catalog)
	assert.Equal(t, "fb-48", rec.EquipmentID)

	rec = planner.Select(model.Requirement{LengthRequired: 300, WidthRequired: 90, HeightRequired: 110, WeightRequired: 10000}, catalog)
	assert.Equal(t, "sd-53", rec.EquipmentID)
}

func TestSelect_NameMatchingIsOptIn(t *testing.T) {
	catalog := model.Catalog{Classes: []model.EquipmentClass{
		{ID: "x1", Name: "Custom FLATBED 48", MaxLength: 576, MaxWidth: 102, MaxHeight: 102, MaxWeight: 48000,
			LegalLength: 576, LegalWidth: 102, LegalHeight: 102, LegalWeight: 48000, IsActive: true},
	}}
	req := model.Requirement{LengthRequired: 300, WidthRequired: 90, HeightRequired: 90, WeightRequired: 10000}

	strict := New(model.PlannerSettings{Priority: []string{"flatbed"}})
	rec := strict.Select(req, catalog)
	assert.Equal(t, model.StatusSpecialHandling, rec.Status, "no alias and no id match")
	assert.Equal(t, "x1", rec.EquipmentID, "largest active class by weight")
	assert.False(t, rec.PermitRequired(), "cargo is within the fallback class's legal limits")

	legacy := New(model.PlannerSettings{Priority: []string{"flatbed"}, NameMatching: true})
	rec = legacy.Select(req, catalog)
	assert.Equal(t, model.StatusSelected, rec.Status)
	assert.Equal(t, "x1", rec.EquipmentID)
}

func TestSelect_PermitFlagsFromSelectedClass(t *testing.T) {
	planner := New(model.PlannerSettings{Priority: []string{"lowboy"}})

	rec := planner.Select(model.Requirement{LengthRequired: 300, WidthRequired: 120, HeightRequired: 100, WeightRequired: 45000}, testCatalog())

	assert.Equal(t, "lowboy", rec.EquipmentID)
	assert.True(t, rec.OversizePermit, "width 120 > legal 102")
	assert.True(t, rec.OverweightPermit, "45000 > legal 40000")
	assert.Contains(t, rec.Reason, "oversize and overweight")
}

func TestSelect_WeightDrivenMultiUnit(t *testing.T) {
	planner := New(model.PlannerSettings{Priority: []string{"flatbed"}})

	rec := planner.Select(model.Requirement{LengthRequired: 240, WidthRequired: 96, HeightRequired: 96, WeightRequired: 300000}, flatbedOnly())

	require.NotNil(t, rec.MultiUnit)
	assert.Equal(t, model.StatusMultiUnit, rec.Status)
	assert.Equal(t, 7, rec.MultiUnit.Count, "ceil(300000 / 48000)")
	assert.Equal(t, "flatbed", rec.MultiUnit.Equipment.ID)
	assert.Equal(t, "flatbed", rec.EquipmentID)
	assert.True(t, rec.OversizePermit)
	assert.True(t, rec.OverweightPermit)
}

func TestSelect_DimensionExceedsLargest(t *testing.T) {
	planner := New(testSettings())

	rec := planner.Select(model.Requirement{LengthRequired: 700, WidthRequired: 96, HeightRequired: 96, WeightRequired: 20000}, testCatalog())

	assert.Equal(t, model.StatusSpecialHandling, rec.Status)
	assert.Equal(t, "heavy-haul", rec.EquipmentID, "last priority entry is the largest class")
	assert.Nil(t, rec.MultiUnit, "no unit count is fabricated for a dimensional overflow")
	assert.True(t, rec.OversizePermit)
	assert.True(t, rec.OverweightPermit)
	assert.Contains(t, rec.Reason, "length")
	assert.Contains(t, rec.Reason, "special handling")
}

func TestSelect_LargestFallsBackToHeaviestActive(t *testing.T) {
	catalog := model.Catalog{Classes: []model.EquipmentClass{
		testCatalog().Classes[0], // flatbed 48000
		testCatalog().Classes[2], // lowboy 80000, not prioritized
	}}
	planner := New(model.PlannerSettings{Priority: []string{"flatbed", "missing"}})

	rec := planner.Select(model.Requirement{LengthRequired: 200, WidthRequired: 96, HeightRequired: 96, WeightRequired: 100000}, catalog)

	require.NotNil(t, rec.MultiUnit)
	assert.Equal(t, "lowboy", rec.EquipmentID)
	assert.Equal(t, 2, rec.MultiUnit.Count, "ceil(100000 / 80000)")
}

func TestSelect_NoActiveClasses(t *testing.T) {
	catalog := testCatalog()
	for i := range catalog.Classes {
		catalog.Classes[i].IsActive = false
	}
	planner := New(testSettings())

	rec := planner.Select(model.Requirement{LengthRequired: 10, WidthRequired: 10, HeightRequired: 10, WeightRequired: 10}, catalog)

	assert.Equal(t, model.StatusNoEquipment, rec.Status)
	assert.Empty(t, rec.EquipmentID)
	assert.True(t, rec.OversizePermit)
	assert.True(t, rec.OverweightPermit)
	assert.NotEmpty(t, rec.Reason)
}

func TestNew_CopiesPriority(t *testing.T) {
	settings := testSettings()
	planner := New(settings)
	settings.Priority[0] = "heavy-haul"

	assert.Equal(t, "flatbed", planner.Settings.Priority[0])
}
