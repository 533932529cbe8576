package engine

import (
	"slices"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PlannerSettings
}

// ComparisonResult holds the planning result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario          ComparisonScenario
	Result            model.PlanResult
	EquipmentID       string
	UnitsUsed         int
	PermitRequired    bool
	WeightUtilization float64
	Feasible          bool
}

// CompareScenarios plans the same cargo under each scenario and returns the
// results in scenario order. This shows how priority order or token matching
// changes the equipment choice.
func CompareScenarios(scenarios []ComparisonScenario, items []model.CargoItem, catalog model.Catalog) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		planner := New(scenario.Settings)
		result := planner.Plan(items, catalog)

		results = append(results, ComparisonResult{
			Scenario:          scenario,
			Result:            result,
			EquipmentID:       result.Recommendation.EquipmentID,
			UnitsUsed:         result.UnitsUsed(),
			PermitRequired:    result.Recommendation.PermitRequired(),
			WeightUtilization: result.TotalWeightUtilization(),
			Feasible:          result.Status == model.PlanOK,
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying the priority source and token matching.
func BuildDefaultScenarios(base model.PlannerSettings, catalog model.Catalog) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: every active class, in catalog order
	var catalogOrder []string
	for _, c := range catalog.Active() {
		catalogOrder = append(catalogOrder, c.ID)
	}
	if len(catalogOrder) > 0 && !slices.Equal(catalogOrder, base.Priority) {
		alt := base
		alt.Priority = catalogOrder
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Catalog Order",
			Settings: alt,
		})
	}

	// Scenario: flip legacy name matching
	flipped := base
	flipped.NameMatching = !base.NameMatching
	name := "Name Matching"
	if base.NameMatching {
		name = "Explicit Aliases Only"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: flipped,
	})

	return scenarios
}
