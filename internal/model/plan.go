package model

// PlanStatus is the overall outcome of a planning call.
type PlanStatus string

const (
	PlanEmpty      PlanStatus = "empty"      // No usable cargo items, nothing to plan
	PlanOK         PlanStatus = "ok"         // Every unit has a feasible deck arrangement
	PlanInfeasible PlanStatus = "infeasible" // At least one unit failed deck arrangement
	PlanNoUnits    PlanStatus = "no_units"   // Catalog has no active equipment to load
)

// UnitPlan is one transport unit with its assigned cargo and deck layout.
type UnitPlan struct {
	Index      int             `json:"index"` // 1-based
	Equipment  EquipmentClass  `json:"equipment"`
	Items      []CargoItem     `json:"items"`
	Placements []DeckPlacement `json:"placements"`
	Failure    string          `json:"failure,omitempty"`
	Err        error           `json:"-"`
}

// Feasible reports whether the unit's deck arrangement succeeded.
func (u UnitPlan) Feasible() bool {
	return u.Err == nil
}

// UsedLength returns the deck length covered by placements.
func (u UnitPlan) UsedLength() float64 {
	var end float64
	for _, p := range u.Placements {
		if p.End() > end {
			end = p.End()
		}
	}
	return end
}

// LoadedWeight returns the total weight of the items assigned to the unit.
func (u UnitPlan) LoadedWeight() float64 {
	var total float64
	for _, it := range u.Items {
		total += it.TotalWeight()
	}
	return total
}

// LengthUtilization returns used deck length as a percentage of MaxLength.
func (u UnitPlan) LengthUtilization() float64 {
	if u.Equipment.MaxLength <= 0 {
		return 0
	}
	return (u.UsedLength() / u.Equipment.MaxLength) * 100.0
}

// WeightUtilization returns loaded weight as a percentage of MaxWeight.
func (u UnitPlan) WeightUtilization() float64 {
	if u.Equipment.MaxWeight <= 0 {
		return 0
	}
	return (u.LoadedWeight() / u.Equipment.MaxWeight) * 100.0
}

// PlanResult holds the full planning outcome.
type PlanResult struct {
	Status         PlanStatus     `json:"status"`
	Recommendation Recommendation `json:"recommendation"`
	Units          []UnitPlan     `json:"units"`
	Rejected       []CargoItem    `json:"rejected,omitempty"`
	Message        string         `json:"message,omitempty"`
}

// UnitsUsed returns the number of units in the plan.
func (pr PlanResult) UnitsUsed() int {
	return len(pr.Units)
}

// TotalWeightUtilization returns overall loaded weight as a percentage of
// the combined capacity of all units.
func (pr PlanResult) TotalWeightUtilization() float64 {
	var loaded, capacity float64
	for _, u := range pr.Units {
		loaded += u.LoadedWeight()
		capacity += u.Equipment.MaxWeight
	}
	if capacity == 0 {
		return 0
	}
	return (loaded / capacity) * 100.0
}

// Failures returns the errors of all infeasible units.
func (pr PlanResult) Failures() []error {
	var errs []error
	for _, u := range pr.Units {
		if u.Err != nil {
			errs = append(errs, u.Err)
		}
	}
	return errs
}
