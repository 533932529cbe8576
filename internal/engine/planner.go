package engine

import (
	"fmt"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// Plan runs the full pipeline: positivity screening, aggregation, equipment
// selection, splitting across units and deck arrangement for each unit.
// It always returns a result; failures are reported in the result's Status,
// Message and per-unit Failure fields.
func (p *Planner) Plan(items []model.CargoItem, catalog model.Catalog) model.PlanResult {
	usable, rejected := FilterUsable(items)
	if len(usable) == 0 {
		return model.PlanResult{
			Status:   model.PlanEmpty,
			Rejected: rejected,
			Message:  "Nothing to plan: " + model.ErrEmptyInput.Error(),
		}
	}

	req := Aggregate(usable)
	rec, class := p.selectClass(req, catalog)

	result := model.PlanResult{
		Status:         model.PlanOK,
		Recommendation: rec,
		Rejected:       rejected,
	}

	if rec.Status == model.StatusNoEquipment {
		result.Status = model.PlanNoUnits
		result.Message = rec.Reason
		return result
	}

	minUnits := 1
	if rec.MultiUnit != nil {
		minUnits = rec.MultiUnit.Count
	}

	groups := partitionCopies(expandCopies(usable), class, minUnits)
	for i, g := range groups {
		unit := model.UnitPlan{
			Index:     i + 1,
			Equipment: class,
			Items:     regroup(g),
		}
		placements, err := arrangeCopies(g, class)
		if err != nil {
			unit.Err = err
			unit.Failure = err.Error()
			result.Status = model.PlanInfeasible
		} else {
			unit.Placements = placements
		}
		result.Units = append(result.Units, unit)
	}

	switch {
	case rec.Status == model.StatusSelected && len(result.Units) > 1:
		// The bounding box fits one unit but the deck cannot hold every item.
		reason := fmt.Sprintf("Cargo exceeds the deck capacity of one %s; %d units required", class.Name, len(result.Units))
		result.Recommendation.MultiUnit = &model.MultiUnitPlan{
			Count:     len(result.Units),
			Equipment: class,
			Reason:    reason,
		}
		result.Message = reason
	case rec.MultiUnit != nil && len(result.Units) > rec.MultiUnit.Count:
		result.Message = fmt.Sprintf("Deck arrangement needs %d units of %s; weight alone requires %d",
			len(result.Units), class.Name, rec.MultiUnit.Count)
	}

	if result.Status == model.PlanInfeasible && result.Message == "" {
		result.Message = fmt.Sprintf("%d of %d units cannot be arranged", len(result.Failures()), len(result.Units))
	}
	return result
}
