package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// Planner selects equipment and lays out cargo. It holds no mutable state
// and is safe for concurrent use.
type Planner struct {
	Settings model.PlannerSettings
}

func New(settings model.PlannerSettings) *Planner {
	settings.Priority = append([]string(nil), settings.Priority...)
	return &Planner{Settings: settings}
}

// Select returns the first class, in priority order, whose maximum envelope
// fits req. This is a first-match search: it favors a predictable,
// explainable choice over a globally cheapest one. Classes not reachable from
// a priority token are never chosen here. When nothing fits, Select falls
// back to the largest available class (see selectFallback).
func (p *Planner) Select(req model.Requirement, catalog model.Catalog) model.Recommendation {
	rec, _ := p.selectClass(req, catalog)
	return rec
}

// selectClass is Select that also returns the chosen active class, so callers
// plan against the exact entry that was evaluated. The class is zero when the
// status is StatusNoEquipment.
func (p *Planner) selectClass(req model.Requirement, catalog model.Catalog) (model.Recommendation, model.EquipmentClass) {
	active := catalog.Active()

	for _, token := range p.Settings.Priority {
		for _, class := range p.resolve(token, active, catalog) {
			if !Fits(req, class) {
				continue
			}
			oversize, overweight := permitFlags(req, class)
			return model.Recommendation{
				EquipmentID:      class.ID,
				EquipmentName:    class.Name,
				Requirement:      req,
				OversizePermit:   oversize,
				OverweightPermit: overweight,
				Reason:           selectedReason(class, oversize, overweight),
				Status:           model.StatusSelected,
			}, class
		}
	}

	return p.selectFallback(req, active, catalog)
}

// resolve maps a priority token onto active classes. Explicit aliases come
// first, then an exact (case-insensitive) id match, then, only in legacy
// NameMatching mode, case-insensitive substring matches on the class name.
// Results are in resolution order without duplicates.
func (p *Planner) resolve(token string, active []model.EquipmentClass, catalog model.Catalog) []model.EquipmentClass {
	var out []model.EquipmentClass
	seen := make(map[string]bool)
	add := func(c model.EquipmentClass) {
		if !seen[c.ID] {
			seen[c.ID] = true
			out = append(out, c)
		}
	}

	for _, id := range catalog.AliasTargets(token) {
		for _, c := range active {
			if c.ID == id {
				add(c)
			}
		}
	}

	tok := strings.TrimSpace(token)
	for _, c := range active {
		if strings.EqualFold(c.ID, tok) {
			add(c)
		}
	}

	if p.Settings.NameMatching && tok != "" {
		lower := strings.ToLower(tok)
		for _, c := range active {
			if strings.Contains(strings.ToLower(c.Name), lower) {
				add(c)
			}
		}
	}
	return out
}

// largestClass returns the class designated for multi-unit fallback: the
// first active class reached by the last priority token, otherwise the
// active class with the greatest MaxWeight (catalog order breaks ties).
func (p *Planner) largestClass(active []model.EquipmentClass, catalog model.Catalog) (model.EquipmentClass, bool) {
	if n := len(p.Settings.Priority); n > 0 {
		if resolved := p.resolve(p.Settings.Priority[n-1], active, catalog); len(resolved) > 0 {
			return resolved[0], true
		}
	}

	if len(active) == 0 {
		return model.EquipmentClass{}, false
	}
	best := active[0]
	for _, c := range active[1:] {
		if c.MaxWeight > best.MaxWeight {
			best = c
		}
	}
	return best, true
}

// selectFallback handles requirements no prioritized class accommodates.
// Weight beyond the largest class yields a multi-unit plan; a blocking linear
// dimension yields a special-handling recommendation with no unit count.
// Either way both permit flags are set.
func (p *Planner) selectFallback(req model.Requirement, active []model.EquipmentClass, catalog model.Catalog) (model.Recommendation, model.EquipmentClass) {
	largest, ok := p.largestClass(active, catalog)
	if !ok {
		return model.Recommendation{
			Requirement:      req,
			OversizePermit:   true,
			OverweightPermit: true,
			Reason:           "No active equipment classes in catalog; shipment requires manual planning",
			Status:           model.StatusNoEquipment,
		}, model.EquipmentClass{}
	}

	rec := model.Recommendation{
		EquipmentID:      largest.ID,
		EquipmentName:    largest.Name,
		Requirement:      req,
		OversizePermit:   true,
		OverweightPermit: true,
	}

	if req.WeightRequired > largest.MaxWeight {
		count := UnitsNeeded(req.WeightRequired, largest.MaxWeight)
		reason := fmt.Sprintf("Total weight %.0f exceeds %s capacity of %.0f; %d units required",
			req.WeightRequired, largest.Name, largest.MaxWeight, count)
		rec.Status = model.StatusMultiUnit
		rec.Reason = reason
		rec.MultiUnit = &model.MultiUnitPlan{
			Count:     count,
			Equipment: largest,
			Reason:    reason,
		}
		return rec, largest
	}

	axes := exceededAxes(req, largest)
	rec.Status = model.StatusSpecialHandling
	if len(axes) == 0 {
		// Only reachable when the largest class sits outside the priority list.
		rec.OversizePermit, rec.OverweightPermit = permitFlags(req, largest)
		rec.Reason = fmt.Sprintf("No prioritized equipment accommodates the cargo; falling back to %s", largest.Name)
		return rec, largest
	}
	rec.Reason = fmt.Sprintf("Shipment exceeds standard equipment (%s over %s limits); requires special handling",
		strings.Join(axes, ", "), largest.Name)
	return rec, largest
}

func selectedReason(class model.EquipmentClass, oversize, overweight bool) string {
	switch {
	case oversize && overweight:
		return fmt.Sprintf("%s accommodates the cargo; oversize and overweight permits required", class.Name)
	case oversize:
		return fmt.Sprintf("%s accommodates the cargo; oversize permit required", class.Name)
	case overweight:
		return fmt.Sprintf("%s accommodates the cargo; overweight permit required", class.Name)
	default:
		return fmt.Sprintf("%s accommodates the cargo within legal limits", class.Name)
	}
}
