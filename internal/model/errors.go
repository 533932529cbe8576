package model

import "errors"

var (
	// ErrEmptyInput means no cargo item survived positivity screening.
	ErrEmptyInput = errors.New("no usable cargo dimensions")
	// ErrInfeasiblePlacement means a unit's deck cannot hold its assigned items.
	ErrInfeasiblePlacement = errors.New("infeasible deck placement")
	// ErrNoEquipment means the catalog has no active equipment class.
	ErrNoEquipment = errors.New("no active equipment class")
)

// Err summarizes the result as an error value: ErrEmptyInput for an empty
// plan, ErrNoEquipment when nothing could be loaded, the joined unit
// failures for an infeasible plan, nil otherwise.
func (pr PlanResult) Err() error {
	switch pr.Status {
	case PlanEmpty:
		return ErrEmptyInput
	case PlanNoUnits:
		return ErrNoEquipment
	case PlanInfeasible:
		return errors.Join(pr.Failures()...)
	}
	return nil
}
