package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// eps absorbs floating-point noise in cumulative length and height sums.
const eps = 1e-9

// PlacementReason names the constraint a deck arrangement violated.
type PlacementReason string

const (
	ReasonTooWide    PlacementReason = "width"
	ReasonTooTall    PlacementReason = "height"
	ReasonTooLong    PlacementReason = "length"
	ReasonDeckLength PlacementReason = "deck length"
	ReasonOverWeight PlacementReason = "weight"
)

// PlacementError reports why items cannot be arranged on a unit.
// It wraps model.ErrInfeasiblePlacement.
type PlacementError struct {
	EquipmentID string
	Item        model.ItemRef // zero for unit-wide limits such as total weight
	Reason      PlacementReason
	Value       float64
	Limit       float64
}

func (e *PlacementError) Error() string {
	if e.Item.ItemID == "" {
		return fmt.Sprintf("equipment %s: cumulative %s %.2f exceeds max %.2f", e.EquipmentID, e.Reason, e.Value, e.Limit)
	}
	return fmt.Sprintf("equipment %s: item %s %s %.2f exceeds max %.2f", e.EquipmentID, e.Item, e.Reason, e.Value, e.Limit)
}

func (e *PlacementError) Unwrap() error {
	return model.ErrInfeasiblePlacement
}

// cargoCopy is a single physical unit of a CargoItem.
type cargoCopy struct {
	item  model.CargoItem
	ref   model.ItemRef
	index int // Position of the source item in the input list
}

// expandCopies expands items by quantity, keeping input order.
func expandCopies(items []model.CargoItem) []cargoCopy {
	var copies []cargoCopy
	for i, it := range items {
		for n := 1; n <= it.Quantity; n++ {
			cp := it
			cp.Quantity = 1
			copies = append(copies, cargoCopy{
				item:  cp,
				ref:   model.ItemRef{ItemID: it.ID, Copy: n},
				index: i,
			})
		}
	}
	return copies
}

// sortDeckOrder orders copies by decreasing weight, then decreasing length.
// The sort is stable, so ties keep input order.
func sortDeckOrder(copies []cargoCopy) {
	sort.SliceStable(copies, func(i, j int) bool {
		a, b := copies[i].item, copies[j].item
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.Length > b.Length
	})
}

// Arrange lays out items along the unit's deck. Non-stackable items each
// claim their own span of deck length; stackable items share a position with
// an earlier stackable stack when the stack stays within MaxHeight and the
// item does not overhang the stack's base footprint.
//
// Arrange never truncates: if any item or the cumulative load exceeds the
// unit's limits, it returns a *PlacementError and no placements.
func Arrange(items []model.CargoItem, unit model.EquipmentClass) ([]model.DeckPlacement, error) {
	copies := expandCopies(items)
	sortDeckOrder(copies)
	return arrangeCopies(copies, unit)
}

// stack is one deck position holding a base copy and anything stacked on it.
type stack struct {
	position  float64
	length    float64
	width     float64
	height    float64 // Cumulative height of the stack
	stackable bool
	members   []int // Indices into the placement slice, bottom first
}

// deckState is a unit being loaded one copy at a time. Copies must be offered
// in deck order; a copy accepted by check and committed with add never moves.
type deckState struct {
	unit       model.EquipmentClass
	stacks     []*stack
	placements []model.DeckPlacement
	cursor     float64
	weight     decimal.Decimal
}

func newDeckState(unit model.EquipmentClass) *deckState {
	return &deckState{unit: unit, weight: decimal.Zero}
}

// overWeight reports whether total exceeds limit. A +Inf limit means the
// unit has no weight limit; NaN or -Inf admits nothing.
func overWeight(total decimal.Decimal, limit float64) bool {
	switch {
	case math.IsInf(limit, 1):
		return false
	case math.IsNaN(limit) || math.IsInf(limit, -1):
		return true
	}
	return total.GreaterThan(decimal.NewFromFloat(limit))
}

// exceeds reports v > limit, treating a NaN on either side as a violation.
func exceeds(v, limit float64) bool {
	return !(v <= limit)
}

// check returns the stack c would join, or nil if c would claim a new deck
// position. It fails when c cannot be added to the unit as loaded so far.
func (d *deckState) check(c cargoCopy) (*stack, error) {
	it, unit := c.item, d.unit
	if math.IsNaN(it.Weight) || math.IsInf(it.Weight, 0) {
		return nil, &PlacementError{EquipmentID: unit.ID, Item: c.ref, Reason: ReasonOverWeight, Value: it.Weight, Limit: unit.MaxWeight}
	}
	if next := d.weight.Add(decimal.NewFromFloat(it.Weight)); overWeight(next, unit.MaxWeight) {
		return nil, &PlacementError{EquipmentID: unit.ID, Item: c.ref, Reason: ReasonOverWeight, Value: next.InexactFloat64(), Limit: unit.MaxWeight}
	}

	switch {
	case exceeds(it.Width, unit.MaxWidth):
		return nil, &PlacementError{EquipmentID: unit.ID, Item: c.ref, Reason: ReasonTooWide, Value: it.Width, Limit: unit.MaxWidth}
	case exceeds(it.Height, unit.MaxHeight):
		return nil, &PlacementError{EquipmentID: unit.ID, Item: c.ref, Reason: ReasonTooTall, Value: it.Height, Limit: unit.MaxHeight}
	case exceeds(it.Length, unit.MaxLength):
		return nil, &PlacementError{EquipmentID: unit.ID, Item: c.ref, Reason: ReasonTooLong, Value: it.Length, Limit: unit.MaxLength}
	}

	if it.Stackable {
		if s := findStack(d.stacks, it, unit.MaxHeight); s != nil {
			return s, nil
		}
	}
	if exceeds(d.cursor+it.Length, unit.MaxLength+eps) {
		return nil, &PlacementError{EquipmentID: unit.ID, Item: c.ref, Reason: ReasonDeckLength, Value: d.cursor + it.Length, Limit: unit.MaxLength}
	}
	return nil, nil
}

// add commits c onto s, or onto a new deck position when s is nil. The pair
// must come from a check call with no add in between.
func (d *deckState) add(c cargoCopy, s *stack) {
	it := c.item
	p := model.DeckPlacement{
		Item:        c.ref,
		Description: it.Description,
		Length:      it.Length,
		Width:       it.Width,
		Height:      it.Height,
		Weight:      it.Weight,
	}
	d.weight = d.weight.Add(decimal.NewFromFloat(it.Weight))

	if s != nil {
		p.Position = s.position
		p.Tier = len(s.members)
		p.Elevation = s.height
		s.height += it.Height
		s.members = append(s.members, len(d.placements))
		d.placements = append(d.placements, p)
		return
	}

	p.Position = d.cursor
	d.stacks = append(d.stacks, &stack{
		position:  d.cursor,
		length:    it.Length,
		width:     it.Width,
		height:    it.Height,
		stackable: it.Stackable,
		members:   []int{len(d.placements)},
	})
	d.placements = append(d.placements, p)
	d.cursor += it.Length
}

// layout returns the committed placements sorted by position, then tier,
// with stack neighbors filled in.
func (d *deckState) layout() []model.DeckPlacement {
	placements := make([]model.DeckPlacement, len(d.placements))
	copy(placements, d.placements)

	for _, s := range d.stacks {
		if len(s.members) < 2 {
			continue
		}
		for _, m := range s.members {
			for _, other := range s.members {
				if other != m {
					placements[m].StackedWith = append(placements[m].StackedWith, placements[other].Item)
				}
			}
		}
	}

	sort.SliceStable(placements, func(i, j int) bool {
		if placements[i].Position != placements[j].Position {
			return placements[i].Position < placements[j].Position
		}
		return placements[i].Tier < placements[j].Tier
	})
	return placements
}

// arrangeCopies places copies, already in deck order, onto the unit. The
// cumulative weight is checked before any single copy.
func arrangeCopies(copies []cargoCopy, unit model.EquipmentClass) ([]model.DeckPlacement, error) {
	total := decimal.Zero
	for _, c := range copies {
		if math.IsNaN(c.item.Weight) || math.IsInf(c.item.Weight, 0) {
			// Reported against the copy below
			total = decimal.Zero
			break
		}
		total = total.Add(decimal.NewFromFloat(c.item.Weight))
	}
	if overWeight(total, unit.MaxWeight) {
		return nil, &PlacementError{EquipmentID: unit.ID, Reason: ReasonOverWeight, Value: total.InexactFloat64(), Limit: unit.MaxWeight}
	}

	d := newDeckState(unit)
	for _, c := range copies {
		s, err := d.check(c)
		if err != nil {
			return nil, err
		}
		d.add(c, s)
	}
	return d.layout(), nil
}

// findStack returns the first stackable stack, in deck order, that can take
// the item on top without exceeding maxHeight or overhanging its base.
func findStack(stacks []*stack, it model.CargoItem, maxHeight float64) *stack {
	for _, s := range stacks {
		if !s.stackable {
			continue
		}
		if exceeds(s.height+it.Height, maxHeight+eps) {
			continue
		}
		if it.Length > s.length || it.Width > s.width {
			continue
		}
		return s
	}
	return nil
}
