package engine

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// UnitsNeeded returns ceil(totalWeight / unitMaxWeight), computed in decimal
// so that a total exactly divisible by the unit capacity never rounds up.
// It returns 0 when either weight is not positive or is NaN, and 1 for a
// positive total against a unit with no weight limit (+Inf).
func UnitsNeeded(totalWeight, unitMaxWeight float64) int {
	if !(unitMaxWeight > 0) || !(totalWeight > 0) || math.IsInf(totalWeight, 1) {
		return 0
	}
	if math.IsInf(unitMaxWeight, 1) {
		return 1
	}
	ratio := decimal.NewFromFloat(totalWeight).Div(decimal.NewFromFloat(unitMaxWeight))
	return int(ratio.Ceil().IntPart())
}

// Partition distributes items across units of the given class, using as few
// units as first-fit decreasing allows. At least minUnits units are offered
// before new ones are opened. Each returned group holds CargoItems with the
// quantity assigned to that unit, in input order.
//
// An item copy that cannot be arranged even on an empty unit still gets a
// unit of its own, so the caller's arrangement surfaces the failure instead
// of the item silently disappearing.
func Partition(items []model.CargoItem, class model.EquipmentClass, minUnits int) [][]model.CargoItem {
	groups := partitionCopies(expandCopies(items), class, minUnits)
	out := make([][]model.CargoItem, len(groups))
	for i, g := range groups {
		out[i] = regroup(g)
	}
	return out
}

// loadingUnit is one unit under construction during partitioning.
type loadingUnit struct {
	deck   *deckState
	copies []cargoCopy
	closed bool // Holds a copy that cannot be arranged; takes nothing more
}

// partitionCopies runs first-fit decreasing over copies. Each unit keeps its
// deck state, so a trial costs one check against that state rather than a
// fresh arrangement. The returned groups keep deck order so they can be
// passed straight to arrangeCopies.
func partitionCopies(copies []cargoCopy, class model.EquipmentClass, minUnits int) [][]cargoCopy {
	sortDeckOrder(copies)

	units := make([]*loadingUnit, max(minUnits, 0))
	for i := range units {
		units[i] = &loadingUnit{deck: newDeckState(class)}
	}

	for _, c := range copies {
		placed := false
		for _, u := range units {
			if u.closed {
				continue
			}
			if s, err := u.deck.check(c); err == nil {
				u.deck.add(c, s)
				u.copies = append(u.copies, c)
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		u := &loadingUnit{deck: newDeckState(class), copies: []cargoCopy{c}}
		if s, err := u.deck.check(c); err == nil {
			u.deck.add(c, s)
		} else {
			u.closed = true
		}
		units = append(units, u)
	}

	// Drop offered units that received nothing
	var kept [][]cargoCopy
	for _, u := range units {
		if len(u.copies) > 0 {
			kept = append(kept, u.copies)
		}
	}
	return kept
}

// regroup folds copies back into CargoItems, summing quantities per source
// item and ordering by the item's position in the original input.
func regroup(copies []cargoCopy) []model.CargoItem {
	counts := make(map[int]int)
	var order []int
	byIndex := make(map[int]model.CargoItem)
	for _, c := range copies {
		if _, ok := counts[c.index]; !ok {
			order = append(order, c.index)
			byIndex[c.index] = c.item
		}
		counts[c.index]++
	}
	sort.Ints(order)

	items := make([]model.CargoItem, 0, len(order))
	for _, idx := range order {
		it := byIndex[idx]
		it.Quantity = counts[idx]
		items = append(items, it)
	}
	return items
}
