package engine

import (
	"github.com/shopspring/decimal"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// FilterUsable splits items into those with a positive quantity and
// positive dimensions/weight, and those that must be rejected.
// Input order is preserved in both slices.
func FilterUsable(items []model.CargoItem) (usable, rejected []model.CargoItem) {
	for _, it := range items {
		if it.Usable() {
			usable = append(usable, it)
		} else {
			rejected = append(rejected, it)
		}
	}
	return usable, rejected
}

// Aggregate reduces cargo items to the bounding requirement: the largest
// length, width and height of any single item, and the total weight over
// all quantities. Quantity never affects the bounding dimensions.
//
// Weights are summed in decimal so any permutation of items yields the
// same total. Items that are not Usable are ignored.
func Aggregate(items []model.CargoItem) model.Requirement {
	var req model.Requirement
	total := decimal.Zero
	for _, it := range items {
		if !it.Usable() {
			continue
		}
		req.LengthRequired = max(req.LengthRequired, it.Length)
		req.WidthRequired = max(req.WidthRequired, it.Width)
		req.HeightRequired = max(req.HeightRequired, it.Height)
		total = total.Add(itemWeight(it))
	}
	req.WeightRequired = total.InexactFloat64()
	return req
}

// itemWeight returns weight * quantity as a decimal.
func itemWeight(it model.CargoItem) decimal.Decimal {
	return decimal.NewFromFloat(it.Weight).Mul(decimal.NewFromInt(int64(it.Quantity)))
}
