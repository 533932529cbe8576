package engine

import "github.com/piwi3910/LoadPlanner/internal/model"

// Fits reports whether req fits within the class's maximum envelope.
// Equality on every axis counts as fitting.
func Fits(req model.Requirement, class model.EquipmentClass) bool {
	return req.LengthRequired <= class.MaxLength &&
		req.WidthRequired <= class.MaxWidth &&
		req.HeightRequired <= class.MaxHeight &&
		req.WeightRequired <= class.MaxWeight
}

// permitFlags compares req against the class's legal envelope. The two flags
// are independent and do not assume legal <= max.
func permitFlags(req model.Requirement, class model.EquipmentClass) (oversize, overweight bool) {
	oversize = req.LengthRequired > class.LegalLength ||
		req.WidthRequired > class.LegalWidth ||
		req.HeightRequired > class.LegalHeight
	overweight = req.WeightRequired > class.LegalWeight
	return oversize, overweight
}

// exceededAxes names the linear axes on which req is larger than the class maximum.
func exceededAxes(req model.Requirement, class model.EquipmentClass) []string {
	var axes []string
	if req.LengthRequired > class.MaxLength {
		axes = append(axes, "length")
	}
	if req.WidthRequired > class.MaxWidth {
		axes = append(axes, "width")
	}
	if req.HeightRequired > class.MaxHeight {
		axes = append(axes, "height")
	}
	return axes
}
