package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// CargoItem represents one line of freight to transport.
// Dimensions share a single linear unit per request; Weight is per single unit.
type CargoItem struct {
	ID          string  `json:"id" yaml:"id"`
	Description string  `json:"description" yaml:"description"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Length      float64 `json:"length" yaml:"length"`
	Width       float64 `json:"width" yaml:"width"`
	Height      float64 `json:"height" yaml:"height"`
	Weight      float64 `json:"weight" yaml:"weight"` // per unit, not multiplied by quantity
	Stackable   bool    `json:"stackable" yaml:"stackable"`
}

func NewCargoItem(description string, l, w, h, weight float64, qty int) CargoItem {
	return CargoItem{
		ID:          uuid.New().String()[:8],
		Description: description,
		Quantity:    qty,
		Length:      l,
		Width:       w,
		Height:      h,
		Weight:      weight,
	}
}

// Usable reports whether the item has a positive quantity and positive,
// finite dimensions and weight.
func (c CargoItem) Usable() bool {
	if c.Quantity < 1 {
		return false
	}
	for _, v := range []float64{c.Length, c.Width, c.Height, c.Weight} {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// TotalWeight returns Weight multiplied by Quantity.
func (c CargoItem) TotalWeight() float64 {
	return c.Weight * float64(c.Quantity)
}

// EquipmentClass is one transport-unit type with its physical and
// permit-free envelopes.
type EquipmentClass struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// Absolute physical limits
	MaxLength float64 `json:"max_length" yaml:"max_length"`
	MaxWidth  float64 `json:"max_width" yaml:"max_width"`
	MaxHeight float64 `json:"max_height" yaml:"max_height"`
	MaxWeight float64 `json:"max_weight" yaml:"max_weight"`

	// Permit-free thresholds
	LegalLength float64 `json:"legal_length" yaml:"legal_length"`
	LegalWidth  float64 `json:"legal_width" yaml:"legal_width"`
	LegalHeight float64 `json:"legal_height" yaml:"legal_height"`
	LegalWeight float64 `json:"legal_weight" yaml:"legal_weight"`

	IsActive bool `json:"is_active" yaml:"is_active"`
}

func NewEquipmentClass(name string, maxL, maxW, maxH, maxWeight float64) EquipmentClass {
	return EquipmentClass{
		ID:          uuid.New().String()[:8],
		Name:        name,
		MaxLength:   maxL,
		MaxWidth:    maxW,
		MaxHeight:   maxH,
		MaxWeight:   maxWeight,
		LegalLength: maxL,
		LegalWidth:  maxW,
		LegalHeight: maxH,
		LegalWeight: maxWeight,
		IsActive:    true,
	}
}

// Validate reports catalog entries whose legal envelope exceeds the
// physical one on some axis, or whose physical limits are not positive.
// A +Inf limit is accepted and means the axis is unlimited; NaN is not.
// The planner tolerates such entries; this is for hosts that want to warn.
func (e EquipmentClass) Validate() error {
	if e.hasNaNMax() || math.IsNaN(e.LegalLength) || math.IsNaN(e.LegalWidth) ||
		math.IsNaN(e.LegalHeight) || math.IsNaN(e.LegalWeight) {
		return fmt.Errorf("equipment %q: limits must be numbers", e.ID)
	}
	if e.MaxLength <= 0 || e.MaxWidth <= 0 || e.MaxHeight <= 0 || e.MaxWeight <= 0 {
		return fmt.Errorf("equipment %q: max dimensions and weight must be positive", e.ID)
	}
	axes := []struct {
		name       string
		legal, max float64
	}{
		{"length", e.LegalLength, e.MaxLength},
		{"width", e.LegalWidth, e.MaxWidth},
		{"height", e.LegalHeight, e.MaxHeight},
		{"weight", e.LegalWeight, e.MaxWeight},
	}
	for _, a := range axes {
		if a.legal > a.max {
			return fmt.Errorf("equipment %q: legal %s %.2f exceeds max %.2f", e.ID, a.name, a.legal, a.max)
		}
	}
	return nil
}

func (e EquipmentClass) hasNaNMax() bool {
	return math.IsNaN(e.MaxLength) || math.IsNaN(e.MaxWidth) || math.IsNaN(e.MaxHeight) || math.IsNaN(e.MaxWeight)
}

// Requirement is the bounding box and total mass a cargo set demands.
type Requirement struct {
	LengthRequired float64 `json:"length_required"`
	WidthRequired  float64 `json:"width_required"`
	HeightRequired float64 `json:"height_required"`
	WeightRequired float64 `json:"weight_required"`
}

func (r Requirement) String() string {
	return fmt.Sprintf("%.2f x %.2f x %.2f, %.2f", r.LengthRequired, r.WidthRequired, r.HeightRequired, r.WeightRequired)
}

// RecommendationStatus tells a clean single-unit fit apart from the fallbacks.
type RecommendationStatus string

const (
	StatusSelected        RecommendationStatus = "selected"         // A prioritized class fits the requirement
	StatusMultiUnit       RecommendationStatus = "multi_unit"       // Weight forces several units of the largest class
	StatusSpecialHandling RecommendationStatus = "special_handling" // A dimension exceeds every prioritized class
	StatusNoEquipment     RecommendationStatus = "no_equipment"     // Catalog has no active class at all
)

// MultiUnitPlan describes a weight-driven split across identical units.
type MultiUnitPlan struct {
	Count     int            `json:"count"`
	Equipment EquipmentClass `json:"equipment"`
	Reason    string         `json:"reason"`
}

// Recommendation is the equipment choice for a requirement.
type Recommendation struct {
	EquipmentID      string               `json:"equipment_id"`
	EquipmentName    string               `json:"equipment_name"`
	Requirement      Requirement          `json:"requirement"`
	OversizePermit   bool                 `json:"oversize_permit"`
	OverweightPermit bool                 `json:"overweight_permit"`
	Reason           string               `json:"reason"`
	Status           RecommendationStatus `json:"status"`
	MultiUnit        *MultiUnitPlan       `json:"multi_unit,omitempty"`
}

// PermitRequired reports whether either permit flag is set.
func (r Recommendation) PermitRequired() bool {
	return r.OversizePermit || r.OverweightPermit
}

// ItemRef identifies one physical copy of a cargo item.
type ItemRef struct {
	ItemID string `json:"item_id"`
	Copy   int    `json:"copy"` // 1-based copy index within the item's quantity
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s#%d", r.ItemID, r.Copy)
}

// DeckPlacement is one copy positioned on a unit's deck.
type DeckPlacement struct {
	Item        ItemRef   `json:"item"`
	Description string    `json:"description"`
	Position    float64   `json:"position"`  // Offset from the front of the deck along the travel axis
	Tier        int       `json:"tier"`      // 0 = on the deck, 1 = first stacked layer, ...
	Elevation   float64   `json:"elevation"` // Height of the bottom face above the deck
	Length      float64   `json:"length"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Weight      float64   `json:"weight"`
	StackedWith []ItemRef `json:"stacked_with,omitempty"`
}

// End returns the deck offset where this placement's footprint ends.
func (p DeckPlacement) End() float64 {
	return p.Position + p.Length
}

// Top returns the elevation of this placement's top face.
func (p DeckPlacement) Top() float64 {
	return p.Elevation + p.Height
}
