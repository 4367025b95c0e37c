package services

import "strings"

// Priced field keys shared by connection categories and per-beam overrides.
const (
	FieldLaborHours       = "labor_hours"
	FieldConnection       = "connection_cost"
	FieldMomentConnection = "moment_connection_cost"
	FieldSingleCope       = "single_cope_cost"
	FieldDoubleCope       = "double_cope_cost"
	FieldStraightCut      = "straight_cut_cost"
	FieldMiterCut         = "miter_cut_cost"
	FieldSingleCopeMiter  = "single_cope_miter_cost"
	FieldDoubleCopeMiter  = "double_cope_miter_cost"
)

// PricedFields lists every field the resolver prices, in display order.
var PricedFields = []string{
	FieldLaborHours,
	FieldConnection,
	FieldMomentConnection,
	FieldSingleCope,
	FieldDoubleCope,
	FieldStraightCut,
	FieldMiterCut,
	FieldSingleCopeMiter,
	FieldDoubleCopeMiter,
}

// ConnectionCategory is the admin-maintained fallback pricing for a grouping
// of beam sizes ("W16, W18", "C & MC"). A field absent from Prices has no
// catalog value. ProvidesTakeoff means the whole grouping must be priced
// manually per project.
type ConnectionCategory struct {
	Name            string
	BeamSizes       string
	Prices          map[string]float64
	ProvidesTakeoff bool
}

// BeamOverride carries the per-exact-beam-size overrides for a subset of the
// priced fields, plus per-field takeoff flags.
type BeamOverride struct {
	BeamSize  string
	Overrides map[string]float64
	Takeoff   map[string]bool
}

// FieldResolution is the outcome for one priced field. ManualEntry is a
// first-class state meaning no computed value exists; it is never surfaced
// as a zero dollar amount.
type FieldResolution struct {
	Amount       float64
	ManualEntry  bool
	FromCategory bool
}

// BeamPricing is the fully resolved pricing for one beam size.
type BeamPricing struct {
	BeamSize string
	Category string
	Fields   map[string]FieldResolution
}

// NormalizeBeamSize canonicalizes a beam size key for lookup.
func NormalizeBeamSize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ResolveBeamPricing resolves every priced field for a beam: its own takeoff
// flag wins, then its override value, then the linked category's value, then
// manual entry when neither side prices the field.
func ResolveBeamPricing(beam BeamOverride, cat ConnectionCategory) BeamPricing {
	resolved := BeamPricing{
		BeamSize: NormalizeBeamSize(beam.BeamSize),
		Category: cat.Name,
		Fields:   make(map[string]FieldResolution, len(PricedFields)),
	}

	for _, field := range PricedFields {
		if beam.Takeoff[field] {
			resolved.Fields[field] = FieldResolution{ManualEntry: true}
			continue
		}
		if v, ok := beam.Overrides[field]; ok {
			resolved.Fields[field] = FieldResolution{Amount: v}
			continue
		}
		if cat.ProvidesTakeoff {
			resolved.Fields[field] = FieldResolution{ManualEntry: true}
			continue
		}
		if v, ok := cat.Prices[field]; ok {
			resolved.Fields[field] = FieldResolution{Amount: v, FromCategory: true}
			continue
		}
		resolved.Fields[field] = FieldResolution{ManualEntry: true}
	}

	return resolved
}

// MergeBeamOverride applies a partial update: only the supplied fields change,
// everything else is left untouched. Unknown field keys are ignored.
func MergeBeamOverride(beam *BeamOverride, fields map[string]float64, takeoff map[string]bool) {
	if beam.Overrides == nil {
		beam.Overrides = make(map[string]float64)
	}
	if beam.Takeoff == nil {
		beam.Takeoff = make(map[string]bool)
	}
	for _, field := range PricedFields {
		if v, ok := fields[field]; ok {
			beam.Overrides[field] = v
		}
		if flag, ok := takeoff[field]; ok {
			beam.Takeoff[field] = flag
		}
	}
}

// PricingRates is the single global rate configuration: shop labor rate,
// average material price per pound, and the two quantity discount tiers.
// Callers load it once and pass it in explicitly.
type PricingRates struct {
	ShopRate         float64
	AvgMaterialPrice float64
	DiscountOver20   float64
	DiscountOver100  float64
}

// QuantityDiscountPercent returns the discount tier triggered by the piece
// count: above 100 pieces the deeper tier applies, above 20 the first tier,
// otherwise none.
func QuantityDiscountPercent(r PricingRates, pieces float64) float64 {
	switch {
	case pieces > 100:
		return r.DiscountOver100
	case pieces > 20:
		return r.DiscountOver20
	default:
		return 0
	}
}

// DiscountedConnectionCost applies the quantity discount to a per-piece
// connection cost.
func DiscountedConnectionCost(base float64, r PricingRates, pieces float64) float64 {
	return base * (1 - QuantityDiscountPercent(r, pieces)/100)
}
