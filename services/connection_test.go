package services

import "testing"

func testCategory() ConnectionCategory {
	return ConnectionCategory{
		Name:      "W16, W18",
		BeamSizes: "W16, W18",
		Prices: map[string]float64{
			FieldLaborHours:       1.5,
			FieldConnection:       85,
			FieldSingleCope:       22,
			FieldDoubleCope:       38,
			FieldStraightCut:      12,
			FieldMiterCut:         18,
			FieldSingleCopeMiter:  34,
			FieldDoubleCopeMiter:  48,
			FieldMomentConnection: 240,
		},
	}
}

func TestNormalizeBeamSize(t *testing.T) {
	tests := []struct {
		in     string
		expect string
	}{
		{" w16x26 ", "W16X26"},
		{"W16X26", "W16X26"},
		{"c8x11.5", "C8X11.5"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeBeamSize(tt.in); got != tt.expect {
			t.Errorf("NormalizeBeamSize(%q) = %q, want %q", tt.in, got, tt.expect)
		}
	}
}

func TestResolveBeamPricingOverrideWins(t *testing.T) {
	beam := BeamOverride{
		BeamSize:  "w16x26",
		Overrides: map[string]float64{FieldConnection: 95},
	}
	got := ResolveBeamPricing(beam, testCategory())

	if got.BeamSize != "W16X26" {
		t.Errorf("BeamSize = %q, want normalized W16X26", got.BeamSize)
	}

	conn := got.Fields[FieldConnection]
	if conn.ManualEntry {
		t.Fatal("override field resolved as manual entry")
	}
	if !floatClose(conn.Amount, 95) {
		t.Errorf("connection cost = %v, want override 95", conn.Amount)
	}
	if conn.FromCategory {
		t.Error("override field flagged as category fallback")
	}
}

func TestResolveBeamPricingCategoryFallback(t *testing.T) {
	beam := BeamOverride{BeamSize: "W16X26"}
	got := ResolveBeamPricing(beam, testCategory())

	cope := got.Fields[FieldSingleCope]
	if cope.ManualEntry {
		t.Fatal("category-priced field resolved as manual entry")
	}
	if !floatClose(cope.Amount, 22) {
		t.Errorf("single cope = %v, want category 22", cope.Amount)
	}
	if !cope.FromCategory {
		t.Error("fallback value not flagged FromCategory")
	}
}

// A takeoff field is a manual-entry state, never a numeric zero.
func TestResolveBeamPricingTakeoff(t *testing.T) {
	beam := BeamOverride{
		BeamSize: "W16X26",
		Overrides: map[string]float64{
			FieldMomentConnection: 300, // present but takeoff still wins
		},
		Takeoff: map[string]bool{FieldMomentConnection: true},
	}
	got := ResolveBeamPricing(beam, testCategory())

	moment := got.Fields[FieldMomentConnection]
	if !moment.ManualEntry {
		t.Fatal("takeoff field not resolved as manual entry")
	}
	if moment.Amount != 0 {
		t.Errorf("manual-entry field carries amount %v, want 0", moment.Amount)
	}
}

func TestResolveBeamPricingCategoryTakeoff(t *testing.T) {
	cat := testCategory()
	cat.ProvidesTakeoff = true

	beam := BeamOverride{
		BeamSize:  "W16X26",
		Overrides: map[string]float64{FieldConnection: 95},
	}
	got := ResolveBeamPricing(beam, cat)

	// The beam's own override still prices its field.
	if got.Fields[FieldConnection].ManualEntry {
		t.Error("beam override suppressed by category takeoff")
	}
	// Fields without overrides fall to manual entry instead of category values.
	if !got.Fields[FieldSingleCope].ManualEntry {
		t.Error("category takeoff did not force manual entry for unoverridden field")
	}
}

func TestResolveBeamPricingMissingEverywhere(t *testing.T) {
	cat := ConnectionCategory{Name: "Misc"}
	got := ResolveBeamPricing(BeamOverride{BeamSize: "L4X4"}, cat)

	for _, field := range PricedFields {
		if !got.Fields[field].ManualEntry {
			t.Errorf("field %s with no value anywhere not resolved as manual entry", field)
		}
	}
}

func TestMergeBeamOverridePartialUpdate(t *testing.T) {
	beam := BeamOverride{
		BeamSize: "W16X26",
		Overrides: map[string]float64{
			FieldConnection: 95,
			FieldSingleCope: 25,
		},
		Takeoff: map[string]bool{FieldMomentConnection: true},
	}

	MergeBeamOverride(&beam, map[string]float64{FieldConnection: 110}, map[string]bool{FieldStraightCut: true})

	if !floatClose(beam.Overrides[FieldConnection], 110) {
		t.Errorf("connection override = %v, want updated 110", beam.Overrides[FieldConnection])
	}
	if !floatClose(beam.Overrides[FieldSingleCope], 25) {
		t.Errorf("untouched single cope = %v, want 25", beam.Overrides[FieldSingleCope])
	}
	if !beam.Takeoff[FieldMomentConnection] {
		t.Error("untouched takeoff flag was cleared")
	}
	if !beam.Takeoff[FieldStraightCut] {
		t.Error("supplied takeoff flag not applied")
	}
}

func TestMergeBeamOverrideIgnoresUnknownFields(t *testing.T) {
	beam := BeamOverride{BeamSize: "W16X26"}
	MergeBeamOverride(&beam, map[string]float64{"bogus_field": 1}, nil)
	if _, ok := beam.Overrides["bogus_field"]; ok {
		t.Error("unknown field key was merged")
	}
}

func TestQuantityDiscountPercent(t *testing.T) {
	rates := PricingRates{DiscountOver20: 5, DiscountOver100: 12}
	tests := []struct {
		pieces float64
		expect float64
	}{
		{1, 0},
		{20, 0},
		{21, 5},
		{100, 5},
		{101, 12},
		{500, 12},
	}
	for _, tt := range tests {
		if got := QuantityDiscountPercent(rates, tt.pieces); got != tt.expect {
			t.Errorf("QuantityDiscountPercent(%v) = %v, want %v", tt.pieces, got, tt.expect)
		}
	}
}

func TestDiscountedConnectionCost(t *testing.T) {
	rates := PricingRates{DiscountOver20: 5, DiscountOver100: 12}
	if got := DiscountedConnectionCost(100, rates, 50); !floatClose(got, 95) {
		t.Errorf("DiscountedConnectionCost = %v, want 95", got)
	}
	if got := DiscountedConnectionCost(100, rates, 10); !floatClose(got, 100) {
		t.Errorf("DiscountedConnectionCost below tier = %v, want 100", got)
	}
}
