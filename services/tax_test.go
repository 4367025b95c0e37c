package services

import "testing"

func TestCalcTax(t *testing.T) {
	materialsOnly := &TaxCategory{Key: "tx_materials", Rate: 0.0825, AppliesToMaterials: true}
	fabOnly := &TaxCategory{Key: "tx_fab", Rate: 0.0825, AppliesToFabrication: true}
	both := &TaxCategory{Key: "tx_full", Rate: 0.06, AppliesToMaterials: true, AppliesToFabrication: true}
	neither := &TaxCategory{Key: "exempt", Rate: 0.0825}

	tests := []struct {
		name     string
		cat      *TaxCategory
		material float64
		fab      float64
		expect   float64
	}{
		{"materials only", materialsOnly, 1000, 500, 82.5},
		{"fabrication only", fabOnly, 1000, 500, 41.25},
		{"both bases one rate", both, 1000, 500, 90},
		{"exempt applies to neither", neither, 1000, 500, 0},
		{"unknown category is zero", nil, 1000, 500, 0},
		{"zero bases", both, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcTax(tt.cat, tt.material, tt.fab)
			if !floatClose(got, tt.expect) {
				t.Errorf("CalcTax(%v, %v, %v) = %v, want %v",
					tt.cat, tt.material, tt.fab, got, tt.expect)
			}
		})
	}
}
