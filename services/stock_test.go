package services

import (
	"math"
	"testing"
)

func TestFabricatedWeight(t *testing.T) {
	tests := []struct {
		name   string
		m      MaterialInput
		expect float64
	}{
		{"basic", MaterialInput{WeightPerFoot: 26, LengthFt: 10, Quantity: 2}, 520},
		{"zero length", MaterialInput{WeightPerFoot: 26, LengthFt: 0, Quantity: 2}, 0},
		{"zero weight", MaterialInput{WeightPerFoot: 0, LengthFt: 10, Quantity: 2}, 0},
		{"fractional length", MaterialInput{WeightPerFoot: 26, LengthFt: 57.17, Quantity: 1}, 1486.42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FabricatedWeight(tt.m)
			if !floatClose(got, tt.expect) {
				t.Errorf("FabricatedWeight(%+v) = %v, want %v", tt.m, got, tt.expect)
			}
		})
	}
}

func TestStockPieceCount(t *testing.T) {
	tests := []struct {
		name   string
		m      MaterialInput
		expect float64
	}{
		{"one cut per bar", MaterialInput{LengthFt: 57.17, Quantity: 1, StockLengthFt: 60}, 1},
		{"three cuts per bar", MaterialInput{LengthFt: 10, Quantity: 9, StockLengthFt: 30}, 3},
		{"partial last bar", MaterialInput{LengthFt: 10, Quantity: 10, StockLengthFt: 30}, 4},
		{"cut longer than stock", MaterialInput{LengthFt: 70, Quantity: 5, StockLengthFt: 60}, 5},
		{"no stock length", MaterialInput{LengthFt: 10, Quantity: 7, StockLengthFt: 0}, 7},
		{"no cut length", MaterialInput{LengthFt: 0, Quantity: 7, StockLengthFt: 60}, 7},
		{"exact fit", MaterialInput{LengthFt: 20, Quantity: 6, StockLengthFt: 60}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StockPieceCount(tt.m)
			if got != tt.expect {
				t.Errorf("StockPieceCount(%+v) = %v, want %v", tt.m, got, tt.expect)
			}
		})
	}
}

func TestStockWeight(t *testing.T) {
	m := MaterialInput{WeightPerFoot: 26, LengthFt: 57.17, Quantity: 1, StockLengthFt: 60}
	if got := StockWeight(m); !floatClose(got, 1560) {
		t.Errorf("StockWeight = %v, want 1560", got)
	}
}

// Purchased weight can never be less than the cut weight when both lengths
// are meaningful.
func TestStockWeightNeverBelowFabricatedWeight(t *testing.T) {
	cases := []MaterialInput{
		{WeightPerFoot: 26, LengthFt: 57.17, Quantity: 1, StockLengthFt: 60},
		{WeightPerFoot: 40, LengthFt: 19.5, Quantity: 13, StockLengthFt: 40},
		{WeightPerFoot: 8.2, LengthFt: 3.33, Quantity: 101, StockLengthFt: 20},
		{WeightPerFoot: 120, LengthFt: 60, Quantity: 4, StockLengthFt: 60},
	}
	for _, m := range cases {
		if StockWeight(m) < FabricatedWeight(m)-0.001 {
			t.Errorf("StockWeight(%+v) = %v < FabricatedWeight %v",
				m, StockWeight(m), FabricatedWeight(m))
		}
	}
}

func TestWastePercent(t *testing.T) {
	tests := []struct {
		name   string
		m      MaterialInput
		expect float64
	}{
		{"typical drop", MaterialInput{WeightPerFoot: 26, LengthFt: 57.17, Quantity: 1, StockLengthFt: 60}, (1560 - 1486.42) / 1560 * 100},
		{"exact fit no waste", MaterialInput{WeightPerFoot: 10, LengthFt: 20, Quantity: 3, StockLengthFt: 60}, 0},
		{"zero stock weight", MaterialInput{WeightPerFoot: 0, LengthFt: 10, Quantity: 1, StockLengthFt: 60}, 0},
		{"no stock length", MaterialInput{WeightPerFoot: 26, LengthFt: 10, Quantity: 1, StockLengthFt: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WastePercent(tt.m)
			if !floatClose(got, tt.expect) {
				t.Errorf("WastePercent(%+v) = %v, want %v", tt.m, got, tt.expect)
			}
		})
	}
}

func TestWastePlusEfficiencyIsAlwaysOneHundred(t *testing.T) {
	cases := []MaterialInput{
		{WeightPerFoot: 26, LengthFt: 57.17, Quantity: 1, StockLengthFt: 60},
		{WeightPerFoot: 40, LengthFt: 19.5, Quantity: 13, StockLengthFt: 40},
		{WeightPerFoot: 0, LengthFt: 10, Quantity: 1, StockLengthFt: 60},
		{},
	}
	for _, m := range cases {
		if sum := WastePercent(m) + EfficiencyPercent(m); !floatClose(sum, 100) {
			t.Errorf("waste + efficiency for %+v = %v, want 100", m, sum)
		}
	}
}

func TestMaterialCost(t *testing.T) {
	tests := []struct {
		name   string
		m      MaterialInput
		expect float64
	}{
		// 0.62 * 1560 / 26 = 37.20 under the stock-weight-normalized formula.
		{"w-shape sample row", MaterialInput{WeightPerFoot: 26, LengthFt: 57.17, Quantity: 1, StockLengthFt: 60, UnitPrice: 0.62}, 37.2},
		{"zero weight per foot substitutes 1", MaterialInput{WeightPerFoot: 0, LengthFt: 10, Quantity: 1, StockLengthFt: 60, UnitPrice: 0.5}, 0},
		{"zero unit price", MaterialInput{WeightPerFoot: 26, LengthFt: 10, Quantity: 1, StockLengthFt: 60, UnitPrice: 0}, 0},
		{"exact fit", MaterialInput{WeightPerFoot: 10, LengthFt: 30, Quantity: 2, StockLengthFt: 60, UnitPrice: 0.5}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaterialCost(tt.m)
			if !floatClose(got, tt.expect) {
				t.Errorf("MaterialCost(%+v) = %v, want %v", tt.m, got, tt.expect)
			}
		})
	}
}

// The normalized formula intentionally differs from unitPrice * stockWeight
// whenever the cut length does not divide the stock length evenly.
func TestMaterialCostUsesNormalizedFormula(t *testing.T) {
	m := MaterialInput{WeightPerFoot: 26, LengthFt: 57.17, Quantity: 1, StockLengthFt: 60, UnitPrice: 0.62}
	direct := m.UnitPrice * StockWeight(m)
	got := MaterialCost(m)
	if floatClose(got, direct) {
		t.Fatalf("expected normalized cost to differ from direct cost, both = %v", got)
	}
	if !floatClose(got, 37.2) {
		t.Errorf("MaterialCost = %v, want 37.2", got)
	}
}

func TestCalcMaterial(t *testing.T) {
	m := MaterialInput{WeightPerFoot: 26, LengthFt: 57.17, Quantity: 1, StockLengthFt: 60, UnitPrice: 0.62}
	got := CalcMaterial(m)

	if !floatClose(got.FabricatedWeight, 1486.42) {
		t.Errorf("FabricatedWeight = %v, want 1486.42", got.FabricatedWeight)
	}
	if got.StockPieces != 1 {
		t.Errorf("StockPieces = %v, want 1", got.StockPieces)
	}
	if !floatClose(got.StockWeight, 1560) {
		t.Errorf("StockWeight = %v, want 1560", got.StockWeight)
	}
	if !floatClose(got.MaterialCost, 37.2) {
		t.Errorf("MaterialCost = %v, want 37.2", got.MaterialCost)
	}
	if !floatClose(got.WastePercent+got.EfficiencyPercent, 100) {
		t.Errorf("waste + efficiency = %v, want 100", got.WastePercent+got.EfficiencyPercent)
	}
}

func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}
