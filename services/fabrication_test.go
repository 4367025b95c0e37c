package services

import "testing"

func TestOperationCost(t *testing.T) {
	tests := []struct {
		name   string
		op     FabOperation
		expect float64
	}{
		{"basic", FabOperation{Hours: 2, Rate: 85}, 170},
		{"zero hours", FabOperation{Hours: 0, Rate: 85}, 0},
		{"zero rate", FabOperation{Hours: 3, Rate: 0}, 0},
		{"fractional hours", FabOperation{Hours: 1.25, Rate: 80}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OperationCost(tt.op)
			if !floatClose(got, tt.expect) {
				t.Errorf("OperationCost(%+v) = %v, want %v", tt.op, got, tt.expect)
			}
		})
	}
}

// Cost must track hours/rate edits immediately; there is no cached state to
// go stale.
func TestOperationCostReflectsEdits(t *testing.T) {
	op := FabOperation{Category: "Welding", Name: "Fillet Weld", Hours: 2, Rate: 85}
	if got := OperationCost(op); !floatClose(got, 170) {
		t.Fatalf("initial cost = %v, want 170", got)
	}

	op.Hours = 3
	if got := OperationCost(op); !floatClose(got, 255) {
		t.Errorf("cost after hours edit = %v, want 255", got)
	}

	op.Rate = 90
	if got := OperationCost(op); !floatClose(got, 270) {
		t.Errorf("cost after rate edit = %v, want 270", got)
	}
}

func TestOperationDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		op     FabOperation
		expect string
	}{
		{"vocabulary name", FabOperation{Category: "Cutting", Name: "Saw Cut"}, "Saw Cut"},
		{"custom override", FabOperation{Category: "Custom", Name: "Custom", CustomName: "Field Drill 13/16"}, "Field Drill 13/16"},
		{"custom without text falls back", FabOperation{Category: "Custom", Name: "Custom"}, "Custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OperationDisplayName(tt.op); got != tt.expect {
				t.Errorf("OperationDisplayName(%+v) = %q, want %q", tt.op, got, tt.expect)
			}
		})
	}
}

func TestFabCost(t *testing.T) {
	ops := []FabOperation{
		{Name: "Saw Cut", Hours: 1, Rate: 85},
		{Name: "Cope", Hours: 0.5, Rate: 85},
		{Category: "Custom", CustomName: "Stud Welding", Hours: 2, Rate: 90},
	}
	want := 85 + 42.5 + 180.0
	if got := FabCost(ops); !floatClose(got, want) {
		t.Errorf("FabCost = %v, want %v", got, want)
	}

	if got := FabCost(nil); got != 0 {
		t.Errorf("FabCost(nil) = %v, want 0", got)
	}
}

// fabCost(ops1 ++ ops2) == fabCost(ops1) + fabCost(ops2)
func TestFabCostIsLinear(t *testing.T) {
	ops1 := []FabOperation{
		{Name: "Saw Cut", Hours: 1.5, Rate: 85},
		{Name: "Drill", Hours: 0.75, Rate: 85},
	}
	ops2 := []FabOperation{
		{Name: "Weld", Hours: 3.2, Rate: 92},
	}

	combined := append(append([]FabOperation{}, ops1...), ops2...)
	if got, want := FabCost(combined), FabCost(ops1)+FabCost(ops2); !floatClose(got, want) {
		t.Errorf("FabCost(ops1 ++ ops2) = %v, want %v", got, want)
	}
}

// The custom name changes display only, never the computed cost.
func TestCustomNameDoesNotAffectCost(t *testing.T) {
	base := FabOperation{Category: "Custom", Hours: 2, Rate: 85}
	named := base
	named.CustomName = "Special Galv Touch-Up"

	if OperationCost(base) != OperationCost(named) {
		t.Errorf("custom name changed cost: %v vs %v", OperationCost(base), OperationCost(named))
	}
}
