// Package services provides the pricing calculation core for steel
// fabrication estimates: weights, stock cutting, fabrication labor,
// markups, recap costs, tax and connection pricing lookups.
package services

import "math"

// MaterialInput carries the raw estimating fields for one steel piece type.
// All lengths are in feet, weights in pounds, unit price in dollars per pound.
type MaterialInput struct {
	ShapeCategory string
	Shape         string
	WeightPerFoot float64
	LengthFt      float64
	Quantity      float64
	StockLengthFt float64
	UnitPrice     float64
}

// MaterialCalc holds every derived value for a single material row.
type MaterialCalc struct {
	FabricatedWeight  float64
	StockPieces       float64
	StockWeight       float64
	WastePercent      float64
	EfficiencyPercent float64
	MaterialCost      float64
}

// FabricatedWeight is the total cut weight before stock rounding.
func FabricatedWeight(m MaterialInput) float64 {
	return m.WeightPerFoot * m.LengthFt * m.Quantity
}

// StockPieceCount returns how many whole stock bars must be purchased to cut
// the requested quantity. When the stock length or cut length is unset the
// piece quantity is returned as-is, so incomplete rows still price sensibly
// during estimating.
func StockPieceCount(m MaterialInput) float64 {
	if m.StockLengthFt <= 0 || m.LengthFt <= 0 {
		return m.Quantity
	}
	piecesPerStock := math.Floor(m.StockLengthFt / m.LengthFt)
	if piecesPerStock <= 0 {
		// Cut piece is longer than one stock bar; one bar per piece.
		return m.Quantity
	}
	return math.Ceil(m.Quantity / piecesPerStock)
}

// StockWeight is the purchased weight: whole bars at full stock length.
func StockWeight(m MaterialInput) float64 {
	return StockPieceCount(m) * m.WeightPerFoot * m.StockLengthFt
}

// WastePercent is the share of purchased weight not present in the cut
// pieces. A non-positive stock weight yields 0, not an error.
func WastePercent(m MaterialInput) float64 {
	stock := StockWeight(m)
	if stock <= 0 {
		return 0
	}
	return (stock - FabricatedWeight(m)) / stock * 100
}

// EfficiencyPercent is the complement of waste.
func EfficiencyPercent(m MaterialInput) float64 {
	return 100 - WastePercent(m)
}

// MaterialCost prices the purchased stock weight, normalized back through
// weight-per-foot. A weight-per-foot of zero substitutes 1 so degenerate
// rows never divide by zero.
func MaterialCost(m MaterialInput) float64 {
	wpf := m.WeightPerFoot
	if wpf <= 0 {
		wpf = 1
	}
	return m.UnitPrice * StockWeight(m) / wpf
}

// CalcMaterial bundles every derived value for one material row.
func CalcMaterial(m MaterialInput) MaterialCalc {
	return MaterialCalc{
		FabricatedWeight:  FabricatedWeight(m),
		StockPieces:       StockPieceCount(m),
		StockWeight:       StockWeight(m),
		WastePercent:      WastePercent(m),
		EfficiencyPercent: EfficiencyPercent(m),
		MaterialCost:      MaterialCost(m),
	}
}
