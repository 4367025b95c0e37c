package services

import "sort"

// StockListRow is one consolidated procurement line: every top-level material
// across the project sharing the same shape and stock length rolls up here.
type StockListRow struct {
	ShapeCategory string
	Shape         string
	StockLengthFt float64
	Pieces        float64
	Weight        float64
}

// ConsolidateStockList merges top-level materials from every item into one
// procurement list keyed by (shape, stock length). Sub-components are
// excluded; they ship attached to their parents.
func ConsolidateStockList(materials []ItemMaterial) []StockListRow {
	type key struct {
		shape  string
		length float64
	}

	merged := make(map[key]*StockListRow)
	for _, m := range TopLevelMaterials(materials) {
		k := key{shape: m.Input.Shape, length: m.Input.StockLengthFt}
		row, ok := merged[k]
		if !ok {
			row = &StockListRow{
				ShapeCategory: m.Input.ShapeCategory,
				Shape:         m.Input.Shape,
				StockLengthFt: m.Input.StockLengthFt,
			}
			merged[k] = row
		}
		row.Pieces += StockPieceCount(m.Input)
		row.Weight += StockWeight(m.Input)
	}

	rows := make([]StockListRow, 0, len(merged))
	for _, row := range merged {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Shape != rows[j].Shape {
			return rows[i].Shape < rows[j].Shape
		}
		return rows[i].StockLengthFt < rows[j].StockLengthFt
	})
	return rows
}
