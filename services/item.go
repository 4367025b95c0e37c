package services

// ItemMaterial pairs a material's estimating fields with its operation list
// and its position in the parent/child tree. Sub-components (a clip angle on
// a beam) reference their parent and are excluded from top-level stock lists
// but still priced into the item.
type ItemMaterial struct {
	ID         string
	ParentID   string
	Input      MaterialInput
	Operations []FabOperation
}

// ItemInput is everything needed to price one bid line.
type ItemInput struct {
	Materials             []ItemMaterial
	GeneralOperations     []FabOperation
	MaterialMarkupPercent float64
	FabMarkupPercent      float64
}

// ItemTotals is the materials-and-fabrication total for one bid line. Recap
// and tax are layered on by callers, never folded in here; the Estimate tab
// reads Total as-is while Summary and Quote add recap and tax themselves.
type ItemTotals struct {
	MaterialCost   float64
	MaterialMarkup float64
	FabCost        float64
	FabMarkup      float64
	Total          float64
}

// ItemMaterialCost sums material cost over every material in the item,
// sub-components included.
func ItemMaterialCost(item ItemInput) float64 {
	var total float64
	for _, m := range item.Materials {
		total += MaterialCost(m.Input)
	}
	return total
}

// ItemFabCost sums every material's operations plus the item's own general
// operations.
func ItemFabCost(item ItemInput) float64 {
	total := FabCost(item.GeneralOperations)
	for _, m := range item.Materials {
		total += FabCost(m.Operations)
	}
	return total
}

// CalcItem applies the item-level markup percentages to the summed costs.
// Markups are multiplicative on the sums, never per-line.
func CalcItem(item ItemInput) ItemTotals {
	matCost := ItemMaterialCost(item)
	fabCost := ItemFabCost(item)
	matMarkup := matCost * item.MaterialMarkupPercent / 100
	fabMarkup := fabCost * item.FabMarkupPercent / 100

	return ItemTotals{
		MaterialCost:   matCost,
		MaterialMarkup: matMarkup,
		FabCost:        fabCost,
		FabMarkup:      fabMarkup,
		Total:          matCost + matMarkup + fabCost + fabMarkup,
	}
}

// BuildMaterialTree indexes materials by parent ID so consumers walk the
// sub-component tree without re-filtering the flat list. Top-level materials
// appear under the empty key.
func BuildMaterialTree(materials []ItemMaterial) map[string][]ItemMaterial {
	tree := make(map[string][]ItemMaterial, len(materials))
	for _, m := range materials {
		tree[m.ParentID] = append(tree[m.ParentID], m)
	}
	return tree
}

// TopLevelMaterials returns materials with no parent reference. Only these
// feed aggregate stock lists.
func TopLevelMaterials(materials []ItemMaterial) []ItemMaterial {
	var top []ItemMaterial
	for _, m := range materials {
		if m.ParentID == "" {
			top = append(top, m)
		}
	}
	return top
}
