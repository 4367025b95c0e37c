package services

// TaxCategory declares a single rate and which of the two bases it gates.
// A category may apply to materials, fabrication, both, or neither.
type TaxCategory struct {
	Key                  string
	Name                 string
	Rate                 float64
	AppliesToMaterials   bool
	AppliesToFabrication bool
}

// CalcTax applies the category rate to each selected base. A nil category
// means the tax is not applicable and yields zero, never an error.
func CalcTax(cat *TaxCategory, materialTotal, fabTotal float64) float64 {
	if cat == nil {
		return 0
	}
	var tax float64
	if cat.AppliesToMaterials {
		tax += cat.Rate * materialTotal
	}
	if cat.AppliesToFabrication {
		tax += cat.Rate * fabTotal
	}
	return tax
}
