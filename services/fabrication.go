package services

// CustomOperationCategory marks an operation whose display name comes from
// the estimator's free text rather than the controlled vocabulary.
const CustomOperationCategory = "Custom"

// FabOperation is one labor operation applied to a material or generally to
// an estimate item. Cost is always hours times rate; any stored cost field is
// a cache, never the source of truth.
type FabOperation struct {
	Category   string
	Name       string
	CustomName string
	Hours      float64
	Rate       float64
}

// OperationCost recomputes the derived cost from current hours and rate.
func OperationCost(op FabOperation) float64 {
	return op.Hours * op.Rate
}

// OperationDisplayName returns the label shown on estimates and exports.
// The name never participates in the cost formula.
func OperationDisplayName(op FabOperation) string {
	if op.Category == CustomOperationCategory && op.CustomName != "" {
		return op.CustomName
	}
	return op.Name
}

// FabCost sums hours times rate over the operation list.
func FabCost(ops []FabOperation) float64 {
	var total float64
	for _, op := range ops {
		total += OperationCost(op)
	}
	return total
}
