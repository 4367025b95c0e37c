package services

// QuoteAlternate is one optional add or deduct line shown on the customer
// quote, never pre-combined into the base bid.
type QuoteAlternate struct {
	Name   string
	Amount float64
	Deduct bool
}

// QuoteExportData holds everything the customer-facing quote PDF needs,
// already computed. Internal adjustments are folded into BaseBid upstream
// and never appear as their own line here.
type QuoteExportData struct {
	ProjectName    string
	Customer       string
	Contact        string
	QuoteDate      string
	DeliveryOption string
	BaseBid        float64
	Deducts        []QuoteAlternate
	Adds           []QuoteAlternate
	Exclusions     []string
	Qualifications []string
}

// EstimateExportRow is one bid line on the internal estimate sheet with its
// full cost breakdown.
type EstimateExportRow struct {
	Name           string
	Group          string
	MaterialCost   float64
	MaterialMarkup float64
	FabCost        float64
	FabMarkup      float64
	ItemTotal      float64
	RecapTotal     float64
	Tax            float64
	LoadedTotal    float64
}

// AdjustmentRow is one internal-only project-level adjustment.
type AdjustmentRow struct {
	Description string
	Amount      float64
}

// EstimateExportData holds the internal job-folder estimate sheet contents.
type EstimateExportData struct {
	ProjectName string
	CreatedDate string
	Rows        []EstimateExportRow
	Adjustments []AdjustmentRow
	BaseBid     float64
	GrandTotal  float64
}

// StockListExportData holds the consolidated procurement list for export.
type StockListExportData struct {
	ProjectName string
	CreatedDate string
	Rows        []StockListRow
	TotalPieces float64
	TotalWeight float64
}

// BuildStockListExport consolidates project materials and totals them.
func BuildStockListExport(projectName, createdDate string, materials []ItemMaterial) StockListExportData {
	data := StockListExportData{
		ProjectName: projectName,
		CreatedDate: createdDate,
		Rows:        ConsolidateStockList(materials),
	}
	for _, row := range data.Rows {
		data.TotalPieces += row.Pieces
		data.TotalWeight += row.Weight
	}
	return data
}
