package services

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateQuotePDF(t *testing.T) {
	data := QuoteExportData{
		ProjectName:    "Riverside Office Building",
		Customer:       "Acme General Contractors",
		Contact:        "Pat Estimator",
		QuoteDate:      "2026-08-29",
		DeliveryOption: "FOB Jobsite",
		BaseBid:        1050,
		Deducts: []QuoteAlternate{
			{Name: "Delete Canopy Framing", Amount: 200, Deduct: true},
		},
		Adds: []QuoteAlternate{
			{Name: "Add Roof Screen", Amount: 3500},
		},
		Exclusions:     []string{"Field painting", "Anchor bolts by others"},
		Qualifications: []string{"Quote valid 30 days"},
	}

	result, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotePDF() returned empty bytes")
	}
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateQuotePDF_NoAlternates(t *testing.T) {
	data := QuoteExportData{
		ProjectName: "Small Job",
		QuoteDate:   "2026-08-29",
		BaseBid:     500,
	}
	result, err := GenerateQuotePDF(data)
	if err != nil {
		t.Fatalf("GenerateQuotePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateQuotePDF() returned empty bytes")
	}
}

func TestGenerateEstimatePDF(t *testing.T) {
	data := EstimateExportData{
		ProjectName: "Riverside Office Building",
		CreatedDate: "2026-08-29",
		Rows: []EstimateExportRow{
			{Name: "Level 2 Framing Beams", Group: "base", MaterialCost: 5000, MaterialMarkup: 500, FabCost: 3000, FabMarkup: 600, ItemTotal: 9100, RecapTotal: 1200, Tax: 400, LoadedTotal: 10700},
			{Name: "Delete Canopy", Group: "deduct", ItemTotal: 200, LoadedTotal: 200},
		},
		Adjustments: []AdjustmentRow{{Description: "Fuel surcharge", Amount: 50}},
		BaseBid:     10750,
		GrandTotal:  10950,
	}

	result, err := GenerateEstimatePDF(data)
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateStockListExcel(t *testing.T) {
	data := StockListExportData{
		ProjectName: "Riverside Office Building",
		CreatedDate: "2026-08-29",
		Rows: []StockListRow{
			{ShapeCategory: "Wide-Flange", Shape: "W16X26", StockLengthFt: 60, Pieces: 5, Weight: 7800},
			{ShapeCategory: "Channel", Shape: "C8X11.5", StockLengthFt: 30, Pieces: 2, Weight: 690},
		},
		TotalPieces: 7,
		TotalWeight: 8490,
	}

	result, err := GenerateStockListExcel(data)
	if err != nil {
		t.Fatalf("GenerateStockListExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateStockListExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Stock List" {
		t.Errorf("expected sheet name 'Stock List', got %v", sheets)
	}

	shape, _ := f.GetCellValue(sheets[0], "B5")
	if shape != "W16X26" {
		t.Errorf("expected first data row shape W16X26, got %q", shape)
	}
}

func TestGenerateStockListExcel_Empty(t *testing.T) {
	data := StockListExportData{ProjectName: "Empty", CreatedDate: "2026-08-29"}
	result, err := GenerateStockListExcel(data)
	if err != nil {
		t.Fatalf("GenerateStockListExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateStockListExcel() returned empty bytes")
	}
}

func TestBuildStockListExport(t *testing.T) {
	materials := []ItemMaterial{
		{ID: "1", Input: MaterialInput{Shape: "W16X26", WeightPerFoot: 26, LengthFt: 10, Quantity: 3, StockLengthFt: 30}},
		{ID: "2", Input: MaterialInput{Shape: "W16X26", WeightPerFoot: 26, LengthFt: 10, Quantity: 3, StockLengthFt: 30}},
	}
	data := BuildStockListExport("Proj", "2026-08-29", materials)

	if len(data.Rows) != 1 {
		t.Fatalf("expected 1 consolidated row, got %d", len(data.Rows))
	}
	if !floatClose(data.TotalPieces, 2) {
		t.Errorf("TotalPieces = %v, want 2", data.TotalPieces)
	}
	if !floatClose(data.TotalWeight, 2*26*30) {
		t.Errorf("TotalWeight = %v, want %v", data.TotalWeight, 2.0*26*30)
	}
}
