// Package handlers wires the estimating API: project and item CRUD, the
// pricing endpoints and the quote/estimate/stock-list exports.
package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

// apiError writes a JSON error body with the given status.
func apiError(e *core.RequestEvent, status int, msg string) error {
	return e.JSON(status, map[string]any{"error": msg})
}

func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// recordFloatMap decodes a JSON field holding a string-to-number map.
func recordFloatMap(r *core.Record, field string) map[string]float64 {
	raw := r.Get(field)
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// recordBoolMap decodes a JSON field holding a string-to-bool map.
func recordBoolMap(r *core.Record, field string) map[string]bool {
	raw := r.Get(field)
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// recordStringList decodes a JSON field holding a list of strings.
func recordStringList(r *core.Record, field string) []string {
	raw := r.Get(field)
	if raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	return list
}

// materialInputFromRecord maps a materials record to the calculation input.
func materialInputFromRecord(r *core.Record) services.MaterialInput {
	return services.MaterialInput{
		ShapeCategory: r.GetString("shape_category"),
		Shape:         r.GetString("shape"),
		WeightPerFoot: r.GetFloat("weight_per_foot"),
		LengthFt:      r.GetFloat("length_ft"),
		Quantity:      r.GetFloat("quantity"),
		StockLengthFt: r.GetFloat("stock_length_ft"),
		UnitPrice:     r.GetFloat("unit_price"),
	}
}

func operationFromRecord(r *core.Record) services.FabOperation {
	return services.FabOperation{
		Category:   r.GetString("category"),
		Name:       r.GetString("name"),
		CustomName: r.GetString("custom_name"),
		Hours:      r.GetFloat("hours"),
		Rate:       r.GetFloat("rate"),
	}
}

// loadItemInput assembles the full calculation input for one estimate item:
// its materials (sub-components included) with their operations, plus the
// item-level general operations.
func loadItemInput(app *pocketbase.PocketBase, item *core.Record) (services.ItemInput, error) {
	input := services.ItemInput{
		MaterialMarkupPercent: item.GetFloat("material_markup_percent"),
		FabMarkupPercent:      item.GetFloat("fab_markup_percent"),
	}

	matCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return input, fmt.Errorf("could not find materials collection: %w", err)
	}
	opsCol, err := app.FindCollectionByNameOrId("fab_operations")
	if err != nil {
		return input, fmt.Errorf("could not find fab_operations collection: %w", err)
	}

	mats, err := app.FindRecordsByFilter(matCol, "item = {:itemId}", "sort_order", 0, 0,
		map[string]any{"itemId": item.Id})
	if err != nil {
		return input, fmt.Errorf("could not query materials for item %s: %w", item.Id, err)
	}

	for _, mat := range mats {
		opRecords, err := app.FindRecordsByFilter(opsCol, "material = {:matId}", "sort_order", 0, 0,
			map[string]any{"matId": mat.Id})
		if err != nil {
			return input, fmt.Errorf("could not query operations for material %s: %w", mat.Id, err)
		}
		var ops []services.FabOperation
		for _, op := range opRecords {
			ops = append(ops, operationFromRecord(op))
		}
		input.Materials = append(input.Materials, services.ItemMaterial{
			ID:         mat.Id,
			ParentID:   mat.GetString("parent"),
			Input:      materialInputFromRecord(mat),
			Operations: ops,
		})
	}

	generalOps, err := app.FindRecordsByFilter(opsCol, "item = {:itemId} && material = ''", "sort_order", 0, 0,
		map[string]any{"itemId": item.Id})
	if err != nil {
		return input, fmt.Errorf("could not query general operations for item %s: %w", item.Id, err)
	}
	for _, op := range generalOps {
		input.GeneralOperations = append(input.GeneralOperations, operationFromRecord(op))
	}

	return input, nil
}

// loadRecapInput returns the recap input for an item, or a zero input when
// no recap record exists yet.
func loadRecapInput(app *pocketbase.PocketBase, itemID string) (services.RecapInput, error) {
	col, err := app.FindCollectionByNameOrId("recap_costs")
	if err != nil {
		return services.RecapInput{}, fmt.Errorf("could not find recap_costs collection: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "item = {:itemId}", "", 1, 0,
		map[string]any{"itemId": itemID})
	if err != nil {
		return services.RecapInput{}, fmt.Errorf("could not query recap for item %s: %w", itemID, err)
	}
	if len(records) == 0 {
		return services.RecapInput{}, nil
	}
	return recapInputFromRecord(records[0]), nil
}

func recapInputFromRecord(r *core.Record) services.RecapInput {
	input := services.RecapInput{
		InstallationHours: r.GetFloat("installation_hours"),
		InstallationRate:  r.GetFloat("installation_rate"),
		DraftingHours:     r.GetFloat("drafting_hours"),
		DraftingRate:      r.GetFloat("drafting_rate"),
		EngineeringHours:  r.GetFloat("engineering_hours"),
		EngineeringRate:   r.GetFloat("engineering_rate"),
		ProjectMgmtHours:  r.GetFloat("project_mgmt_hours"),
		ProjectMgmtRate:   r.GetFloat("project_mgmt_rate"),
		ShippingCost:      r.GetFloat("shipping_cost"),
		MarkupPercent:     r.GetFloat("markup_percent"),
	}

	raw := r.Get("custom_lines")
	if raw != nil {
		if data, err := json.Marshal(raw); err == nil {
			var lines []struct {
				Name  string  `json:"name"`
				Hours float64 `json:"hours"`
				Rate  float64 `json:"rate"`
			}
			if err := json.Unmarshal(data, &lines); err == nil {
				for _, l := range lines {
					input.CustomLines = append(input.CustomLines, services.RecapLine{
						Name: l.Name, Hours: l.Hours, Rate: l.Rate,
					})
				}
			}
		}
	}
	return input
}

// loadProjectTax looks up a project's tax category record by key. A project
// with no tax category (or an unknown key) is untaxed.
func loadProjectTax(app *pocketbase.PocketBase, project *core.Record) *services.TaxCategory {
	key := project.GetString("tax_category")
	if key == "" {
		return nil
	}
	col, err := app.FindCollectionByNameOrId("tax_categories")
	if err != nil {
		return nil
	}
	records, err := app.FindRecordsByFilter(col, "key = {:key}", "", 1, 0,
		map[string]any{"key": key})
	if err != nil || len(records) == 0 {
		return nil
	}
	r := records[0]
	return &services.TaxCategory{
		Key:                 r.GetString("key"),
		Name:                r.GetString("name"),
		Rate:                r.GetFloat("rate"),
		AppliesToMaterials:  r.GetBool("applies_to_materials"),
		AppliesToFabrication: r.GetBool("applies_to_fabrication"),
	}
}
