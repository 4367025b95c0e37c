package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

func materialJSON(r *core.Record) map[string]any {
	input := materialInputFromRecord(r)
	calc := services.CalcMaterial(input)
	return map[string]any{
		"id":                 r.Id,
		"item":               r.GetString("item"),
		"parent":             r.GetString("parent"),
		"shape_category":     input.ShapeCategory,
		"shape":              input.Shape,
		"weight_per_foot":    input.WeightPerFoot,
		"length_ft":          input.LengthFt,
		"quantity":           input.Quantity,
		"stock_length_ft":    input.StockLengthFt,
		"unit_price":         input.UnitPrice,
		"galvanized":         r.GetBool("galvanized"),
		"shop_primed":        r.GetBool("shop_primed"),
		"sort_order":         r.GetFloat("sort_order"),
		"fabricated_weight":  calc.FabricatedWeight,
		"stock_pieces":       calc.StockPieces,
		"stock_weight":       calc.StockWeight,
		"waste_percent":      calc.WastePercent,
		"efficiency_percent": calc.EfficiencyPercent,
		"material_cost":      calc.MaterialCost,
	}
}

// HandleMaterialList returns an item's materials with every derived value
// computed, ordered so sub-components follow their parents.
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		if _, err := app.FindRecordById("estimate_items", itemID); err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("materials: HandleMaterialList: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "item = {:itemId}", "sort_order", 0, 0,
			map[string]any{"itemId": itemID})
		if err != nil {
			log.Printf("materials: HandleMaterialList: query error for item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		byParent := make(map[string][]*core.Record, len(records))
		for _, r := range records {
			byParent[r.GetString("parent")] = append(byParent[r.GetString("parent")], r)
		}

		var out []map[string]any
		var walk func(parentID string)
		walk = func(parentID string) {
			for _, r := range byParent[parentID] {
				out = append(out, materialJSON(r))
				walk(r.Id)
			}
		}
		walk("")

		if out == nil {
			out = []map[string]any{}
		}
		return e.JSON(http.StatusOK, out)
	}
}

type materialBody struct {
	Parent        *string  `json:"parent"`
	ShapeCategory *string  `json:"shape_category"`
	Shape         *string  `json:"shape"`
	WeightPerFoot *float64 `json:"weight_per_foot"`
	LengthFt      *float64 `json:"length_ft"`
	Quantity      *float64 `json:"quantity"`
	StockLengthFt *float64 `json:"stock_length_ft"`
	UnitPrice     *float64 `json:"unit_price"`
	Galvanized    *bool    `json:"galvanized"`
	ShopPrimed    *bool    `json:"shop_primed"`
	SortOrder     *float64 `json:"sort_order"`
}

func applyMaterialBody(r *core.Record, body materialBody) {
	if body.ShapeCategory != nil {
		r.Set("shape_category", *body.ShapeCategory)
	}
	if body.Shape != nil {
		r.Set("shape", *body.Shape)
	}
	if body.WeightPerFoot != nil {
		r.Set("weight_per_foot", *body.WeightPerFoot)
	}
	if body.LengthFt != nil {
		r.Set("length_ft", *body.LengthFt)
	}
	if body.Quantity != nil {
		r.Set("quantity", *body.Quantity)
	}
	if body.StockLengthFt != nil {
		r.Set("stock_length_ft", *body.StockLengthFt)
	}
	if body.UnitPrice != nil {
		r.Set("unit_price", *body.UnitPrice)
	}
	if body.Galvanized != nil {
		r.Set("galvanized", *body.Galvanized)
	}
	if body.ShopPrimed != nil {
		r.Set("shop_primed", *body.ShopPrimed)
	}
	if body.SortOrder != nil {
		r.Set("sort_order", *body.SortOrder)
	}
}

// lookupShapeWeight returns the catalog weight per foot for a designation,
// or 0 when the shape is not in the catalog.
func lookupShapeWeight(app *pocketbase.PocketBase, designation string) float64 {
	col, err := app.FindCollectionByNameOrId("shapes")
	if err != nil {
		return 0
	}
	records, err := app.FindRecordsByFilter(col, "designation = {:designation}", "", 1, 0,
		map[string]any{"designation": designation})
	if err != nil || len(records) == 0 {
		return 0
	}
	return records[0].GetFloat("weight_per_foot")
}

// HandleMaterialCreate adds a material to an item. A shape picked from the
// catalog fills in weight per foot when the caller does not send one; an
// unlisted shape keeps whatever weight the caller typed.
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		item, err := app.FindRecordById("estimate_items", itemID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		var body materialBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if body.Parent != nil && *body.Parent != "" {
			parent, err := app.FindRecordById("materials", *body.Parent)
			if err != nil {
				return apiError(e, http.StatusBadRequest, "Parent material not found")
			}
			if parent.GetString("item") != item.Id {
				return apiError(e, http.StatusBadRequest, "Parent material belongs to a different item")
			}
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("materials: HandleMaterialCreate: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("item", itemID)
		if body.Parent != nil {
			record.Set("parent", *body.Parent)
		}
		applyMaterialBody(record, body)

		if body.WeightPerFoot == nil && body.Shape != nil {
			if wpf := lookupShapeWeight(app, *body.Shape); wpf > 0 {
				record.Set("weight_per_foot", wpf)
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("materials: HandleMaterialCreate: save error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create material")
		}
		return e.JSON(http.StatusCreated, materialJSON(record))
	}
}

// HandleMaterialPatch updates a material and returns the recomputed row.
func HandleMaterialPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("materials", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Material not found")
		}

		var body materialBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		applyMaterialBody(record, body)

		if err := app.Save(record); err != nil {
			log.Printf("materials: HandleMaterialPatch: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update material")
		}
		return e.JSON(http.StatusOK, materialJSON(record))
	}
}

// HandleMaterialDelete removes a material; sub-components cascade with it.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("materials", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Material not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("materials: HandleMaterialDelete: delete error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete material")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}
