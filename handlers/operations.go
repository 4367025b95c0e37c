package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

func operationJSON(r *core.Record) map[string]any {
	op := operationFromRecord(r)
	return map[string]any{
		"id":           r.Id,
		"material":     r.GetString("material"),
		"item":         r.GetString("item"),
		"category":     op.Category,
		"name":         op.Name,
		"custom_name":  op.CustomName,
		"display_name": services.OperationDisplayName(op),
		"hours":        op.Hours,
		"rate":         op.Rate,
		"cost":         services.OperationCost(op),
		"sort_order":   r.GetFloat("sort_order"),
	}
}

type operationBody struct {
	Material   *string  `json:"material"`
	Item       *string  `json:"item"`
	Category   *string  `json:"category"`
	Name       *string  `json:"name"`
	CustomName *string  `json:"custom_name"`
	Hours      *float64 `json:"hours"`
	Rate       *float64 `json:"rate"`
	SortOrder  *float64 `json:"sort_order"`
}

func applyOperationBody(r *core.Record, body operationBody) {
	if body.Category != nil {
		r.Set("category", *body.Category)
	}
	if body.Name != nil {
		r.Set("name", *body.Name)
	}
	if body.CustomName != nil {
		r.Set("custom_name", *body.CustomName)
	}
	if body.Hours != nil {
		r.Set("hours", *body.Hours)
	}
	if body.Rate != nil {
		r.Set("rate", *body.Rate)
	}
	if body.SortOrder != nil {
		r.Set("sort_order", *body.SortOrder)
	}
	// The cached cost column always reflects the stored hours and rate.
	r.Set("cost", r.GetFloat("hours")*r.GetFloat("rate"))
}

// HandleOperationCreate adds a fabrication operation. The body names exactly
// one owner: a material for per-piece work, or an item for general labor.
func HandleOperationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body operationBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		hasMaterial := body.Material != nil && *body.Material != ""
		hasItem := body.Item != nil && *body.Item != ""
		if hasMaterial == hasItem {
			return apiError(e, http.StatusBadRequest, "Operation needs exactly one of material or item")
		}

		col, err := app.FindCollectionByNameOrId("fab_operations")
		if err != nil {
			log.Printf("operations: HandleOperationCreate: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		if hasMaterial {
			if _, err := app.FindRecordById("materials", *body.Material); err != nil {
				return apiError(e, http.StatusNotFound, "Material not found")
			}
			record.Set("material", *body.Material)
		} else {
			if _, err := app.FindRecordById("estimate_items", *body.Item); err != nil {
				return apiError(e, http.StatusNotFound, "Item not found")
			}
			record.Set("item", *body.Item)
		}
		applyOperationBody(record, body)

		if err := app.Save(record); err != nil {
			log.Printf("operations: HandleOperationCreate: save error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create operation")
		}
		return e.JSON(http.StatusCreated, operationJSON(record))
	}
}

// HandleOperationPatch updates an operation and refreshes its cached cost.
func HandleOperationPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("fab_operations", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Operation not found")
		}

		var body operationBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		applyOperationBody(record, body)

		if err := app.Save(record); err != nil {
			log.Printf("operations: HandleOperationPatch: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update operation")
		}
		return e.JSON(http.StatusOK, operationJSON(record))
	}
}

// HandleOperationDelete removes an operation.
func HandleOperationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("fab_operations", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Operation not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("operations: HandleOperationDelete: delete error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete operation")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}
