package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

func recapJSON(input services.RecapInput) map[string]any {
	totals := services.CalcRecap(input)

	lines := make([]map[string]any, 0, len(input.CustomLines))
	for _, l := range input.CustomLines {
		lines = append(lines, map[string]any{"name": l.Name, "hours": l.Hours, "rate": l.Rate})
	}

	return map[string]any{
		"installation_hours": input.InstallationHours,
		"installation_rate":  input.InstallationRate,
		"drafting_hours":     input.DraftingHours,
		"drafting_rate":      input.DraftingRate,
		"engineering_hours":  input.EngineeringHours,
		"engineering_rate":   input.EngineeringRate,
		"project_mgmt_hours": input.ProjectMgmtHours,
		"project_mgmt_rate":  input.ProjectMgmtRate,
		"shipping_cost":      input.ShippingCost,
		"custom_lines":       lines,
		"markup_percent":     input.MarkupPercent,
		"installation":       totals.Installation,
		"drafting":           totals.Drafting,
		"engineering":        totals.Engineering,
		"project_mgmt":       totals.ProjectMgmt,
		"shipping":           totals.Shipping,
		"custom":             totals.Custom,
		"subtotal":           totals.Subtotal,
		"total":              totals.Total,
	}
}

// HandleRecapView returns an item's recap costs with every line recomputed.
// Items that have no recap yet get all-zero values.
func HandleRecapView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		if _, err := app.FindRecordById("estimate_items", itemID); err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		input, err := loadRecapInput(app, itemID)
		if err != nil {
			log.Printf("recap: HandleRecapView: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, recapJSON(input))
	}
}

type recapBody struct {
	InstallationHours *float64 `json:"installation_hours"`
	InstallationRate  *float64 `json:"installation_rate"`
	DraftingHours     *float64 `json:"drafting_hours"`
	DraftingRate      *float64 `json:"drafting_rate"`
	EngineeringHours  *float64 `json:"engineering_hours"`
	EngineeringRate   *float64 `json:"engineering_rate"`
	ProjectMgmtHours  *float64 `json:"project_mgmt_hours"`
	ProjectMgmtRate   *float64 `json:"project_mgmt_rate"`
	ShippingCost      *float64 `json:"shipping_cost"`
	MarkupPercent     *float64 `json:"markup_percent"`
	CustomLines       []struct {
		Name  string  `json:"name"`
		Hours float64 `json:"hours"`
		Rate  float64 `json:"rate"`
	} `json:"custom_lines"`
}

// HandleRecapUpsert creates or updates an item's single recap record and
// returns the recomputed totals.
func HandleRecapUpsert(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		if _, err := app.FindRecordById("estimate_items", itemID); err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		var body recapBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		col, err := app.FindCollectionByNameOrId("recap_costs")
		if err != nil {
			log.Printf("recap: HandleRecapUpsert: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		existing, err := app.FindRecordsByFilter(col, "item = {:itemId}", "", 1, 0,
			map[string]any{"itemId": itemID})
		if err != nil {
			log.Printf("recap: HandleRecapUpsert: query error for item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		var record *core.Record
		if len(existing) > 0 {
			record = existing[0]
		} else {
			record = core.NewRecord(col)
			record.Set("item", itemID)
		}

		set := func(field string, v *float64) {
			if v != nil {
				record.Set(field, *v)
			}
		}
		set("installation_hours", body.InstallationHours)
		set("installation_rate", body.InstallationRate)
		set("drafting_hours", body.DraftingHours)
		set("drafting_rate", body.DraftingRate)
		set("engineering_hours", body.EngineeringHours)
		set("engineering_rate", body.EngineeringRate)
		set("project_mgmt_hours", body.ProjectMgmtHours)
		set("project_mgmt_rate", body.ProjectMgmtRate)
		set("shipping_cost", body.ShippingCost)
		set("markup_percent", body.MarkupPercent)
		if body.CustomLines != nil {
			record.Set("custom_lines", body.CustomLines)
		}

		if err := app.Save(record); err != nil {
			log.Printf("recap: HandleRecapUpsert: save error for item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Could not save recap")
		}
		return e.JSON(http.StatusOK, recapJSON(recapInputFromRecord(record)))
	}
}
