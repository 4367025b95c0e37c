package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

func itemJSON(r *core.Record, totals services.ItemTotals) map[string]any {
	return map[string]any{
		"id":                      r.Id,
		"project":                 r.GetString("project"),
		"name":                    r.GetString("name"),
		"description":             r.GetString("description"),
		"drawing_ref":             r.GetString("drawing_ref"),
		"breakout_group":          string(services.ParseBreakoutGroup(r.GetString("breakout_group"))),
		"material_markup_percent": r.GetFloat("material_markup_percent"),
		"fab_markup_percent":      r.GetFloat("fab_markup_percent"),
		"sort_order":              r.GetFloat("sort_order"),
		"material_cost":           totals.MaterialCost,
		"material_markup":         totals.MaterialMarkup,
		"fab_cost":                totals.FabCost,
		"fab_markup":              totals.FabMarkup,
		"total":                   totals.Total,
	}
}

// HandleItemList returns a project's bid lines with computed totals.
func HandleItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		col, err := app.FindCollectionByNameOrId("estimate_items")
		if err != nil {
			log.Printf("items: HandleItemList: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "project = {:projectId}", "sort_order", 0, 0,
			map[string]any{"projectId": projectID})
		if err != nil {
			log.Printf("items: HandleItemList: query error for project %s: %v", projectID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			input, err := loadItemInput(app, r)
			if err != nil {
				log.Printf("items: HandleItemList: %v", err)
				return apiError(e, http.StatusInternalServerError, "Internal error")
			}
			out = append(out, itemJSON(r, services.CalcItem(input)))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleItemView returns one bid line with its full cost breakdown, recap
// and tax included.
func HandleItemView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		item, err := app.FindRecordById("estimate_items", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		input, err := loadItemInput(app, item)
		if err != nil {
			log.Printf("items: HandleItemView: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		totals := services.CalcItem(input)

		recapInput, err := loadRecapInput(app, item.Id)
		if err != nil {
			log.Printf("items: HandleItemView: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		recap := services.CalcRecap(recapInput)

		project, err := app.FindRecordById("projects", item.GetString("project"))
		if err != nil {
			log.Printf("items: HandleItemView: project lookup for item %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		tax := services.CalcTax(loadProjectTax(app, project),
			totals.MaterialCost+totals.MaterialMarkup,
			totals.FabCost+totals.FabMarkup)

		body := itemJSON(item, totals)
		body["recap_total"] = recap.Total
		body["tax"] = tax
		body["loaded_total"] = totals.Total + recap.Total + tax
		return e.JSON(http.StatusOK, body)
	}
}

type itemBody struct {
	Name                  *string  `json:"name"`
	Description           *string  `json:"description"`
	DrawingRef            *string  `json:"drawing_ref"`
	BreakoutGroup         *string  `json:"breakout_group"`
	MaterialMarkupPercent *float64 `json:"material_markup_percent"`
	FabMarkupPercent      *float64 `json:"fab_markup_percent"`
	SortOrder             *float64 `json:"sort_order"`
}

func applyItemBody(r *core.Record, body itemBody) {
	if body.Name != nil {
		r.Set("name", *body.Name)
	}
	if body.Description != nil {
		r.Set("description", *body.Description)
	}
	if body.DrawingRef != nil {
		r.Set("drawing_ref", *body.DrawingRef)
	}
	if body.BreakoutGroup != nil {
		r.Set("breakout_group", string(services.ParseBreakoutGroup(*body.BreakoutGroup)))
	}
	if body.MaterialMarkupPercent != nil {
		r.Set("material_markup_percent", *body.MaterialMarkupPercent)
	}
	if body.FabMarkupPercent != nil {
		r.Set("fab_markup_percent", *body.FabMarkupPercent)
	}
	if body.SortOrder != nil {
		r.Set("sort_order", *body.SortOrder)
	}
}

// HandleItemCreate adds a bid line to a project.
func HandleItemCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var body itemBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if body.Name == nil || *body.Name == "" {
			return apiError(e, http.StatusBadRequest, "Item name is required")
		}

		col, err := app.FindCollectionByNameOrId("estimate_items")
		if err != nil {
			log.Printf("items: HandleItemCreate: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("breakout_group", "base")
		applyItemBody(record, body)

		if err := app.Save(record); err != nil {
			log.Printf("items: HandleItemCreate: save error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create item")
		}
		return e.JSON(http.StatusCreated, itemJSON(record, services.ItemTotals{}))
	}
}

// HandleItemPatch updates a bid line's fields and returns recomputed totals.
func HandleItemPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("estimate_items", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		var body itemBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		applyItemBody(record, body)

		if err := app.Save(record); err != nil {
			log.Printf("items: HandleItemPatch: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update item")
		}

		input, err := loadItemInput(app, record)
		if err != nil {
			log.Printf("items: HandleItemPatch: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, itemJSON(record, services.CalcItem(input)))
	}
}

// HandleItemDelete removes a bid line and cascades to its materials,
// operations and recap.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("estimate_items", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("items: HandleItemDelete: delete error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete item")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}
