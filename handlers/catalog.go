package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleShapeList returns the shape catalog, optionally filtered by
// ?category=.
func HandleShapeList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("shapes")
		if err != nil {
			log.Printf("catalog: HandleShapeList: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		filter := ""
		params := map[string]any{}
		if category := e.Request.URL.Query().Get("category"); category != "" {
			filter = "category = {:category}"
			params["category"] = category
		}

		records, err := app.FindRecordsByFilter(col, filter, "designation", 0, 0, params)
		if err != nil {
			log.Printf("catalog: HandleShapeList: query error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, map[string]any{
				"id":              r.Id,
				"category":        r.GetString("category"),
				"designation":     r.GetString("designation"),
				"weight_per_foot": r.GetFloat("weight_per_foot"),
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleTaxCategoryList returns the selectable tax categories.
func HandleTaxCategoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("tax_categories")
		if err != nil {
			log.Printf("catalog: HandleTaxCategoryList: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "", "name", 0, 0, nil)
		if err != nil {
			log.Printf("catalog: HandleTaxCategoryList: query error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, map[string]any{
				"id":                     r.Id,
				"key":                    r.GetString("key"),
				"name":                   r.GetString("name"),
				"rate":                   r.GetFloat("rate"),
				"applies_to_materials":   r.GetBool("applies_to_materials"),
				"applies_to_fabrication": r.GetBool("applies_to_fabrication"),
			})
		}
		return e.JSON(http.StatusOK, out)
	}
}
