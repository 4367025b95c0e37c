package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

func connectionCategoryFromRecord(r *core.Record) services.ConnectionCategory {
	return services.ConnectionCategory{
		Name:            r.GetString("name"),
		BeamSizes:       r.GetString("beam_sizes"),
		Prices:          recordFloatMap(r, "prices"),
		ProvidesTakeoff: r.GetBool("provides_takeoff"),
	}
}

func beamOverrideFromRecord(r *core.Record) services.BeamOverride {
	return services.BeamOverride{
		BeamSize:  r.GetString("beam_size"),
		Overrides: recordFloatMap(r, "overrides"),
		Takeoff:   recordBoolMap(r, "takeoff"),
	}
}

func categoryJSON(r *core.Record) map[string]any {
	cat := connectionCategoryFromRecord(r)
	prices := cat.Prices
	if prices == nil {
		prices = map[string]float64{}
	}
	return map[string]any{
		"id":               r.Id,
		"name":             cat.Name,
		"beam_sizes":       cat.BeamSizes,
		"prices":           prices,
		"provides_takeoff": cat.ProvidesTakeoff,
	}
}

// HandleConnectionCategoryList returns the connection pricing catalog.
func HandleConnectionCategoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("connection_categories")
		if err != nil {
			log.Printf("connections: HandleConnectionCategoryList: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "", "name", 0, 0, nil)
		if err != nil {
			log.Printf("connections: HandleConnectionCategoryList: query error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, categoryJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

type categoryBody struct {
	Name            *string            `json:"name"`
	BeamSizes       *string            `json:"beam_sizes"`
	Prices          map[string]float64 `json:"prices"`
	ProvidesTakeoff *bool              `json:"provides_takeoff"`
}

func applyCategoryBody(r *core.Record, body categoryBody) {
	if body.Name != nil {
		r.Set("name", *body.Name)
	}
	if body.BeamSizes != nil {
		r.Set("beam_sizes", *body.BeamSizes)
	}
	if body.Prices != nil {
		// Unknown price keys are dropped rather than stored.
		clean := make(map[string]float64, len(body.Prices))
		for _, key := range services.PricedFields {
			if v, ok := body.Prices[key]; ok {
				clean[key] = v
			}
		}
		r.Set("prices", clean)
	}
	if body.ProvidesTakeoff != nil {
		r.Set("provides_takeoff", *body.ProvidesTakeoff)
	}
}

// HandleConnectionCategoryCreate adds a pricing category.
func HandleConnectionCategoryCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body categoryBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if body.Name == nil || *body.Name == "" {
			return apiError(e, http.StatusBadRequest, "Category name is required")
		}

		col, err := app.FindCollectionByNameOrId("connection_categories")
		if err != nil {
			log.Printf("connections: HandleConnectionCategoryCreate: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		applyCategoryBody(record, body)

		if err := app.Save(record); err != nil {
			log.Printf("connections: HandleConnectionCategoryCreate: save error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create category")
		}
		return e.JSON(http.StatusCreated, categoryJSON(record))
	}
}

// HandleConnectionCategoryPatch updates a pricing category.
func HandleConnectionCategoryPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("connection_categories", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Category not found")
		}

		var body categoryBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		applyCategoryBody(record, body)

		if err := app.Save(record); err != nil {
			log.Printf("connections: HandleConnectionCategoryPatch: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update category")
		}
		return e.JSON(http.StatusOK, categoryJSON(record))
	}
}

// HandleConnectionCategoryDelete removes a pricing category and its beams.
func HandleConnectionCategoryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("connection_categories", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Category not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("connections: HandleConnectionCategoryDelete: delete error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete category")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}

func resolutionJSON(pricing services.BeamPricing) map[string]any {
	fields := make(map[string]any, len(pricing.Fields))
	for _, key := range services.PricedFields {
		res := pricing.Fields[key]
		field := map[string]any{
			"manual_entry":  res.ManualEntry,
			"from_category": res.FromCategory,
		}
		if !res.ManualEntry {
			field["amount"] = res.Amount
		}
		fields[key] = field
	}
	return map[string]any{
		"beam_size": pricing.BeamSize,
		"category":  pricing.Category,
		"fields":    fields,
	}
}

// findBeamRecord looks up a beam by normalized size.
func findBeamRecord(app *pocketbase.PocketBase, size string) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("beam_connection_data")
	if err != nil {
		return nil, err
	}
	records, err := app.FindRecordsByFilter(col, "beam_size = {:size}", "", 1, 0,
		map[string]any{"size": services.NormalizeBeamSize(size)})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// HandleBeamResolve resolves the full connection pricing for one beam size.
// A size missing from the catalog entirely is a 404; a known size with
// unpriced fields resolves those fields to manual entry.
func HandleBeamResolve(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		size := e.Request.URL.Query().Get("size")
		if size == "" {
			return apiError(e, http.StatusBadRequest, "Missing size parameter")
		}

		beam, err := findBeamRecord(app, size)
		if err != nil {
			log.Printf("connections: HandleBeamResolve: lookup error for %q: %v", size, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		if beam == nil {
			return apiError(e, http.StatusNotFound, "Beam size not found")
		}

		cat, err := app.FindRecordById("connection_categories", beam.GetString("category"))
		if err != nil {
			log.Printf("connections: HandleBeamResolve: category lookup for beam %s: %v", beam.Id, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		pricing := services.ResolveBeamPricing(beamOverrideFromRecord(beam), connectionCategoryFromRecord(cat))
		return e.JSON(http.StatusOK, resolutionJSON(pricing))
	}
}

// HandleBeamList returns a category's beams with their resolved pricing.
func HandleBeamList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		categoryID := e.Request.PathValue("id")
		cat, err := app.FindRecordById("connection_categories", categoryID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Category not found")
		}

		col, err := app.FindCollectionByNameOrId("beam_connection_data")
		if err != nil {
			log.Printf("connections: HandleBeamList: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "category = {:categoryId}", "beam_size", 0, 0,
			map[string]any{"categoryId": categoryID})
		if err != nil {
			log.Printf("connections: HandleBeamList: query error for category %s: %v", categoryID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		catInput := connectionCategoryFromRecord(cat)
		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			pricing := services.ResolveBeamPricing(beamOverrideFromRecord(r), catInput)
			body := resolutionJSON(pricing)
			body["id"] = r.Id
			out = append(out, body)
		}
		return e.JSON(http.StatusOK, out)
	}
}

type beamBody struct {
	BeamSize  *string            `json:"beam_size"`
	Overrides map[string]float64 `json:"overrides"`
	Takeoff   map[string]bool    `json:"takeoff"`
}

// HandleBeamCreate adds a beam size to a category.
func HandleBeamCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		categoryID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("connection_categories", categoryID); err != nil {
			return apiError(e, http.StatusNotFound, "Category not found")
		}

		var body beamBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if body.BeamSize == nil || *body.BeamSize == "" {
			return apiError(e, http.StatusBadRequest, "Beam size is required")
		}

		col, err := app.FindCollectionByNameOrId("beam_connection_data")
		if err != nil {
			log.Printf("connections: HandleBeamCreate: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		beam := services.BeamOverride{BeamSize: services.NormalizeBeamSize(*body.BeamSize)}
		services.MergeBeamOverride(&beam, body.Overrides, body.Takeoff)

		record := core.NewRecord(col)
		record.Set("category", categoryID)
		record.Set("beam_size", beam.BeamSize)
		if beam.Overrides != nil {
			record.Set("overrides", beam.Overrides)
		}
		if beam.Takeoff != nil {
			record.Set("takeoff", beam.Takeoff)
		}

		if err := app.Save(record); err != nil {
			log.Printf("connections: HandleBeamCreate: save error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create beam")
		}

		cat, _ := app.FindRecordById("connection_categories", categoryID)
		pricing := services.ResolveBeamPricing(beam, connectionCategoryFromRecord(cat))
		body2 := resolutionJSON(pricing)
		body2["id"] = record.Id
		return e.JSON(http.StatusCreated, body2)
	}
}

// HandleBeamPatch merges partial override and takeoff updates into a beam.
// Fields not named in the body keep their current state.
func HandleBeamPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("beam_connection_data", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Beam not found")
		}

		var body beamBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		beam := beamOverrideFromRecord(record)
		if body.BeamSize != nil && *body.BeamSize != "" {
			beam.BeamSize = services.NormalizeBeamSize(*body.BeamSize)
			record.Set("beam_size", beam.BeamSize)
		}
		services.MergeBeamOverride(&beam, body.Overrides, body.Takeoff)
		record.Set("overrides", beam.Overrides)
		record.Set("takeoff", beam.Takeoff)

		if err := app.Save(record); err != nil {
			log.Printf("connections: HandleBeamPatch: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update beam")
		}

		cat, err := app.FindRecordById("connection_categories", record.GetString("category"))
		if err != nil {
			log.Printf("connections: HandleBeamPatch: category lookup for beam %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		pricing := services.ResolveBeamPricing(beam, connectionCategoryFromRecord(cat))
		out := resolutionJSON(pricing)
		out["id"] = record.Id
		return e.JSON(http.StatusOK, out)
	}
}

// HandleBeamDelete removes a beam size.
func HandleBeamDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("beam_connection_data", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Beam not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("connections: HandleBeamDelete: delete error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete beam")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}
