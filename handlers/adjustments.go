package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

func adjustmentJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":          r.Id,
		"project":     r.GetString("project"),
		"description": r.GetString("description"),
		"amount":      r.GetFloat("amount"),
	}
}

// HandleAdjustmentList returns a project's internal adjustments.
func HandleAdjustmentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		col, err := app.FindCollectionByNameOrId("summary_adjustments")
		if err != nil {
			log.Printf("adjustments: HandleAdjustmentList: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		records, err := app.FindRecordsByFilter(col, "project = {:projectId}", "created", 0, 0,
			map[string]any{"projectId": projectID})
		if err != nil {
			log.Printf("adjustments: HandleAdjustmentList: query error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, adjustmentJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

type adjustmentBody struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
}

// HandleAdjustmentCreate adds an internal adjustment to a project. Negative
// amounts reduce the bid.
func HandleAdjustmentCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var body adjustmentBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if body.Description == nil || *body.Description == "" {
			return apiError(e, http.StatusBadRequest, "Adjustment description is required")
		}

		col, err := app.FindCollectionByNameOrId("summary_adjustments")
		if err != nil {
			log.Printf("adjustments: HandleAdjustmentCreate: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("project", projectID)
		record.Set("description", *body.Description)
		if body.Amount != nil {
			record.Set("amount", *body.Amount)
		}

		if err := app.Save(record); err != nil {
			log.Printf("adjustments: HandleAdjustmentCreate: save error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create adjustment")
		}
		return e.JSON(http.StatusCreated, adjustmentJSON(record))
	}
}

// HandleAdjustmentPatch updates an adjustment.
func HandleAdjustmentPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("summary_adjustments", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Adjustment not found")
		}

		var body adjustmentBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if body.Description != nil {
			record.Set("description", *body.Description)
		}
		if body.Amount != nil {
			record.Set("amount", *body.Amount)
		}

		if err := app.Save(record); err != nil {
			log.Printf("adjustments: HandleAdjustmentPatch: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update adjustment")
		}
		return e.JSON(http.StatusOK, adjustmentJSON(record))
	}
}

// HandleAdjustmentDelete removes an adjustment.
func HandleAdjustmentDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("summary_adjustments", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Adjustment not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("adjustments: HandleAdjustmentDelete: delete error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete adjustment")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}
