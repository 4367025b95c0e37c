package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// validStatusTransitions is the one-directional estimating flow with the
// reopened escape hatch for published bids.
var validStatusTransitions = map[string][]string{
	"draft":     {"in_review"},
	"in_review": {"published", "draft"},
	"published": {"reopened"},
	"reopened":  {"in_review", "published"},
}

func statusTransitionAllowed(from, to string) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func projectJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":              r.Id,
		"name":            r.GetString("name"),
		"customer_name":   r.GetString("customer_name"),
		"contact_name":    r.GetString("contact_name"),
		"contact_email":   r.GetString("contact_email"),
		"contact_phone":   r.GetString("contact_phone"),
		"job_location":    r.GetString("job_location"),
		"bid_date":        r.GetString("bid_date"),
		"tax_category":    r.GetString("tax_category"),
		"delivery_option": r.GetString("delivery_option"),
		"status":          r.GetString("status"),
		"outcome_status":  r.GetString("outcome_status"),
		"archived":        r.GetBool("archived"),
		"exclusions":      recordStringList(r, "exclusions"),
		"qualifications":  recordStringList(r, "qualifications"),
	}
}

// HandleProjectList returns all non-archived projects, newest first.
// Pass ?archived=true to list archived projects instead.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: HandleProjectList: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		wantArchived := e.Request.URL.Query().Get("archived") == "true"
		records, err := app.FindRecordsByFilter(col, "archived = {:archived}", "-created", 0, 0,
			map[string]any{"archived": wantArchived})
		if err != nil {
			log.Printf("projects: HandleProjectList: query error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, projectJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleProjectView returns one project by ID.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing project ID")
		}
		record, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}
		return e.JSON(http.StatusOK, projectJSON(record))
	}
}

type projectBody struct {
	Name           *string  `json:"name"`
	CustomerName   *string  `json:"customer_name"`
	ContactName    *string  `json:"contact_name"`
	ContactEmail   *string  `json:"contact_email"`
	ContactPhone   *string  `json:"contact_phone"`
	JobLocation    *string  `json:"job_location"`
	BidDate        *string  `json:"bid_date"`
	TaxCategory    *string  `json:"tax_category"`
	DeliveryOption *string  `json:"delivery_option"`
	OutcomeStatus  *string  `json:"outcome_status"`
	Exclusions     []string `json:"exclusions"`
	Qualifications []string `json:"qualifications"`
}

// applyProjectBody copies the set fields onto the record. Status is managed
// separately through the transition endpoint.
func applyProjectBody(r *core.Record, body projectBody) {
	if body.Name != nil {
		r.Set("name", *body.Name)
	}
	if body.CustomerName != nil {
		r.Set("customer_name", *body.CustomerName)
	}
	if body.ContactName != nil {
		r.Set("contact_name", *body.ContactName)
	}
	if body.ContactEmail != nil {
		r.Set("contact_email", *body.ContactEmail)
	}
	if body.ContactPhone != nil {
		r.Set("contact_phone", *body.ContactPhone)
	}
	if body.JobLocation != nil {
		r.Set("job_location", *body.JobLocation)
	}
	if body.BidDate != nil {
		r.Set("bid_date", *body.BidDate)
	}
	if body.TaxCategory != nil {
		r.Set("tax_category", *body.TaxCategory)
	}
	if body.DeliveryOption != nil {
		r.Set("delivery_option", *body.DeliveryOption)
	}
	if body.Exclusions != nil {
		r.Set("exclusions", body.Exclusions)
	}
	if body.Qualifications != nil {
		r.Set("qualifications", body.Qualifications)
	}
}

// HandleProjectCreate creates a draft project.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body projectBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if body.Name == nil || *body.Name == "" {
			return apiError(e, http.StatusBadRequest, "Project name is required")
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: HandleProjectCreate: collection error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("status", "draft")
		record.Set("outcome_status", "bidding")
		applyProjectBody(record, body)

		if err := app.Save(record); err != nil {
			log.Printf("projects: HandleProjectCreate: save error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create project")
		}
		return e.JSON(http.StatusCreated, projectJSON(record))
	}
}

// HandleProjectPatch updates project fields. Outcome status only sticks once
// the project is published.
func HandleProjectPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var body projectBody
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		applyProjectBody(record, body)

		if body.OutcomeStatus != nil {
			if record.GetString("status") != "published" {
				return apiError(e, http.StatusBadRequest, "Outcome status applies to published projects only")
			}
			record.Set("outcome_status", *body.OutcomeStatus)
		}

		if err := app.Save(record); err != nil {
			log.Printf("projects: HandleProjectPatch: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update project")
		}
		return e.JSON(http.StatusOK, projectJSON(record))
	}
}

// HandleProjectStatus transitions a project through the estimating flow.
func HandleProjectStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := e.BindBody(&body); err != nil || body.Status == "" {
			return apiError(e, http.StatusBadRequest, "Missing status")
		}

		from := record.GetString("status")
		if !statusTransitionAllowed(from, body.Status) {
			return apiError(e, http.StatusBadRequest, "Invalid status transition")
		}

		record.Set("status", body.Status)
		if err := app.Save(record); err != nil {
			log.Printf("projects: HandleProjectStatus: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update status")
		}
		return e.JSON(http.StatusOK, projectJSON(record))
	}
}

// HandleProjectArchive soft-hides a project from the dashboard.
func HandleProjectArchive(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var body struct {
			Archived *bool `json:"archived"`
		}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		archived := true
		if body.Archived != nil {
			archived = *body.Archived
		}

		record.Set("archived", archived)
		if err := app.Save(record); err != nil {
			log.Printf("projects: HandleProjectArchive: save error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not archive project")
		}
		return e.JSON(http.StatusOK, projectJSON(record))
	}
}

// HandleProjectDelete removes a project and, via cascade, everything under it.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		record, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}
		if err := app.Delete(record); err != nil {
			log.Printf("projects: HandleProjectDelete: delete error for %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete project")
		}
		return e.JSON(http.StatusOK, map[string]any{"deleted": true})
	}
}
