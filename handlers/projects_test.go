package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"steelquote/testhelpers"
)

func TestHandleProjectCreate_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	body := `{"name": "Warehouse Mezzanine", "customer_name": "Acme Builders"}`
	req := httptest.NewRequest(http.MethodPost, "/api/estimating/projects", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if out["status"] != "draft" {
		t.Errorf("new project status = %v, want draft", out["status"])
	}
	if out["name"] != "Warehouse Mezzanine" {
		t.Errorf("name = %v", out["name"])
	}
}

func TestHandleProjectCreate_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/estimating/projects", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleProjectList_ExcludesArchived(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "Active One")
	archived := testhelpers.CreateTestProject(t, app, "Old Job")
	archived.Set("archived", true)
	if err := app.Save(archived); err != nil {
		t.Fatalf("save error: %v", err)
	}

	handler := HandleProjectList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/estimating/projects", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 project, got %d", len(out))
	}
	if out[0]["name"] != "Active One" {
		t.Errorf("listed project = %v", out[0]["name"])
	}
}

func TestHandleProjectStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{"draft", "in_review", true},
		{"in_review", "published", true},
		{"in_review", "draft", true},
		{"published", "reopened", true},
		{"reopened", "published", true},
		{"draft", "published", false},
		{"published", "draft", false},
		{"draft", "reopened", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			app := testhelpers.NewTestApp(t)
			proj := testhelpers.CreateTestProject(t, app, "Status Project")
			proj.Set("status", tt.from)
			if err := app.Save(proj); err != nil {
				t.Fatalf("save error: %v", err)
			}

			handler := HandleProjectStatus(app)
			body := fmt.Sprintf(`{"status": %q}`, tt.to)
			req := httptest.NewRequest(http.MethodPost, "/api/estimating/projects/"+proj.Id+"/status", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("id", proj.Id)
			rec := httptest.NewRecorder()
			if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if tt.allowed && rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if !tt.allowed && rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleProjectPatch_OutcomeRequiresPublished(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Outcome Project")

	handler := HandleProjectPatch(app)
	req := httptest.NewRequest(http.MethodPatch, "/api/estimating/projects/"+proj.Id,
		strings.NewReader(`{"outcome_status": "awarded"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for draft project outcome, got %d", rec.Code)
	}

	proj.Set("status", "published")
	if err := app.Save(proj); err != nil {
		t.Fatalf("save error: %v", err)
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/estimating/projects/"+proj.Id,
		strings.NewReader(`{"outcome_status": "awarded"}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", proj.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	refreshed, _ := app.FindRecordById("projects", proj.Id)
	if refreshed.GetString("outcome_status") != "awarded" {
		t.Errorf("outcome_status = %q, want awarded", refreshed.GetString("outcome_status"))
	}
}

func TestHandleProjectDuplicate_DeepCopy(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Original Job")
	item := testhelpers.CreateTestItem(t, app, proj.Id, "Stairs")
	parent := testhelpers.CreateTestMaterial(t, app, item.Id, "", "W16X26", 26, 57.17, 60, 0.62, 1)
	testhelpers.CreateTestMaterial(t, app, item.Id, parent.Id, "L3X3X1/4", 4.9, 1, 20, 0.55, 2)
	testhelpers.CreateTestOperation(t, app, parent.Id, "", "Welding", 1.5, 85)
	testhelpers.CreateTestOperation(t, app, "", item.Id, "Cleanup", 0.5, 85)
	testhelpers.CreateTestRecap(t, app, item.Id, 10)
	testhelpers.CreateTestAdjustment(t, app, proj.Id, "Fuel surcharge", 50)

	handler := HandleProjectDuplicate(app)
	req := httptest.NewRequest(http.MethodPost, "/api/estimating/projects/"+proj.Id+"/duplicate", nil)
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	copyID, _ := out["id"].(string)
	if copyID == "" || copyID == proj.Id {
		t.Fatalf("bad copy id %q", copyID)
	}
	if out["name"] != "Original Job (Copy)" {
		t.Errorf("copy name = %v", out["name"])
	}
	if out["status"] != "draft" {
		t.Errorf("copy status = %v, want draft", out["status"])
	}

	copiedItems, err := app.FindRecordsByFilter("estimate_items", "project = {:p}", "", 0, 0, map[string]any{"p": copyID})
	if err != nil || len(copiedItems) != 1 {
		t.Fatalf("expected 1 copied item, got %d (err %v)", len(copiedItems), err)
	}

	copiedMats, _ := app.FindRecordsByFilter("materials", "item = {:i}", "sort_order", 0, 0, map[string]any{"i": copiedItems[0].Id})
	if len(copiedMats) != 2 {
		t.Fatalf("expected 2 copied materials, got %d", len(copiedMats))
	}

	// The sub-component's parent must point at the copied beam, not the original.
	var childParent string
	for _, m := range copiedMats {
		if p := m.GetString("parent"); p != "" {
			childParent = p
		}
	}
	if childParent == "" {
		t.Fatal("copied sub-component lost its parent")
	}
	if childParent == parent.Id {
		t.Error("copied sub-component still references the original parent")
	}

	copiedOps, _ := app.FindRecordsByFilter("fab_operations", "item = {:i} || material.item = {:i}", "", 0, 0, map[string]any{"i": copiedItems[0].Id})
	if len(copiedOps) != 2 {
		t.Errorf("expected 2 copied operations, got %d", len(copiedOps))
	}

	copiedRecaps, _ := app.FindRecordsByFilter("recap_costs", "item = {:i}", "", 0, 0, map[string]any{"i": copiedItems[0].Id})
	if len(copiedRecaps) != 1 {
		t.Errorf("expected 1 copied recap, got %d", len(copiedRecaps))
	}

	copiedAdjs, _ := app.FindRecordsByFilter("summary_adjustments", "project = {:p}", "", 0, 0, map[string]any{"p": copyID})
	if len(copiedAdjs) != 1 {
		t.Errorf("expected 1 copied adjustment, got %d", len(copiedAdjs))
	}
}

func TestHandleProjectArchive(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Archive Me")

	handler := HandleProjectArchive(app)
	req := httptest.NewRequest(http.MethodPost, "/api/estimating/projects/"+proj.Id+"/archive", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	refreshed, _ := app.FindRecordById("projects", proj.Id)
	if !refreshed.GetBool("archived") {
		t.Error("project should be archived")
	}
}
