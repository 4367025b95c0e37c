package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"steelquote/testhelpers"
)

func TestHandleOperationCreate_RequiresExactlyOneOwner(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Ops Project")
	item := testhelpers.CreateTestItem(t, app, proj.Id, "Beam Line")
	mat := testhelpers.CreateTestMaterial(t, app, item.Id, "", "W8X10", 10, 5, 20, 0.6, 1)

	handler := HandleOperationCreate(app)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"neither", `{"category": "Welding", "hours": 1, "rate": 85}`, http.StatusBadRequest},
		{"both", `{"material": "` + mat.Id + `", "item": "` + item.Id + `", "hours": 1, "rate": 85}`, http.StatusBadRequest},
		{"material only", `{"material": "` + mat.Id + `", "category": "Welding", "hours": 1, "rate": 85}`, http.StatusCreated},
		{"item only", `{"item": "` + item.Id + `", "category": "Cleanup", "hours": 1, "rate": 85}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/estimating/operations", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestHandleOperationPatch_RefreshesCachedCost(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Cost Project")
	item := testhelpers.CreateTestItem(t, app, proj.Id, "Beam Line")
	op := testhelpers.CreateTestOperation(t, app, "", item.Id, "Welding", 2, 85)

	handler := HandleOperationPatch(app)
	req := httptest.NewRequest(http.MethodPatch, "/api/estimating/operations/"+op.Id,
		strings.NewReader(`{"hours": 4, "rate": 90}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", op.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if cost, _ := out["cost"].(float64); cost != 360 {
		t.Errorf("cost = %v, want 360", cost)
	}

	refreshed, _ := app.FindRecordById("fab_operations", op.Id)
	if refreshed.GetFloat("cost") != 360 {
		t.Errorf("stored cost = %v, want 360", refreshed.GetFloat("cost"))
	}
}

func TestHandleOperationCreate_CustomDisplayName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Custom Project")
	item := testhelpers.CreateTestItem(t, app, proj.Id, "Beam Line")

	handler := HandleOperationCreate(app)
	body := `{"item": "` + item.Id + `", "category": "Custom", "custom_name": "Bead blasting", "hours": 1, "rate": 85}`
	req := httptest.NewRequest(http.MethodPost, "/api/estimating/operations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
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
	if out["display_name"] != "Bead blasting" {
		t.Errorf("display_name = %v, want Bead blasting", out["display_name"])
	}
}
