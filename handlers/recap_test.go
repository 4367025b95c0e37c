package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"steelquote/testhelpers"
)

func TestHandleRecapView_NoRecordReturnsZeros(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Recap Project")
	item := testhelpers.CreateTestItem(t, app, proj.Id, "Beam Line")

	handler := HandleRecapView(app)
	req := httptest.NewRequest(http.MethodGet, "/api/estimating/items/"+item.Id+"/recap", nil)
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if total, _ := out["total"].(float64); total != 0 {
		t.Errorf("empty recap total = %v, want 0", total)
	}
}

func TestHandleRecapUpsert_CreateThenUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Upsert Project")
	item := testhelpers.CreateTestItem(t, app, proj.Id, "Beam Line")

	handler := HandleRecapUpsert(app)

	body := `{"drafting_hours": 4, "drafting_rate": 75, "shipping_cost": 200, "markup_percent": 10,
		"custom_lines": [{"name": "Permits", "hours": 2, "rate": 50}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/estimating/items/"+item.Id+"/recap", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("itemId", item.Id)
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
	// 300 drafting + 200 shipping + 100 custom = 600, plus 10% markup.
	if total, _ := out["total"].(float64); math.Abs(total-660) > 0.001 {
		t.Errorf("total = %v, want 660", total)
	}

	// Second upsert updates the same record instead of adding one.
	req = httptest.NewRequest(http.MethodPut, "/api/estimating/items/"+item.Id+"/recap",
		strings.NewReader(`{"shipping_cost": 300}`))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("itemId", item.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	records, err := app.FindRecordsByFilter("recap_costs", "item = {:i}", "", 0, 0, map[string]any{"i": item.Id})
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 recap record, got %d", len(records))
	}
	if records[0].GetFloat("shipping_cost") != 300 {
		t.Errorf("shipping_cost = %v, want 300", records[0].GetFloat("shipping_cost"))
	}
	// Untouched fields survive a partial upsert.
	if records[0].GetFloat("drafting_hours") != 4 {
		t.Errorf("drafting_hours = %v, want 4", records[0].GetFloat("drafting_hours"))
	}
}
