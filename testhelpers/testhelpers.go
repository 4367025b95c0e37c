// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// NewSeededTestApp creates a test app with the reference data seeded
// (shapes, tax categories, connection pricing, pricing rates).
func NewSeededTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("failed to seed test app: %v", err)
	}
	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("customer_name", "Test Customer")
	record.Set("status", "draft")
	record.Set("outcome_status", "bidding")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestItem creates an estimate item record linked to a project.
func CreateTestItem(t *testing.T, app *pocketbase.PocketBase, projectID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimate_items")
	if err != nil {
		t.Fatalf("failed to find estimate_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("breakout_group", "base")
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test item: %v", err)
	}

	return record
}

// CreateTestMaterial creates a material record on an item. Pass parentID=""
// for a top-level material.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, itemID, parentID, shape string, wpf, lengthFt, stockFt, unitPrice float64, qty int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("item", itemID)
	if parentID != "" {
		record.Set("parent", parentID)
	}
	record.Set("shape_category", "Wide-Flange")
	record.Set("shape", shape)
	record.Set("weight_per_foot", wpf)
	record.Set("length_ft", lengthFt)
	record.Set("quantity", qty)
	record.Set("stock_length_ft", stockFt)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestOperation creates a fabrication operation. Exactly one of
// materialID/itemID should be non-empty: material ops attach to a material,
// general ops attach directly to the item.
func CreateTestOperation(t *testing.T, app *pocketbase.PocketBase, materialID, itemID, category string, hours, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("fab_operations")
	if err != nil {
		t.Fatalf("failed to find fab_operations collection: %v", err)
	}

	record := core.NewRecord(col)
	if materialID != "" {
		record.Set("material", materialID)
	}
	if itemID != "" {
		record.Set("item", itemID)
	}
	record.Set("category", category)
	record.Set("hours", hours)
	record.Set("rate", rate)
	record.Set("cost", hours*rate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test operation: %v", err)
	}

	return record
}

// CreateTestRecap creates a recap cost record for an item.
func CreateTestRecap(t *testing.T, app *pocketbase.PocketBase, itemID string, markupPercent float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("recap_costs")
	if err != nil {
		t.Fatalf("failed to find recap_costs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("item", itemID)
	record.Set("installation_hours", 0.0)
	record.Set("installation_rate", 0.0)
	record.Set("drafting_hours", 2.0)
	record.Set("drafting_rate", 75.0)
	record.Set("engineering_hours", 1.0)
	record.Set("engineering_rate", 120.0)
	record.Set("project_mgmt_hours", 0.0)
	record.Set("project_mgmt_rate", 0.0)
	record.Set("shipping_cost", 150.0)
	record.Set("markup_percent", markupPercent)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test recap: %v", err)
	}

	return record
}

// CreateTestAdjustment creates a project-level summary adjustment.
func CreateTestAdjustment(t *testing.T, app *pocketbase.PocketBase, projectID, name string, amount float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("summary_adjustments")
	if err != nil {
		t.Fatalf("failed to find summary_adjustments collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("description", name)
	record.Set("amount", amount)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test adjustment: %v", err)
	}

	return record
}

// CreateTestConnectionCategory creates a connection pricing category with
// the given prices map.
func CreateTestConnectionCategory(t *testing.T, app *pocketbase.PocketBase, name string, prices map[string]float64, providesTakeoff bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("connection_categories")
	if err != nil {
		t.Fatalf("failed to find connection_categories collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("beam_sizes", name)
	if prices != nil {
		record.Set("prices", prices)
	}
	record.Set("provides_takeoff", providesTakeoff)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test connection category: %v", err)
	}

	return record
}

// CreateTestBeamData creates a beam_connection_data record in a category.
func CreateTestBeamData(t *testing.T, app *pocketbase.PocketBase, categoryID, beamSize string, overrides map[string]float64, takeoff map[string]bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("beam_connection_data")
	if err != nil {
		t.Fatalf("failed to find beam_connection_data collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category", categoryID)
	record.Set("beam_size", beamSize)
	if overrides != nil {
		record.Set("overrides", overrides)
	}
	if takeoff != nil {
		record.Set("takeoff", takeoff)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test beam data: %v", err)
	}

	return record
}

// CreateTestTaxCategory creates a tax category record and returns it.
func CreateTestTaxCategory(t *testing.T, app *pocketbase.PocketBase, key string, rate float64, onMaterials, onFab bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("tax_categories")
	if err != nil {
		t.Fatalf("failed to find tax_categories collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("key", key)
	record.Set("name", key)
	record.Set("rate", rate)
	record.Set("applies_to_materials", onMaterials)
	record.Set("applies_to_fabrication", onFab)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test tax category: %v", err)
	}

	return record
}
