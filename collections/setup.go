// Package collections creates and seeds the PocketBase collections backing
// the estimating application.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ProjectStatusOptions are the estimating workflow states. Transitions run
// draft -> in_review -> published, with reopened as the explicit escape.
var ProjectStatusOptions = []string{"draft", "in_review", "reopened", "published"}

// OutcomeStatusOptions track a published bid on the dashboard.
var OutcomeStatusOptions = []string{"bidding", "quoted", "awarded", "lost", "dead"}

// ShapeCategoryOptions is the controlled vocabulary for material shapes.
var ShapeCategoryOptions = []string{"Wide-Flange", "Channel", "Angle", "HSS", "Plate", "Pipe", "Misc"}

// BreakoutGroupOptions classify a bid line for the quote.
var BreakoutGroupOptions = []string{"base", "deduct", "add"}

// Setup programmatically creates/ensures every collection the estimator
// needs. Safe to call on every startup.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_name"})
		c.Fields.Add(&core.TextField{Name: "contact_name"})
		c.Fields.Add(&core.TextField{Name: "contact_email"})
		c.Fields.Add(&core.TextField{Name: "contact_phone"})
		c.Fields.Add(&core.TextField{Name: "job_location"})
		c.Fields.Add(&core.TextField{Name: "bid_date"})
		c.Fields.Add(&core.TextField{Name: "tax_category"})
		c.Fields.Add(&core.TextField{Name: "delivery_option"})
		c.Fields.Add(&core.SelectField{Name: "status", Required: true, Values: ProjectStatusOptions, MaxSelect: 1})
		c.Fields.Add(&core.SelectField{Name: "outcome_status", Values: OutcomeStatusOptions, MaxSelect: 1})
		c.Fields.Add(&core.BoolField{Name: "archived"})
		c.Fields.Add(&core.JSONField{Name: "exclusions", MaxSize: 50000})
		c.Fields.Add(&core.JSONField{Name: "qualifications", MaxSize: 50000})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	items := ensureCollection(app, "estimate_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "drawing_ref"})
		c.Fields.Add(&core.SelectField{Name: "breakout_group", Values: BreakoutGroupOptions, MaxSelect: 1})
		c.Fields.Add(&core.NumberField{Name: "material_markup_percent"})
		c.Fields.Add(&core.NumberField{Name: "fab_markup_percent"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
	})

	materials := ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "item",
			Required:      true,
			CollectionId:  items.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{Name: "shape_category", Values: ShapeCategoryOptions, MaxSelect: 1})
		c.Fields.Add(&core.TextField{Name: "shape"})
		c.Fields.Add(&core.NumberField{Name: "weight_per_foot"})
		c.Fields.Add(&core.NumberField{Name: "length_ft"})
		c.Fields.Add(&core.NumberField{Name: "quantity"})
		c.Fields.Add(&core.NumberField{Name: "stock_length_ft"})
		c.Fields.Add(&core.NumberField{Name: "unit_price"})
		c.Fields.Add(&core.BoolField{Name: "galvanized"})
		c.Fields.Add(&core.BoolField{Name: "shop_primed"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
	})

	// Self-relation for sub-components needs the saved collection id, so the
	// parent field is added in a second pass.
	if materials.Fields.GetByName("parent") == nil {
		materials.Fields.Add(&core.RelationField{
			Name:          "parent",
			CollectionId:  materials.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		if err := app.Save(materials); err != nil {
			log.Fatalf("Failed to add parent field to materials: %v", err)
		}
	}

	ensureCollection(app, "fab_operations", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "material",
			CollectionId:  materials.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "item",
			CollectionId:  items.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "category"})
		c.Fields.Add(&core.TextField{Name: "name"})
		c.Fields.Add(&core.TextField{Name: "custom_name"})
		c.Fields.Add(&core.NumberField{Name: "hours"})
		c.Fields.Add(&core.NumberField{Name: "rate"})
		// Display cache only. Every read path recomputes hours * rate.
		c.Fields.Add(&core.NumberField{Name: "cost"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
	})

	ensureCollection(app, "recap_costs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "item",
			Required:      true,
			CollectionId:  items.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "installation_hours"})
		c.Fields.Add(&core.NumberField{Name: "installation_rate"})
		c.Fields.Add(&core.NumberField{Name: "drafting_hours"})
		c.Fields.Add(&core.NumberField{Name: "drafting_rate"})
		c.Fields.Add(&core.NumberField{Name: "engineering_hours"})
		c.Fields.Add(&core.NumberField{Name: "engineering_rate"})
		c.Fields.Add(&core.NumberField{Name: "project_mgmt_hours"})
		c.Fields.Add(&core.NumberField{Name: "project_mgmt_rate"})
		c.Fields.Add(&core.NumberField{Name: "shipping_cost"})
		c.Fields.Add(&core.JSONField{Name: "custom_lines", MaxSize: 50000})
		c.Fields.Add(&core.NumberField{Name: "markup_percent"})
	})

	ensureCollection(app, "summary_adjustments", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "amount"})
	})

	ensureCollection(app, "tax_categories", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "rate"})
		c.Fields.Add(&core.BoolField{Name: "applies_to_materials"})
		c.Fields.Add(&core.BoolField{Name: "applies_to_fabrication"})
	})

	ensureCollection(app, "shapes", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{Name: "category", Required: true, Values: ShapeCategoryOptions, MaxSelect: 1})
		c.Fields.Add(&core.TextField{Name: "designation", Required: true})
		c.Fields.Add(&core.NumberField{Name: "weight_per_foot", Required: true})
	})

	connectionCategories := ensureCollection(app, "connection_categories", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "beam_sizes"})
		c.Fields.Add(&core.JSONField{Name: "prices", MaxSize: 50000})
		c.Fields.Add(&core.BoolField{Name: "provides_takeoff"})
	})

	ensureCollection(app, "beam_connection_data", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "category",
			Required:      true,
			CollectionId:  connectionCategories.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "beam_size", Required: true})
		c.Fields.Add(&core.JSONField{Name: "overrides", MaxSize: 50000})
		c.Fields.Add(&core.JSONField{Name: "takeoff", MaxSize: 50000})
	})

	ensureCollection(app, "pricing_rates", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "shop_rate"})
		c.Fields.Add(&core.NumberField{Name: "avg_material_price"})
		c.Fields.Add(&core.NumberField{Name: "discount_over_20"})
		c.Fields.Add(&core.NumberField{Name: "discount_over_100"})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
