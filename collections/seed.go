package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type shapeDef struct {
	category      string
	designation   string
	weightPerFoot float64
}

type taxDef struct {
	key          string
	name         string
	rate         float64
	onMaterials  bool
	onFab        bool
}

type connectionCategoryDef struct {
	name            string
	beamSizes       string
	prices          map[string]float64
	providesTakeoff bool
}

type beamDef struct {
	category  string // connection category name
	beamSize  string
	overrides map[string]float64
	takeoff   map[string]bool
}

// ── Seed data ────────────────────────────────────────────────────────────

var seedShapes = []shapeDef{
	{"Wide-Flange", "W8X10", 10},
	{"Wide-Flange", "W10X12", 12},
	{"Wide-Flange", "W12X19", 19},
	{"Wide-Flange", "W14X22", 22},
	{"Wide-Flange", "W16X26", 26},
	{"Wide-Flange", "W16X31", 31},
	{"Wide-Flange", "W18X35", 35},
	{"Wide-Flange", "W21X44", 44},
	{"Wide-Flange", "W24X55", 55},
	{"Channel", "C6X8.2", 8.2},
	{"Channel", "C8X11.5", 11.5},
	{"Channel", "C10X15.3", 15.3},
	{"Channel", "MC8X8.5", 8.5},
	{"Angle", "L3X3X1/4", 4.9},
	{"Angle", "L4X4X1/4", 6.6},
	{"Angle", "L4X4X3/8", 9.8},
	{"HSS", "HSS4X4X1/4", 12.21},
	{"HSS", "HSS6X6X1/4", 19.02},
	{"HSS", "HSS8X8X3/8", 37.69},
	{"Pipe", "PIPE3STD", 7.58},
	{"Plate", "PL1/4", 10.21},
	{"Plate", "PL3/8", 15.32},
	{"Plate", "PL1/2", 20.42},
}

var seedTaxCategories = []taxDef{
	{"exempt", "Tax Exempt", 0, false, false},
	{"materials_only", "Materials Only", 0.0825, true, false},
	{"fabrication_only", "Fabrication Only", 0.0825, false, true},
	{"full", "Materials & Fabrication", 0.0825, true, true},
}

var seedConnectionCategories = []connectionCategoryDef{
	{
		name:      "W8, W10, W12",
		beamSizes: "W8, W10, W12",
		prices: map[string]float64{
			"labor_hours":            1.0,
			"connection_cost":        55,
			"moment_connection_cost": 165,
			"single_cope_cost":       18,
			"double_cope_cost":       30,
			"straight_cut_cost":      10,
			"miter_cut_cost":         15,
			"single_cope_miter_cost": 28,
			"double_cope_miter_cost": 40,
		},
	},
	{
		name:      "W14, W16",
		beamSizes: "W14, W16",
		prices: map[string]float64{
			"labor_hours":            1.25,
			"connection_cost":        70,
			"moment_connection_cost": 210,
			"single_cope_cost":       20,
			"double_cope_cost":       34,
			"straight_cut_cost":      11,
			"miter_cut_cost":         16,
			"single_cope_miter_cost": 31,
			"double_cope_miter_cost": 44,
		},
	},
	{
		name:      "W18, W21",
		beamSizes: "W18, W21",
		prices: map[string]float64{
			"labor_hours":            1.5,
			"connection_cost":        85,
			"moment_connection_cost": 255,
			"single_cope_cost":       24,
			"double_cope_cost":       40,
			"straight_cut_cost":      13,
			"miter_cut_cost":         19,
			"single_cope_miter_cost": 36,
			"double_cope_miter_cost": 52,
		},
	},
	{
		name:      "C & MC",
		beamSizes: "All Channel and Misc Channel",
		prices: map[string]float64{
			"labor_hours":       0.75,
			"connection_cost":   40,
			"single_cope_cost":  14,
			"straight_cut_cost": 8,
			"miter_cut_cost":    12,
		},
	},
	{
		// Heavy shapes always priced per project.
		name:            "W24 and Larger",
		beamSizes:       "W24, W27, W30+",
		providesTakeoff: true,
	},
}

var seedBeams = []beamDef{
	{
		category:  "W14, W16",
		beamSize:  "W16X26",
		overrides: map[string]float64{"connection_cost": 78, "single_cope_cost": 22},
	},
	{
		category: "W18, W21",
		beamSize: "W21X44",
		takeoff:  map[string]bool{"moment_connection_cost": true},
	},
}

// Seed populates the reference collections: shape catalog, tax categories,
// connection pricing and the pricing-rates singleton. It is safe to call on
// every startup; each group is skipped when records already exist.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedShapeCatalog(app); err != nil {
		return err
	}
	if err := seedTaxes(app); err != nil {
		return err
	}
	if err := seedConnections(app); err != nil {
		return err
	}
	return seedPricingRates(app)
}

func seedShapeCatalog(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("shapes")
	if err != nil {
		return fmt.Errorf("seed: could not find shapes collection: %w", err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query shapes: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: shapes collection is empty – inserting shape catalog …")
	for _, d := range seedShapes {
		r := core.NewRecord(col)
		r.Set("category", d.category)
		r.Set("designation", d.designation)
		r.Set("weight_per_foot", d.weightPerFoot)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save shape %s: %w", d.designation, err)
		}
	}
	return nil
}

func seedTaxes(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("tax_categories")
	if err != nil {
		return fmt.Errorf("seed: could not find tax_categories collection: %w", err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query tax_categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: tax_categories collection is empty – inserting defaults …")
	for _, d := range seedTaxCategories {
		r := core.NewRecord(col)
		r.Set("key", d.key)
		r.Set("name", d.name)
		r.Set("rate", d.rate)
		r.Set("applies_to_materials", d.onMaterials)
		r.Set("applies_to_fabrication", d.onFab)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save tax category %s: %w", d.key, err)
		}
	}
	return nil
}

func seedConnections(app *pocketbase.PocketBase) error {
	catCol, err := app.FindCollectionByNameOrId("connection_categories")
	if err != nil {
		return fmt.Errorf("seed: could not find connection_categories collection: %w", err)
	}
	existing, err := app.FindAllRecords(catCol)
	if err != nil {
		return fmt.Errorf("seed: could not query connection_categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	beamCol, err := app.FindCollectionByNameOrId("beam_connection_data")
	if err != nil {
		return fmt.Errorf("seed: could not find beam_connection_data collection: %w", err)
	}

	log.Println("seed: connection_categories collection is empty – inserting pricing catalog …")

	catIDs := make(map[string]string, len(seedConnectionCategories))
	for _, d := range seedConnectionCategories {
		r := core.NewRecord(catCol)
		r.Set("name", d.name)
		r.Set("beam_sizes", d.beamSizes)
		if d.prices != nil {
			r.Set("prices", d.prices)
		}
		r.Set("provides_takeoff", d.providesTakeoff)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save connection category %s: %w", d.name, err)
		}
		catIDs[d.name] = r.Id
	}

	for _, d := range seedBeams {
		catID, ok := catIDs[d.category]
		if !ok {
			return fmt.Errorf("seed: beam %s references unknown category %q", d.beamSize, d.category)
		}
		r := core.NewRecord(beamCol)
		r.Set("category", catID)
		r.Set("beam_size", d.beamSize)
		if d.overrides != nil {
			r.Set("overrides", d.overrides)
		}
		if d.takeoff != nil {
			r.Set("takeoff", d.takeoff)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save beam %s: %w", d.beamSize, err)
		}
	}
	return nil
}

// seedPricingRates guarantees exactly one pricing_rates row exists.
func seedPricingRates(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("pricing_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find pricing_rates collection: %w", err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query pricing_rates: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: pricing_rates is empty – inserting the singleton row …")
	r := core.NewRecord(col)
	r.Set("shop_rate", 85)
	r.Set("avg_material_price", 0.62)
	r.Set("discount_over_20", 5)
	r.Set("discount_over_100", 12)
	if err := app.Save(r); err != nil {
		return fmt.Errorf("seed: could not save pricing_rates: %w", err)
	}
	return nil
}
