package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectDuplicate deep-copies a project: items, materials with their
// sub-component tree, operations, recap costs and adjustments. The copy
// starts over as a draft so the published original stays untouched.
func HandleProjectDuplicate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		source, err := app.FindRecordById("projects", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		copyRecord, err := duplicateProject(app, source)
		if err != nil {
			log.Printf("projects: HandleProjectDuplicate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not duplicate project")
		}
		return e.JSON(http.StatusCreated, projectJSON(copyRecord))
	}
}

func duplicateProject(app *pocketbase.PocketBase, source *core.Record) (*core.Record, error) {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return nil, err
	}
	itemsCol, err := app.FindCollectionByNameOrId("estimate_items")
	if err != nil {
		return nil, err
	}
	matCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return nil, err
	}
	opsCol, err := app.FindCollectionByNameOrId("fab_operations")
	if err != nil {
		return nil, err
	}
	recapCol, err := app.FindCollectionByNameOrId("recap_costs")
	if err != nil {
		return nil, err
	}
	adjCol, err := app.FindCollectionByNameOrId("summary_adjustments")
	if err != nil {
		return nil, err
	}

	dup := core.NewRecord(projectsCol)
	for _, field := range []string{
		"customer_name", "contact_name", "contact_email", "contact_phone",
		"job_location", "tax_category", "delivery_option",
		"exclusions", "qualifications",
	} {
		dup.Set(field, source.Get(field))
	}
	dup.Set("name", source.GetString("name")+" (Copy)")
	dup.Set("status", "draft")
	dup.Set("outcome_status", "bidding")
	if err := app.Save(dup); err != nil {
		return nil, err
	}

	items, err := app.FindRecordsByFilter(itemsCol, "project = {:projectId}", "sort_order", 0, 0,
		map[string]any{"projectId": source.Id})
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		itemCopy := core.NewRecord(itemsCol)
		for _, field := range []string{
			"name", "description", "drawing_ref", "breakout_group",
			"material_markup_percent", "fab_markup_percent", "sort_order",
		} {
			itemCopy.Set(field, item.Get(field))
		}
		itemCopy.Set("project", dup.Id)
		if err := app.Save(itemCopy); err != nil {
			return nil, err
		}

		mats, err := app.FindRecordsByFilter(matCol, "item = {:itemId}", "sort_order", 0, 0,
			map[string]any{"itemId": item.Id})
		if err != nil {
			return nil, err
		}

		// First pass copies every material; parents are remapped after so a
		// child can be copied before its parent.
		matIDMap := make(map[string]string, len(mats))
		for _, mat := range mats {
			matCopy := core.NewRecord(matCol)
			for _, field := range []string{
				"shape_category", "shape", "weight_per_foot", "length_ft",
				"quantity", "stock_length_ft", "unit_price",
				"galvanized", "shop_primed", "sort_order",
			} {
				matCopy.Set(field, mat.Get(field))
			}
			matCopy.Set("item", itemCopy.Id)
			if err := app.Save(matCopy); err != nil {
				return nil, err
			}
			matIDMap[mat.Id] = matCopy.Id
		}

		for _, mat := range mats {
			parent := mat.GetString("parent")
			if parent == "" {
				continue
			}
			matCopy, err := app.FindRecordById("materials", matIDMap[mat.Id])
			if err != nil {
				return nil, err
			}
			matCopy.Set("parent", matIDMap[parent])
			if err := app.Save(matCopy); err != nil {
				return nil, err
			}
		}

		ops, err := app.FindRecordsByFilter(opsCol, "item = {:itemId} || material.item = {:itemId}", "sort_order", 0, 0,
			map[string]any{"itemId": item.Id})
		if err != nil {
			return nil, err
		}
		for _, op := range ops {
			opCopy := core.NewRecord(opsCol)
			for _, field := range []string{
				"category", "name", "custom_name", "hours", "rate", "cost", "sort_order",
			} {
				opCopy.Set(field, op.Get(field))
			}
			if matID := op.GetString("material"); matID != "" {
				opCopy.Set("material", matIDMap[matID])
			} else {
				opCopy.Set("item", itemCopy.Id)
			}
			if err := app.Save(opCopy); err != nil {
				return nil, err
			}
		}

		recaps, err := app.FindRecordsByFilter(recapCol, "item = {:itemId}", "", 1, 0,
			map[string]any{"itemId": item.Id})
		if err != nil {
			return nil, err
		}
		if len(recaps) > 0 {
			recapCopy := core.NewRecord(recapCol)
			for _, field := range []string{
				"installation_hours", "installation_rate",
				"drafting_hours", "drafting_rate",
				"engineering_hours", "engineering_rate",
				"project_mgmt_hours", "project_mgmt_rate",
				"shipping_cost", "custom_lines", "markup_percent",
			} {
				recapCopy.Set(field, recaps[0].Get(field))
			}
			recapCopy.Set("item", itemCopy.Id)
			if err := app.Save(recapCopy); err != nil {
				return nil, err
			}
		}
	}

	adjustments, err := app.FindRecordsByFilter(adjCol, "project = {:projectId}", "", 0, 0,
		map[string]any{"projectId": source.Id})
	if err != nil {
		return nil, err
	}
	for _, adj := range adjustments {
		adjCopy := core.NewRecord(adjCol)
		adjCopy.Set("project", dup.Id)
		adjCopy.Set("description", adj.GetString("description"))
		adjCopy.Set("amount", adj.GetFloat("amount"))
		if err := app.Save(adjCopy); err != nil {
			return nil, err
		}
	}

	return dup, nil
}
