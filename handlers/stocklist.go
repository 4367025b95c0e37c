package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

// loadProjectMaterials flattens every item's materials into one list for
// project-wide consolidation.
func loadProjectMaterials(app *pocketbase.PocketBase, projectID string) ([]services.ItemMaterial, error) {
	itemsCol, err := app.FindCollectionByNameOrId("estimate_items")
	if err != nil {
		return nil, fmt.Errorf("could not find estimate_items collection: %w", err)
	}
	items, err := app.FindRecordsByFilter(itemsCol, "project = {:projectId}", "sort_order", 0, 0,
		map[string]any{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("could not query items for project %s: %w", projectID, err)
	}

	var all []services.ItemMaterial
	for _, item := range items {
		input, err := loadItemInput(app, item)
		if err != nil {
			return nil, err
		}
		all = append(all, input.Materials...)
	}
	return all, nil
}

func stockListExportData(app *pocketbase.PocketBase, projectID string) (services.StockListExportData, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return services.StockListExportData{}, fmt.Errorf("project not found: %w", err)
	}

	materials, err := loadProjectMaterials(app, projectID)
	if err != nil {
		return services.StockListExportData{}, err
	}

	createdDate := ""
	if dt := project.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("01/02/2006")
	}
	return services.BuildStockListExport(project.GetString("name"), createdDate, materials), nil
}

// HandleStockListView returns the consolidated procurement list as JSON.
func HandleStockListView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		data, err := stockListExportData(app, projectID)
		if err != nil {
			log.Printf("stocklist: HandleStockListView: %v", err)
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		rows := make([]map[string]any, 0, len(data.Rows))
		for _, r := range data.Rows {
			rows = append(rows, map[string]any{
				"shape_category":  r.ShapeCategory,
				"shape":           r.Shape,
				"stock_length_ft": r.StockLengthFt,
				"pieces":          r.Pieces,
				"weight":          r.Weight,
			})
		}
		return e.JSON(http.StatusOK, map[string]any{
			"project_name": data.ProjectName,
			"rows":         rows,
			"total_pieces": data.TotalPieces,
			"total_weight": data.TotalWeight,
		})
	}
}

// HandleStockListExportExcel generates and downloads the stock list workbook.
func HandleStockListExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		data, err := stockListExportData(app, projectID)
		if err != nil {
			log.Printf("stocklist: HandleStockListExportExcel: %v", err)
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		fileBytes, err := services.GenerateStockListExcel(data)
		if err != nil {
			log.Printf("stocklist: HandleStockListExportExcel: generate error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("%s-stock-list.xlsx", sanitizeFilename(data.ProjectName))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(fileBytes)
		return nil
	}
}
