package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

// projectSummary pairs the composed bid totals with the rows that produced
// them, so the summary endpoint and both PDF exports share one builder.
type projectSummary struct {
	Project     *core.Record
	Items       []services.SummaryItem
	Breakdowns  map[string]services.ItemTotals
	Adjustments []services.AdjustmentRow
	Totals      services.SummaryTotals
}

// buildProjectSummary loads every bid line, prices it fully (item totals,
// recap, tax) and composes the bid.
func buildProjectSummary(app *pocketbase.PocketBase, projectID string) (projectSummary, error) {
	summary := projectSummary{Breakdowns: make(map[string]services.ItemTotals)}

	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return summary, fmt.Errorf("project not found: %w", err)
	}
	summary.Project = project
	tax := loadProjectTax(app, project)

	itemsCol, err := app.FindCollectionByNameOrId("estimate_items")
	if err != nil {
		return summary, fmt.Errorf("could not find estimate_items collection: %w", err)
	}
	items, err := app.FindRecordsByFilter(itemsCol, "project = {:projectId}", "sort_order", 0, 0,
		map[string]any{"projectId": projectID})
	if err != nil {
		return summary, fmt.Errorf("could not query items for project %s: %w", projectID, err)
	}

	for _, item := range items {
		input, err := loadItemInput(app, item)
		if err != nil {
			return summary, err
		}
		totals := services.CalcItem(input)
		summary.Breakdowns[item.Id] = totals

		recapInput, err := loadRecapInput(app, item.Id)
		if err != nil {
			return summary, err
		}
		recap := services.CalcRecap(recapInput)

		itemTax := services.CalcTax(tax,
			totals.MaterialCost+totals.MaterialMarkup,
			totals.FabCost+totals.FabMarkup)

		summary.Items = append(summary.Items, services.SummaryItem{
			ID:         item.Id,
			Name:       item.GetString("name"),
			Group:      services.ParseBreakoutGroup(item.GetString("breakout_group")),
			ItemTotal:  totals.Total,
			RecapTotal: recap.Total,
			Tax:        itemTax,
		})
	}

	adjCol, err := app.FindCollectionByNameOrId("summary_adjustments")
	if err != nil {
		return summary, fmt.Errorf("could not find summary_adjustments collection: %w", err)
	}
	adjustments, err := app.FindRecordsByFilter(adjCol, "project = {:projectId}", "created", 0, 0,
		map[string]any{"projectId": projectID})
	if err != nil {
		return summary, fmt.Errorf("could not query adjustments for project %s: %w", projectID, err)
	}

	var amounts []float64
	for _, adj := range adjustments {
		summary.Adjustments = append(summary.Adjustments, services.AdjustmentRow{
			Description: adj.GetString("description"),
			Amount:      adj.GetFloat("amount"),
		})
		amounts = append(amounts, adj.GetFloat("amount"))
	}

	summary.Totals = services.CalcSummary(summary.Items, amounts)
	return summary, nil
}

func summaryItemJSON(s services.SummaryItem) map[string]any {
	return map[string]any{
		"id":           s.ID,
		"name":         s.Name,
		"group":        string(s.Group),
		"item_total":   s.ItemTotal,
		"recap_total":  s.RecapTotal,
		"tax":          s.Tax,
		"loaded_total": s.LoadedTotal(),
	}
}

// HandleSummaryView returns the composed bid for a project: base bid,
// alternates, adjustments and the internal grand total.
func HandleSummaryView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		summary, err := buildProjectSummary(app, projectID)
		if err != nil {
			if summary.Project == nil {
				return apiError(e, http.StatusNotFound, "Project not found")
			}
			log.Printf("summary: HandleSummaryView: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		base := make([]map[string]any, 0, len(summary.Totals.BaseItems))
		for _, s := range summary.Totals.BaseItems {
			base = append(base, summaryItemJSON(s))
		}
		deducts := make([]map[string]any, 0, len(summary.Totals.Deducts))
		for _, s := range summary.Totals.Deducts {
			deducts = append(deducts, summaryItemJSON(s))
		}
		adds := make([]map[string]any, 0, len(summary.Totals.Adds))
		for _, s := range summary.Totals.Adds {
			adds = append(adds, summaryItemJSON(s))
		}
		adjustments := make([]map[string]any, 0, len(summary.Adjustments))
		for _, adj := range summary.Adjustments {
			adjustments = append(adjustments, map[string]any{
				"description": adj.Description,
				"amount":      adj.Amount,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"project":          summary.Project.Id,
			"base_items":       base,
			"deducts":          deducts,
			"adds":             adds,
			"adjustments":      adjustments,
			"adjustment_total": summary.Totals.AdjustmentTotal,
			"base_bid":         summary.Totals.BaseBid,
			"base_bid_words":   services.AmountToWords(summary.Totals.BaseBid),
			"grand_total":      summary.Totals.GrandTotal,
		})
	}
}
