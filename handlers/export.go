package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

// buildQuoteExportData lays out the customer-facing quote: base bid with
// adjustments already folded in, alternates listed separately.
func buildQuoteExportData(summary projectSummary) services.QuoteExportData {
	project := summary.Project

	data := services.QuoteExportData{
		ProjectName:    project.GetString("name"),
		Customer:       project.GetString("customer_name"),
		Contact:        project.GetString("contact_name"),
		QuoteDate:      project.GetString("bid_date"),
		DeliveryOption: project.GetString("delivery_option"),
		BaseBid:        summary.Totals.BaseBid,
		Exclusions:     recordStringList(project, "exclusions"),
		Qualifications: recordStringList(project, "qualifications"),
	}
	for _, s := range summary.Totals.Deducts {
		data.Deducts = append(data.Deducts, services.QuoteAlternate{
			Name:   s.Name,
			Amount: s.LoadedTotal(),
			Deduct: true,
		})
	}
	for _, s := range summary.Totals.Adds {
		data.Adds = append(data.Adds, services.QuoteAlternate{
			Name:   s.Name,
			Amount: s.LoadedTotal(),
		})
	}
	return data
}

// HandleQuoteExportPDF generates and downloads the customer quote.
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		summary, err := buildProjectSummary(app, projectID)
		if err != nil {
			if summary.Project == nil {
				return apiError(e, http.StatusNotFound, "Project not found")
			}
			log.Printf("export: HandleQuoteExportPDF: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		pdfBytes, err := services.GenerateQuotePDF(buildQuoteExportData(summary))
		if err != nil {
			log.Printf("export: HandleQuoteExportPDF: generate error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := fmt.Sprintf("%s-quote.pdf", sanitizeFilename(summary.Project.GetString("name")))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// buildEstimateExportData lays out the internal estimate sheet with the full
// per-line cost breakdown, adjustments shown individually.
func buildEstimateExportData(summary projectSummary) services.EstimateExportData {
	project := summary.Project

	createdDate := ""
	if dt := project.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("01/02/2006")
	}

	data := services.EstimateExportData{
		ProjectName: project.GetString("name"),
		CreatedDate: createdDate,
		Adjustments: summary.Adjustments,
		BaseBid:     summary.Totals.BaseBid,
		GrandTotal:  summary.Totals.GrandTotal,
	}
	for _, s := range summary.Items {
		breakdown := summary.Breakdowns[s.ID]
		data.Rows = append(data.Rows, services.EstimateExportRow{
			Name:           s.Name,
			Group:          string(s.Group),
			MaterialCost:   breakdown.MaterialCost,
			MaterialMarkup: breakdown.MaterialMarkup,
			FabCost:        breakdown.FabCost,
			FabMarkup:      breakdown.FabMarkup,
			ItemTotal:      s.ItemTotal,
			RecapTotal:     s.RecapTotal,
			Tax:            s.Tax,
			LoadedTotal:    s.LoadedTotal(),
		})
	}
	return data
}

// HandleEstimateExportPDF generates and downloads the internal estimate sheet.
func HandleEstimateExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		summary, err := buildProjectSummary(app, projectID)
		if err != nil {
			if summary.Project == nil {
				return apiError(e, http.StatusNotFound, "Project not found")
			}
			log.Printf("export: HandleEstimateExportPDF: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		pdfBytes, err := services.GenerateEstimatePDF(buildEstimateExportData(summary))
		if err != nil {
			log.Printf("export: HandleEstimateExportPDF: generate error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF")
		}

		filename := fmt.Sprintf("%s-estimate.pdf", sanitizeFilename(summary.Project.GetString("name")))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
