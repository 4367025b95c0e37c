package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/collections"
	"steelquote/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed reference data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateBeamSizeNormalization(app); err != nil {
			log.Printf("Warning: beam size migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/api/estimating/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/estimating/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/api/estimating/projects/{id}", handlers.HandleProjectView(app))
		se.Router.PATCH("/api/estimating/projects/{id}", handlers.HandleProjectPatch(app))
		se.Router.DELETE("/api/estimating/projects/{id}", handlers.HandleProjectDelete(app))
		se.Router.POST("/api/estimating/projects/{id}/duplicate", handlers.HandleProjectDuplicate(app))
		se.Router.POST("/api/estimating/projects/{id}/archive", handlers.HandleProjectArchive(app))
		se.Router.POST("/api/estimating/projects/{id}/status", handlers.HandleProjectStatus(app))

		// ── Estimate items ───────────────────────────────────────
		se.Router.GET("/api/estimating/projects/{projectId}/items", handlers.HandleItemList(app))
		se.Router.POST("/api/estimating/projects/{projectId}/items", handlers.HandleItemCreate(app))
		se.Router.GET("/api/estimating/items/{id}", handlers.HandleItemView(app))
		se.Router.PATCH("/api/estimating/items/{id}", handlers.HandleItemPatch(app))
		se.Router.DELETE("/api/estimating/items/{id}", handlers.HandleItemDelete(app))

		// ── Materials ────────────────────────────────────────────
		se.Router.GET("/api/estimating/items/{itemId}/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/api/estimating/items/{itemId}/materials", handlers.HandleMaterialCreate(app))
		se.Router.PATCH("/api/estimating/materials/{id}", handlers.HandleMaterialPatch(app))
		se.Router.DELETE("/api/estimating/materials/{id}", handlers.HandleMaterialDelete(app))

		// ── Fabrication operations ───────────────────────────────
		se.Router.POST("/api/estimating/operations", handlers.HandleOperationCreate(app))
		se.Router.PATCH("/api/estimating/operations/{id}", handlers.HandleOperationPatch(app))
		se.Router.DELETE("/api/estimating/operations/{id}", handlers.HandleOperationDelete(app))

		// ── Recap costs ──────────────────────────────────────────
		se.Router.GET("/api/estimating/items/{itemId}/recap", handlers.HandleRecapView(app))
		se.Router.PUT("/api/estimating/items/{itemId}/recap", handlers.HandleRecapUpsert(app))

		// ── Summary adjustments ──────────────────────────────────
		se.Router.GET("/api/estimating/projects/{projectId}/adjustments", handlers.HandleAdjustmentList(app))
		se.Router.POST("/api/estimating/projects/{projectId}/adjustments", handlers.HandleAdjustmentCreate(app))
		se.Router.PATCH("/api/estimating/adjustments/{id}", handlers.HandleAdjustmentPatch(app))
		se.Router.DELETE("/api/estimating/adjustments/{id}", handlers.HandleAdjustmentDelete(app))

		// ── Summary and exports ──────────────────────────────────
		se.Router.GET("/api/estimating/projects/{projectId}/summary", handlers.HandleSummaryView(app))
		se.Router.GET("/api/estimating/projects/{projectId}/stock-list", handlers.HandleStockListView(app))
		se.Router.GET("/api/estimating/projects/{projectId}/stock-list/excel", handlers.HandleStockListExportExcel(app))
		se.Router.GET("/api/estimating/projects/{projectId}/export/quote", handlers.HandleQuoteExportPDF(app))
		se.Router.GET("/api/estimating/projects/{projectId}/export/estimate", handlers.HandleEstimateExportPDF(app))

		// ── Reference catalogs ───────────────────────────────────
		se.Router.GET("/api/estimating/shapes", handlers.HandleShapeList(app))
		se.Router.GET("/api/estimating/tax-categories", handlers.HandleTaxCategoryList(app))
		se.Router.GET("/api/estimating/connections/resolve", handlers.HandleBeamResolve(app))
		se.Router.GET("/api/estimating/connections/quote", handlers.HandleConnectionQuote(app))
		se.Router.GET("/api/estimating/connection-categories", handlers.HandleConnectionCategoryList(app))

		// ── Admin: connection pricing maintenance ────────────────
		admin := se.Router.Group("/api/estimating/admin")
		admin.Bind(apis.RequireSuperuserAuth())
		admin.POST("/connection-categories", handlers.HandleConnectionCategoryCreate(app))
		admin.PATCH("/connection-categories/{id}", handlers.HandleConnectionCategoryPatch(app))
		admin.DELETE("/connection-categories/{id}", handlers.HandleConnectionCategoryDelete(app))
		admin.GET("/connection-categories/{id}/beams", handlers.HandleBeamList(app))
		admin.POST("/connection-categories/{id}/beams", handlers.HandleBeamCreate(app))
		admin.PATCH("/beams/{id}", handlers.HandleBeamPatch(app))
		admin.DELETE("/beams/{id}", handlers.HandleBeamDelete(app))
		admin.GET("/rates", handlers.HandleRatesView(app))
		admin.PATCH("/rates", handlers.HandleRatesPatch(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
