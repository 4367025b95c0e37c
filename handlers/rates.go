package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"steelquote/services"
)

// loadPricingRates returns the singleton pricing_rates row.
func loadPricingRates(app *pocketbase.PocketBase) (*core.Record, error) {
	col, err := app.FindCollectionByNameOrId("pricing_rates")
	if err != nil {
		return nil, fmt.Errorf("could not find pricing_rates collection: %w", err)
	}
	records, err := app.FindRecordsByFilter(col, "", "", 1, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("could not query pricing_rates: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("pricing_rates has no row; seed has not run")
	}
	return records[0], nil
}

func pricingRatesFromRecord(r *core.Record) services.PricingRates {
	return services.PricingRates{
		ShopRate:         r.GetFloat("shop_rate"),
		AvgMaterialPrice: r.GetFloat("avg_material_price"),
		DiscountOver20:   r.GetFloat("discount_over_20"),
		DiscountOver100:  r.GetFloat("discount_over_100"),
	}
}

func ratesJSON(r *core.Record) map[string]any {
	return map[string]any{
		"shop_rate":          r.GetFloat("shop_rate"),
		"avg_material_price": r.GetFloat("avg_material_price"),
		"discount_over_20":   r.GetFloat("discount_over_20"),
		"discount_over_100":  r.GetFloat("discount_over_100"),
	}
}

// HandleRatesView returns the global pricing rates.
func HandleRatesView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := loadPricingRates(app)
		if err != nil {
			log.Printf("rates: HandleRatesView: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		return e.JSON(http.StatusOK, ratesJSON(record))
	}
}

// HandleRatesPatch updates the global pricing rates.
func HandleRatesPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := loadPricingRates(app)
		if err != nil {
			log.Printf("rates: HandleRatesPatch: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		var body struct {
			ShopRate         *float64 `json:"shop_rate"`
			AvgMaterialPrice *float64 `json:"avg_material_price"`
			DiscountOver20   *float64 `json:"discount_over_20"`
			DiscountOver100  *float64 `json:"discount_over_100"`
		}
		if err := e.BindBody(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		if body.ShopRate != nil {
			record.Set("shop_rate", *body.ShopRate)
		}
		if body.AvgMaterialPrice != nil {
			record.Set("avg_material_price", *body.AvgMaterialPrice)
		}
		if body.DiscountOver20 != nil {
			record.Set("discount_over_20", *body.DiscountOver20)
		}
		if body.DiscountOver100 != nil {
			record.Set("discount_over_100", *body.DiscountOver100)
		}

		if err := app.Save(record); err != nil {
			log.Printf("rates: HandleRatesPatch: save error: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not update rates")
		}
		return e.JSON(http.StatusOK, ratesJSON(record))
	}
}

// HandleConnectionQuote prices a connection at quantity, applying the volume
// discount tiers from the global rates.
func HandleConnectionQuote(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()
		base, err := strconv.ParseFloat(q.Get("cost"), 64)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Missing or invalid cost parameter")
		}
		pieces, err := strconv.ParseFloat(q.Get("pieces"), 64)
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Missing or invalid pieces parameter")
		}

		record, err := loadPricingRates(app)
		if err != nil {
			log.Printf("rates: HandleConnectionQuote: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		rates := pricingRatesFromRecord(record)

		discount := services.QuantityDiscountPercent(rates, pieces)
		return e.JSON(http.StatusOK, map[string]any{
			"unit_cost":        base,
			"pieces":           pieces,
			"discount_percent": discount,
			"total":            services.DiscountedConnectionCost(base, rates, pieces) * pieces,
			"unit_discounted":  services.DiscountedConnectionCost(base, rates, pieces),
		})
	}
}
