package services

// RecapLine is one user-named recap cost line priced as hours times rate.
type RecapLine struct {
	Name  string
	Hours float64
	Rate  float64
}

// RecapInput holds the per-item non-material, non-fabrication costs. Every
// hours/rate pair is recomputed on read; shipping is a flat entered cost.
type RecapInput struct {
	InstallationHours float64
	InstallationRate  float64
	DraftingHours     float64
	DraftingRate      float64
	EngineeringHours  float64
	EngineeringRate   float64
	ProjectMgmtHours  float64
	ProjectMgmtRate   float64
	ShippingCost      float64
	CustomLines       []RecapLine
	MarkupPercent     float64
}

// RecapTotals breaks out each recap component plus the marked-up total.
type RecapTotals struct {
	Installation float64
	Drafting     float64
	Engineering  float64
	ProjectMgmt  float64
	Shipping     float64
	Custom       float64
	Subtotal     float64
	Total        float64
}

// CalcRecap recomputes every recap component. The markup applies to the sum
// of all components, custom lines included.
func CalcRecap(r RecapInput) RecapTotals {
	t := RecapTotals{
		Installation: r.InstallationHours * r.InstallationRate,
		Drafting:     r.DraftingHours * r.DraftingRate,
		Engineering:  r.EngineeringHours * r.EngineeringRate,
		ProjectMgmt:  r.ProjectMgmtHours * r.ProjectMgmtRate,
		Shipping:     r.ShippingCost,
	}
	for _, line := range r.CustomLines {
		t.Custom += line.Hours * line.Rate
	}

	t.Subtotal = t.Installation + t.Drafting + t.Engineering + t.ProjectMgmt + t.Shipping + t.Custom
	t.Total = t.Subtotal * (1 + r.MarkupPercent/100)
	return t
}
