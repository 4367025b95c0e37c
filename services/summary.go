package services

// BreakoutGroup classifies a bid line as part of the mandatory base bid, an
// optional deduction, or an optional addition.
type BreakoutGroup string

const (
	GroupBase   BreakoutGroup = "base"
	GroupDeduct BreakoutGroup = "deduct"
	GroupAdd    BreakoutGroup = "add"
)

// ParseBreakoutGroup maps a stored value to a group; anything unrecognized
// (including the empty string) is base.
func ParseBreakoutGroup(s string) BreakoutGroup {
	switch BreakoutGroup(s) {
	case GroupDeduct:
		return GroupDeduct
	case GroupAdd:
		return GroupAdd
	default:
		return GroupBase
	}
}

// SummaryItem is one bid line with its fully loaded pricing: item total plus
// recap plus tax.
type SummaryItem struct {
	ID         string
	Name       string
	Group      BreakoutGroup
	ItemTotal  float64
	RecapTotal float64
	Tax        float64
}

// LoadedTotal is the number the summary and quote present per line.
func (s SummaryItem) LoadedTotal() float64 {
	return s.ItemTotal + s.RecapTotal + s.Tax
}

// SummaryTotals is the composed bid. Adjustments fold into the base bid and
// never show as a separate line on the customer quote; alternates are listed
// individually and never pre-combined into the base price. GrandTotal is the
// internal view summing every item regardless of group plus adjustments.
type SummaryTotals struct {
	BaseItems       []SummaryItem
	Deducts         []SummaryItem
	Adds            []SummaryItem
	AdjustmentTotal float64
	BaseBid         float64
	GrandTotal      float64
}

// CalcSummary partitions items by breakout group and composes the bid price.
func CalcSummary(items []SummaryItem, adjustments []float64) SummaryTotals {
	var totals SummaryTotals
	for _, adj := range adjustments {
		totals.AdjustmentTotal += adj
	}

	for _, item := range items {
		switch item.Group {
		case GroupDeduct:
			totals.Deducts = append(totals.Deducts, item)
		case GroupAdd:
			totals.Adds = append(totals.Adds, item)
		default:
			totals.BaseItems = append(totals.BaseItems, item)
			totals.BaseBid += item.LoadedTotal()
		}
		totals.GrandTotal += item.LoadedTotal()
	}

	totals.BaseBid += totals.AdjustmentTotal
	totals.GrandTotal += totals.AdjustmentTotal
	return totals
}
