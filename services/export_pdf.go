package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF renders the customer-facing quote using maroto/v2 and
// returns the raw PDF bytes.
func GenerateQuotePDF(data QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuotePrice(m, data)
	addQuoteAlternates(m, data)
	addQuoteTextList(m, "Exclusions", data.Exclusions)
	addQuoteTextList(m, "Qualifications", data.Qualifications)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addQuoteHeader adds the project title and customer block.
func addQuoteHeader(m core.Maroto, data QuoteExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("PROPOSAL", props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	gray := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(7).Add(
			col.New(8).Add(
				text.New(data.ProjectName, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Date: %s", data.QuoteDate), props.Text{Size: 9, Align: align.Right, Color: gray}),
			),
		),
		row.New(6).Add(
			col.New(8).Add(
				text.New(data.Customer, props.Text{Size: 9, Align: align.Left, Color: gray}),
			),
			col.New(4).Add(
				text.New(data.DeliveryOption, props.Text{Size: 9, Align: align.Right, Color: gray}),
			),
		),
	)

	if data.Contact != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Attn: %s", data.Contact), props.Text{Size: 9, Align: align.Left, Color: gray}),
				),
			),
		)
	}

	m.AddRows(row.New(6))
}

// addQuotePrice adds the boxed base bid price with its spelled-out amount.
func addQuotePrice(m core.Maroto, data QuoteExportData) {
	boxBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	boxCell := &props.Cell{BackgroundColor: boxBg}
	white := &props.Color{Red: 255, Green: 255, Blue: 255}

	m.AddRows(
		row.New(14).Add(
			col.New(5).Add(
				text.New("BASE BID", props.Text{
					Size:  12,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: white,
					Left:  3,
					Top:   4,
				}),
			).WithStyle(boxCell),
			col.New(7).Add(
				text.New(FormatUSD(data.BaseBid), props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: white,
					Right: 3,
					Top:   4,
				}),
			).WithStyle(boxCell),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New(AmountToWords(data.BaseBid), props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
		row.New(4),
	)
}

// addQuoteAlternates lists deduct and add alternates individually.
func addQuoteAlternates(m core.Maroto, data QuoteExportData) {
	if len(data.Deducts) == 0 && len(data.Adds) == 0 {
		return
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Alternates", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
	)

	altBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	altCell := &props.Cell{BackgroundColor: altBg}

	addAltRow := func(label, name string, amount float64) {
		m.AddRows(
			row.New(7).Add(
				col.New(2).Add(
					text.New(label, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Left: 2}),
				).WithStyle(altCell),
				col.New(7).Add(
					text.New(name, props.Text{Size: 8, Align: align.Left}),
				).WithStyle(altCell),
				col.New(3).Add(
					text.New(FormatUSD(amount), props.Text{Size: 8, Align: align.Right, Right: 2}),
				).WithStyle(altCell),
			),
		)
	}

	for _, alt := range data.Deducts {
		addAltRow("Deduct", alt.Name, -alt.Amount)
	}
	for _, alt := range data.Adds {
		addAltRow("Add", alt.Name, alt.Amount)
	}

	m.AddRows(row.New(4))
}

// addQuoteTextList renders an exclusions or qualifications section.
func addQuoteTextList(m core.Maroto, title string, lines []string) {
	if len(lines) == 0 {
		return
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
	)

	for _, line := range lines {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New("• "+line, props.Text{Size: 8, Align: align.Left, Left: 2}),
				),
			),
		)
	}

	m.AddRows(row.New(3))
}
