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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateEstimatePDF renders the internal job-folder estimate sheet with
// the full per-item cost breakdown and returns the raw PDF bytes.
func GenerateEstimatePDF(data EstimateExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data)
	addEstimateTableHeader(m)
	for _, r := range data.Rows {
		addEstimateRow(m, r)
	}
	addEstimateSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate estimate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addEstimateHeader(m core.Maroto, data EstimateExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Estimate – %s", data.ProjectName), props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Generated: %s (internal)", data.CreatedDate), props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
		row.New(4),
	)
}

func addEstimateTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(2).Add(text.New("Item", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Group", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Material", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Mat Markup", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Fab", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Fab Markup", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Item Total", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Recap", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Tax", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Loaded", headerText)).WithStyle(&headerCell),
		),
	)
}

func addEstimateRow(m core.Maroto, r EstimateExportRow) {
	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	var cellStyle *props.Cell
	if r.Group != string(GroupBase) {
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	cols := []core.Col{
		col.New(2).Add(text.New(r.Name, leftText)),
		col.New(1).Add(text.New(r.Group, baseText)),
		col.New(1).Add(text.New(FormatUSD(r.MaterialCost), rightText)),
		col.New(1).Add(text.New(FormatUSD(r.MaterialMarkup), rightText)),
		col.New(1).Add(text.New(FormatUSD(r.FabCost), rightText)),
		col.New(1).Add(text.New(FormatUSD(r.FabMarkup), rightText)),
		col.New(2).Add(text.New(FormatUSD(r.ItemTotal), rightText)),
		col.New(1).Add(text.New(FormatUSD(r.RecapTotal), rightText)),
		col.New(1).Add(text.New(FormatUSD(r.Tax), rightText)),
		col.New(1).Add(text.New(FormatUSD(r.LoadedTotal), rightText)),
	}

	if cellStyle != nil {
		for i := range cols {
			cols[i] = cols[i].WithStyle(cellStyle)
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}

func addEstimateSummary(m core.Maroto, data EstimateExportData) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Right: 2}

	for _, adj := range data.Adjustments {
		m.AddRows(
			row.New(6).Add(
				col.New(9).Add(text.New(fmt.Sprintf("Adjustment: %s", adj.Description), props.Text{Size: 8, Align: align.Right})),
				col.New(3).Add(text.New(FormatUSD(adj.Amount), props.Text{Size: 8, Align: align.Right, Right: 2})),
			),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Base Bid", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatUSD(data.BaseBid), valueStyle)).WithStyle(summaryCell),
		),
		row.New(8).Add(
			col.New(9).Add(text.New("Grand Total (all groups)", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatUSD(data.GrandTotal), valueStyle)).WithStyle(summaryCell),
		),
	)
}
