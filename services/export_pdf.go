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

// GenerateQuotePDF renders a client quote as a PDF document using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateQuotePDF(q ClientQuote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, q)
	addQuoteTableHeader(m)
	for _, l := range q.Lines {
		addQuoteTableRow(m, l)
	}
	addQuoteSummary(m, q)
	addQuoteFooter(m, q)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader adds the title, reference and date to the PDF.
func addQuoteHeader(m core.Maroto, q ClientQuote) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("QUOTE", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Reference: %s", q.Reference), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", q.Date.Format("02 Jan 2006")), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addQuoteTableHeader adds the column header row for the quote table.
func addQuoteTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(2).Add(
				text.New("Reference", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(5).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unit Price", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Line Total", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addQuoteTableRow adds a single line to the quote table.
func addQuoteTableRow(m core.Maroto, l QuoteLine) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(2).Add(text.New(l.Reference, leftText)),
			col.New(5).Add(text.New(l.Description, leftText)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), rightText)),
			col.New(2).Add(text.New(FormatEUR(l.UnitPrice), rightText)),
			col.New(2).Add(text.New(FormatEUR(l.LineTotal), rightText)),
		),
	)
}

// addQuoteSummary adds the grand total and the tax notice.
func addQuoteSummary(m core.Maroto, q ClientQuote) {
	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(
				text.New("TOTAL", labelStyle),
			).WithStyle(summaryCell),
			col.New(4).Add(
				text.New(FormatEUR(q.GrandTotal), valueStyle),
			).WithStyle(summaryCell),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New("Taxes not included.", props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)
}

// addQuoteFooter adds the datasheet link and the generated date.
func addQuoteFooter(m core.Maroto, q ClientQuote) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Datasheets and certificates: %s", DatasheetURL),
					props.Text{
						Size:  8,
						Align: align.Left,
						Color: &props.Color{Red: 0, Green: 70, Blue: 140},
					},
				),
			),
		),
	)
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", q.Date.Format("02 Jan 2006")),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
