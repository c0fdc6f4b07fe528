package services

import (
	"time"

	"catalogquote/cart"
)

// ExportRow is one cart line in the cost-basis export table.
type ExportRow struct {
	Reference   string
	Description string
	Quantity    int
	UnitCost    float64
	LineCost    float64
	NetApplied  bool
	StockLabel  string
}

// ExportData holds everything the tabular export needs.
type ExportData struct {
	Title       string
	Reference   string
	CreatedDate string
	Rows        []ExportRow
	Subtotal    float64
}

// BuildExportData shapes the cart into the cost-basis table consumed by the
// Excel export: reference, description, quantity, unit cost, line cost plus
// the running subtotal. No margin is ever applied here.
func BuildExportData(items []cart.LineItem, now time.Time) ExportData {
	data := ExportData{
		Title:       "Cart Cost Summary",
		Reference:   newDocRef(),
		CreatedDate: now.Format("02 Jan 2006"),
	}

	for _, it := range items {
		cost := cart.ItemCost(it)
		data.Rows = append(data.Rows, ExportRow{
			Reference:   it.Reference,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitCost:    cost.Unit,
			LineCost:    cost.Total,
			NetApplied:  cost.NetApplied,
			StockLabel:  it.StockLabel,
		})
		data.Subtotal += cost.Total
	}

	return data
}
