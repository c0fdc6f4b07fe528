package services

import "strings"

// Stock feed state tokens.
const (
	StockStateInStock     = "in_stock"
	StockStateBuildShort  = "build_3_5"
	StockStateBuildLong   = "build_10_15"
	StockStateUnavailable = "unavailable"
)

// ResolveStockLabel maps a stock feed state token and on-hand quantity to
// the display label shown on product cards and cart lines. Unknown or
// missing states resolve to "Consult".
func ResolveStockLabel(state string, qty int) string {
	switch strings.ToLower(strings.TrimSpace(state)) {
	case StockStateInStock:
		if qty > 0 {
			return "In stock"
		}
		return "Out of stock"
	case StockStateBuildShort:
		return "3-5 days"
	case StockStateBuildLong:
		return "10-15 days"
	}
	return "Consult"
}

// StockHidden reports whether a product should be excluded from search
// results because the feed marks it unavailable.
func StockHidden(state string) bool {
	return strings.EqualFold(strings.TrimSpace(state), StockStateUnavailable)
}
