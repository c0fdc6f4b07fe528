// Package services provides quote composition, pricing text parsing and
// document generation for the catalog quote tool.
package services

import (
	"regexp"
	"strconv"
	"strings"
)

// NetCondition is the structured form of a free-text volume offer such as
// "neto 8,50 € a partir de 24 uds". Zero values mean no net tier.
type NetCondition struct {
	MinQty       int
	NetUnitPrice float64
	Note         string
}

var (
	// Quantity followed by a unit word ("24 uds", "10 units", "5 boxes").
	minQtyUnitRe = regexp.MustCompile(`(?i)(\d+)\s*(uds?|unid\w*|units?|pzs?|pza\w*|pcs?|pieces?|cjs?|cajas?|box(es)?)`)
	// Fallback: a bare number of at least two digits.
	minQtyBareRe = regexp.MustCompile(`\b(\d{2,})\b`)

	// Price followed by a euro sign ("8,50 €", "12.00€").
	netPriceEuroRe = regexp.MustCompile(`(\d+[.,]?\d*)\s*€`)
	// Fallback: "net: 8.50" / "neto 8,50".
	netPriceKeywordRe = regexp.MustCompile(`(?i)neto?\s*:?\s*(\d+[.,]?\d*)`)
)

// ParseNetCondition extracts the minimum quantity and net unit price from a
// free-text offer. Tariff feeds write these conditions by hand, so the
// extraction is best effort: anything unreadable yields the zero values,
// which disables the net tier downstream.
func ParseNetCondition(text string) NetCondition {
	nc := NetCondition{Note: strings.TrimSpace(text)}
	if nc.Note == "" {
		return nc
	}

	if m := minQtyUnitRe.FindStringSubmatch(text); m != nil {
		nc.MinQty, _ = strconv.Atoi(m[1])
	} else if m := minQtyBareRe.FindStringSubmatch(text); m != nil {
		nc.MinQty, _ = strconv.Atoi(m[1])
	}

	if m := netPriceEuroRe.FindStringSubmatch(text); m != nil {
		nc.NetUnitPrice = parseDecimal(m[1])
	} else if m := netPriceKeywordRe.FindStringSubmatch(text); m != nil {
		nc.NetUnitPrice = parseDecimal(m[1])
	}

	return nc
}

// parseDecimal reads a number that may use a comma as decimal separator.
func parseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}
