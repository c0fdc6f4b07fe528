package cart

// Cost is the priced form of a single cart line.
type Cost struct {
	Unit       float64
	Total      float64
	NetApplied bool
}

// ItemCost resolves the effective unit price for one line. The net tier
// applies only when the line carries both a minimum quantity and a net
// price, and the ordered quantity reaches the minimum. It is recomputed on
// every read so quantity edits immediately change tier eligibility.
func ItemCost(item LineItem) Cost {
	if item.MinQty > 0 && item.NetUnitPrice > 0 && item.Quantity >= item.MinQty {
		return Cost{
			Unit:       item.NetUnitPrice,
			Total:      item.NetUnitPrice * float64(item.Quantity),
			NetApplied: true,
		}
	}
	return Cost{
		Unit:  item.StandardPrice,
		Total: item.StandardPrice * float64(item.Quantity),
	}
}
