package handlers

import (
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/cart"
	"catalogquote/services"
	"catalogquote/templates"
)

// renderCartPanel renders the cart side panel from the current store state.
func renderCartPanel(e *core.RequestEvent, store *cart.Store) error {
	items := store.Items()

	data := templates.CartData{
		SubtotalLabel: services.FormatEUR(store.Subtotal()),
	}
	for i, it := range items {
		cost := cart.ItemCost(it)
		data.Lines = append(data.Lines, templates.CartLine{
			Index:       i,
			Reference:   it.Reference,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitLabel:   services.FormatEUR(cost.Unit),
			TotalLabel:  services.FormatEUR(cost.Total),
			StockLabel:  it.StockLabel,
			NetApplied:  cost.NetApplied,
		})
	}
	return templates.CartPanel(data).Render(e.Request.Context(), e.Response)
}

// HandleCartPanel renders the cart panel.
func HandleCartPanel(store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderCartPanel(e, store)
	}
}

// HandleCartAdd adds a catalog product to the cart. Adding a reference
// already present increments its quantity.
func HandleCartAdd(app *pocketbase.PocketBase, store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		reference := e.Request.FormValue("reference")
		if reference == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing product reference")
		}

		rec, err := app.FindFirstRecordByData("products", "reference", reference)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Product not found")
		}

		quantity, _ := strconv.Atoi(e.Request.FormValue("quantity"))

		state, qty := stockFor(app, reference)
		store.Add(cart.AddInput{
			Reference:     rec.GetString("reference"),
			Description:   rec.GetString("description"),
			StandardPrice: rec.GetFloat("standard_price"),
			Quantity:      quantity,
			NetCondition:  rec.GetString("net_condition"),
			MinQty:        rec.GetInt("min_qty"),
			NetUnitPrice:  rec.GetFloat("net_unit_price"),
			StockLabel:    services.ResolveStockLabel(state, qty),
		})

		SetToast(e, "success", "Added to cart")
		return renderCartPanel(e, store)
	}
}

// HandleCartRemove removes the cart line at the index in the URL path.
// A stale index (line already gone) leaves the cart untouched.
func HandleCartRemove(store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid line index")
		}
		if !store.Remove(index) {
			SetToast(e, "warning", "That line is no longer in the cart")
		}
		return renderCartPanel(e, store)
	}
}

// HandleCartClear empties the cart.
func HandleCartClear(store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		store.Clear()
		SetToast(e, "success", "Cart emptied")
		return renderCartPanel(e, store)
	}
}
