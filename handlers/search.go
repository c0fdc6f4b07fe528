package handlers

import (
	"log"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/cart"
	"catalogquote/services"
	"catalogquote/templates"
)

// HandleHome renders the search screen.
func HandleHome(app *pocketbase.PocketBase, store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.SearchPageData{
			Query: strings.TrimSpace(e.Request.URL.Query().Get("q")),
		}
		page := templates.Layout("Catalog Quote", store.Len(), templates.SearchPage(data))
		return page.Render(e.Request.Context(), e.Response)
	}
}

// HandleSearch returns the result cards partial for a catalog query.
// Queries shorter than 2 characters return a hint instead of results,
// and products marked unavailable in the stock feed are excluded.
func HandleSearch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := strings.TrimSpace(e.Request.URL.Query().Get("q"))

		data := templates.ResultsData{Query: query}
		if len(query) < 2 {
			return templates.SearchResults(data).Render(e.Request.Context(), e.Response)
		}

		records, err := app.FindRecordsByFilter(
			"products",
			"reference ~ {:q} || description ~ {:q}",
			"reference",
			0, 0,
			map[string]any{"q": query},
		)
		if err != nil {
			log.Printf("search: could not query products: %v", err)
			records = nil
		}

		for _, rec := range records {
			state, qty := stockFor(app, rec.GetString("reference"))
			if services.StockHidden(state) {
				continue
			}
			label := services.ResolveStockLabel(state, qty)
			data.Items = append(data.Items, templates.ProductCardItem{
				Reference:   rec.GetString("reference"),
				Description: rec.GetString("description"),
				PriceLabel:  services.FormatEUR(rec.GetFloat("standard_price")),
				NetLabel:    rec.GetString("net_condition"),
				StockLabel:  label,
				StockClass:  stockClass(label),
			})
		}

		var component templ.Component = templates.SearchResults(data)
		return component.Render(e.Request.Context(), e.Response)
	}
}

// stockFor returns the feed state and on-hand quantity for a reference.
// A missing stock row reads as an unknown state.
func stockFor(app core.App, reference string) (string, int) {
	rec, err := app.FindFirstRecordByData("stock_levels", "reference", reference)
	if err != nil {
		return "", 0
	}
	return rec.GetString("state"), rec.GetInt("qty")
}

func stockClass(label string) string {
	switch label {
	case "In stock":
		return "ok"
	case "Out of stock":
		return "ko"
	case "3-5 days", "10-15 days":
		return "fab"
	}
	return "none"
}
