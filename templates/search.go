package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type ProductCardItem struct {
	Reference   string
	Description string
	PriceLabel  string
	NetLabel    string
	StockLabel  string
	StockClass  string
}

type SearchPageData struct {
	Query string
}

type ResultsData struct {
	Query string
	Items []ProductCardItem
}

// SearchPage renders the catalog search screen. Results load into
// #results as the user types.
func SearchPage(data SearchPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="search">
<form class="search-form" hx-get="/search" hx-target="#results" hx-trigger="input changed delay:300ms from:#q, submit">
<input id="q" name="q" type="search" value="%s" placeholder="Search by reference or description" autocomplete="off" autofocus>
</form>
<div id="results"></div>
</section>
`, templ.EscapeString(data.Query))
		return err
	})
}

// SearchResults renders the result cards partial for a query.
func SearchResults(data ResultsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(data.Query) < 2 {
			_, err := io.WriteString(w, `<p class="hint">Type at least 2 characters to search.</p>`)
			return err
		}
		if len(data.Items) == 0 {
			_, err := fmt.Fprintf(w, `<p class="hint">No products match "%s".</p>`, templ.EscapeString(data.Query))
			return err
		}
		for _, it := range data.Items {
			if _, err := fmt.Fprintf(w, `<article class="product-card">
<header>
<span class="ref">%s</span>
<span class="stock %s">%s</span>
</header>
<p class="desc">%s</p>
<p class="price">%s</p>
<p class="net">%s</p>
<form hx-post="/cart/items" hx-target="#cart-panel" hx-swap="innerHTML">
<input type="hidden" name="reference" value="%s">
<input type="number" name="quantity" value="1" min="1">
<button type="submit">Add</button>
</form>
</article>
`,
				templ.EscapeString(it.Reference),
				templ.EscapeString(it.StockClass),
				templ.EscapeString(it.StockLabel),
				templ.EscapeString(it.Description),
				templ.EscapeString(it.PriceLabel),
				templ.EscapeString(it.NetLabel),
				templ.EscapeString(it.Reference),
			); err != nil {
				return err
			}
		}
		return nil
	})
}
