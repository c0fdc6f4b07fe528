package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type CartLine struct {
	Index       int
	Reference   string
	Description string
	Quantity    int
	UnitLabel   string
	TotalLabel  string
	StockLabel  string
	NetApplied  bool
}

type CartData struct {
	Lines         []CartLine
	SubtotalLabel string
}

// CartPanel renders the cart side panel with line items, the cost
// subtotal and the action bar.
func CartPanel(data CartData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(data.Lines) == 0 {
			_, err := io.WriteString(w, `<div class="cart">
<h2>Cart</h2>
<p class="hint">Your cart is empty.</p>
</div>
`)
			return err
		}
		if _, err := io.WriteString(w, `<div class="cart">
<h2>Cart</h2>
<ul class="cart-lines">
`); err != nil {
			return err
		}
		for _, ln := range data.Lines {
			netBadge := ""
			if ln.NetApplied {
				netBadge = `<span class="badge-net">net price</span>`
			}
			if _, err := fmt.Fprintf(w, `<li class="cart-line">
<span class="ref">%s</span>
<span class="desc">%s</span>
<span class="qty">%d x %s</span>
<span class="total">%s</span>
<span class="stock">%s</span>
%s
<button hx-delete="/cart/items/%d" hx-target="#cart-panel" hx-swap="innerHTML" aria-label="Remove">&times;</button>
</li>
`,
				templ.EscapeString(ln.Reference),
				templ.EscapeString(ln.Description),
				ln.Quantity,
				templ.EscapeString(ln.UnitLabel),
				templ.EscapeString(ln.TotalLabel),
				templ.EscapeString(ln.StockLabel),
				netBadge,
				ln.Index,
			); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `</ul>
<p class="subtotal">Cost subtotal: <strong>%s</strong></p>
<div class="cart-actions">
<button hx-get="/quote/new?channel=messaging" hx-target="#cart-panel" hx-swap="innerHTML">Quote via messaging</button>
<button hx-get="/quote/new?channel=email" hx-target="#cart-panel" hx-swap="innerHTML">Quote via email</button>
<button hx-post="/order/supplier" hx-target="#cart-panel" hx-swap="innerHTML">Order from supplier</button>
<a href="/cart/export/excel" class="button">Excel</a>
<a href="/cart/export/pdf" class="button">PDF</a>
<button hx-delete="/cart" hx-target="#cart-panel" hx-swap="innerHTML" hx-confirm="Empty the cart?">Clear</button>
</div>
</div>
`, templ.EscapeString(data.SubtotalLabel))
		return err
	})
}
