// Package templates holds the server-rendered views of the catalog quote
// tool as templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps a body component in the page shell: HTMX runtime, toast
// listener and the floating cart button.
func Layout(title string, cartCount int, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="/static/htmx.min.js"></script>
<script src="/static/app.js" defer></script>
<link rel="stylesheet" href="/static/styles.css">
</head>
<body>
<div id="toast-container"></div>
<header class="topbar">
<a href="/" class="brand">Catalog Quote</a>
<button id="cart-fab" hx-get="/cart" hx-target="#cart-panel" hx-swap="innerHTML">
Cart <span id="cart-count">%d</span>
</button>
</header>
<main>
`, templ.EscapeString(title), cartCount); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `
</main>
<aside id="cart-panel"></aside>
</body>
</html>
`)
		return err
	})
}
