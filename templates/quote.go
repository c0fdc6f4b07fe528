package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type MarginFormData struct {
	Channel string
}

type QuoteResultData struct {
	Channel    string
	Text       string
	ShareURL   string
	ShareLabel string
	PDFLink    string
}

type OrderResultData struct {
	Text      string
	MailtoURL string
}

// MarginForm renders the margin prompt shown after a quote channel is
// picked. Confirm submits the margin, cancel returns to the cart. The
// pending channel lives in the server-side flow state, not the form; it
// only steers which extra inputs render. The email channel gets an
// optional recipient field for a direct send.
func MarginForm(data MarginFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		recipient := ""
		if data.Channel == "email" {
			recipient = `<input name="to" type="email" placeholder="client@example.com (optional, sends directly)">
`
		}
		_, err := fmt.Fprintf(w, `<div class="margin-prompt">
<h2>Profit margin</h2>
<p class="hint">Margin to apply on cost prices, in percent. Leave empty for 0.</p>
<form hx-post="/quote/confirm" hx-target="#cart-panel" hx-swap="innerHTML">
<input name="margin" type="text" inputmode="decimal" placeholder="20" autofocus>
%s<button type="submit">Generate quote</button>
<button type="button" hx-post="/quote/cancel" hx-target="#cart-panel" hx-swap="innerHTML">Cancel</button>
</form>
</div>
`, recipient)
		return err
	})
}

// QuoteResult renders the composed client quote text together with the
// share link for the chosen channel.
func QuoteResult(data QuoteResultData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="quote-result">
<h2>Client quote</h2>
<pre class="quote-text">%s</pre>
<div class="quote-actions">
<a href="%s" class="button" target="_blank" rel="noopener">%s</a>
<a href="%s" class="button">Download PDF</a>
</div>
</div>
`,
			templ.EscapeString(data.Text),
			templ.EscapeString(data.ShareURL),
			templ.EscapeString(data.ShareLabel),
			templ.EscapeString(data.PDFLink),
		)
		return err
	})
}

// OrderResult renders the supplier order text with its mailto link.
func OrderResult(data OrderResultData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="order-result">
<h2>Supplier order</h2>
<pre class="order-text">%s</pre>
<div class="order-actions">
<a href="%s" class="button" target="_blank" rel="noopener">Send by email</a>
</div>
</div>
`,
			templ.EscapeString(data.Text),
			templ.EscapeString(data.MailtoURL),
		)
		return err
	})
}
