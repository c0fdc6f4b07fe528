package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"catalogquote/cart"
)

const (
	// DatasheetURL is the public library of technical datasheets and
	// certificates that client quotes link to. Supplier orders must never
	// contain it.
	DatasheetURL = "https://cvtoolssl.github.io/Alta_Cliente/fichas.html"

	// SupplierOrderEmail receives internal purchase orders.
	SupplierOrderEmail = "pedidos@cvtools.com"
)

// QuoteLine is one priced row of a composed document.
type QuoteLine struct {
	Reference   string
	Description string
	Quantity    int
	UnitPrice   float64
	LineTotal   float64
	NetApplied  bool
}

// ClientQuote is the margin-adjusted document for the end client.
type ClientQuote struct {
	Reference  string
	Date       time.Time
	MarginPct  float64
	Lines      []QuoteLine
	GrandTotal float64
}

// SupplierOrder is the internal cost-basis purchase request. It carries no
// margin-adjusted figures and no datasheet link.
type SupplierOrder struct {
	Date     time.Time
	Lines    []QuoteLine
	Subtotal float64
}

// BuildClientQuote prices every cart line at cost and marks it up by the
// given margin percentage: unit = cost × (1 + m/100). A margin of 0
// reproduces the cost basis exactly. Accumulation runs at full precision;
// rounding happens at render time.
func BuildClientQuote(items []cart.LineItem, marginPct float64, now time.Time) ClientQuote {
	q := ClientQuote{
		Reference: newDocRef(),
		Date:      now,
		MarginPct: marginPct,
	}

	for _, it := range items {
		cost := cart.ItemCost(it)
		unit := cost.Unit * (1 + marginPct/100)
		total := unit * float64(it.Quantity)

		q.Lines = append(q.Lines, QuoteLine{
			Reference:   it.Reference,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   unit,
			LineTotal:   total,
			NetApplied:  cost.NetApplied,
		})
		q.GrandTotal += total
	}
	return q
}

// Text renders the quote as messaging-ready plain text (WhatsApp-style
// bold markers), ending with the tax notice and the datasheet link.
func (q ClientQuote) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "📑 *QUOTE %s*\n", q.Reference)
	fmt.Fprintf(&b, "📅 Date: %s\n", q.Date.Format("02/01/2006"))
	b.WriteString("--------------------------------\n\n")

	for _, l := range q.Lines {
		fmt.Fprintf(&b, "🔹 *%s*\n", l.Description)
		fmt.Fprintf(&b, "   Ref: %s\n", l.Reference)
		fmt.Fprintf(&b, "   Qty: %d x %s\n", l.Quantity, FormatEUR(l.UnitPrice))
		fmt.Fprintf(&b, "   *Subtotal: %s*\n\n", FormatEUR(l.LineTotal))
	}

	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "💰 *TOTAL: %s*\n", FormatEUR(q.GrandTotal))
	b.WriteString("(Taxes not included)\n\n")
	fmt.Fprintf(&b, "📥 *Download datasheets and certificates here:*\n%s", DatasheetURL)

	return b.String()
}

// Subject is the email subject for a client quote.
func (q ClientQuote) Subject() string {
	return "Materials Quote"
}

// BuildSupplierOrder composes the internal purchase request at cost basis.
func BuildSupplierOrder(items []cart.LineItem, now time.Time) SupplierOrder {
	o := SupplierOrder{Date: now}

	for _, it := range items {
		cost := cart.ItemCost(it)
		o.Lines = append(o.Lines, QuoteLine{
			Reference:   it.Reference,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   cost.Unit,
			LineTotal:   cost.Total,
			NetApplied:  cost.NetApplied,
		})
		o.Subtotal += cost.Total
	}
	return o
}

// Text renders the supplier order as plain text: header line, one
// "[ref] description -> qty" row per item, cost subtotal and a placeholder
// for the requester's account details.
func (o SupplierOrder) Text() string {
	var b strings.Builder

	b.WriteString("HELLO CVTOOLS, I WOULD LIKE TO PLACE THE FOLLOWING ORDER:\n\n")

	for _, l := range o.Lines {
		fmt.Fprintf(&b, "[%s] %s -> %d pcs\n", l.Reference, l.Description, l.Quantity)
	}

	fmt.Fprintf(&b, "\nEstimated Total (Cost): %s\n", FormatEUR(o.Subtotal))
	b.WriteString("\nMy Details:\n(Your company name and customer number here)")

	return b.String()
}

// Subject is the email subject for a supplier order.
func (o SupplierOrder) Subject() string {
	return "NEW ORDER - " + o.Date.Format("02/01/2006")
}

// MailtoURL builds a mailto: link that opens a draft with the given subject
// and body. An empty recipient leaves the To field blank.
func MailtoURL(to, subject, body string) string {
	params := url.Values{}
	params.Set("subject", subject)
	params.Set("body", body)
	// mailto bodies need %20, not '+', for spaces.
	query := strings.ReplaceAll(params.Encode(), "+", "%20")
	return "mailto:" + to + "?" + query
}

// WhatsAppURL builds a wa.me share link preloaded with the given text.
func WhatsAppURL(text string) string {
	return "https://wa.me/?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// newDocRef returns a short unique reference stamped on generated documents.
func newDocRef() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
