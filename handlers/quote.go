package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"

	"catalogquote/cart"
	"catalogquote/services"
	"catalogquote/templates"
)

// HandleQuoteNew starts the quote flow for the channel in the query string
// and renders the margin prompt.
func HandleQuoteNew(store *cart.Store, flow *services.MarginFlow) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		channel := services.Channel(e.Request.URL.Query().Get("channel"))

		if err := flow.Request(channel, store.Len()); err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyCart):
				return ErrorToast(e, http.StatusBadRequest, "The cart is empty")
			case errors.Is(err, services.ErrUnknownChannel):
				return ErrorToast(e, http.StatusBadRequest, "Unknown quote channel")
			}
			return ErrorToast(e, http.StatusInternalServerError, "Could not start the quote")
		}

		data := templates.MarginFormData{Channel: string(channel)}
		return templates.MarginForm(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteConfirm applies the submitted margin, composes the client
// quote and renders it with the share link for the pending channel. On the
// email channel a filled-in recipient triggers a direct send through the
// app mailer as well.
func HandleQuoteConfirm(app *pocketbase.PocketBase, store *cart.Store, flow *services.MarginFlow) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		channel, margin, err := flow.Confirm(e.Request.FormValue("margin"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "No quote in progress")
		}

		// The prompt is non-blocking, so the cart can empty out while the
		// request is pending. Never compose a zero-line document.
		if store.Len() == 0 {
			return ErrorToast(e, http.StatusBadRequest, "The cart is empty")
		}

		quote := services.BuildClientQuote(store.Items(), margin, time.Now())
		text := quote.Text()

		data := templates.QuoteResultData{
			Channel: string(channel),
			Text:    text,
			PDFLink: fmt.Sprintf("/cart/export/pdf?margin=%g", margin),
		}
		switch channel {
		case services.ChannelMessaging:
			data.ShareURL = services.WhatsAppURL(text)
			data.ShareLabel = "Open WhatsApp"
		case services.ChannelEmail:
			data.ShareURL = services.MailtoURL("", quote.Subject(), text)
			data.ShareLabel = "Open email"

			if to := strings.TrimSpace(e.Request.FormValue("to")); to != "" {
				if err := sendQuoteEmail(app, to, quote.Subject(), text); err != nil {
					log.Printf("quote_confirm: could not send email: %v", err)
					SetToast(e, "warning", "Direct send failed, use the email link instead")
				} else {
					SetToast(e, "success", "Quote emailed to "+to)
				}
			}
		}

		return templates.QuoteResult(data).Render(e.Request.Context(), e.Response)
	}
}

// sendQuoteEmail sends the quote text through the configured app mailer.
func sendQuoteEmail(app *pocketbase.PocketBase, to, subject, body string) error {
	settings := app.Settings()
	message := &mailer.Message{
		From: mail.Address{
			Name:    settings.Meta.SenderName,
			Address: settings.Meta.SenderAddress,
		},
		To:      []mail.Address{{Address: to}},
		Subject: subject,
		Text:    body,
	}
	return app.NewMailClient().Send(message)
}

// HandleQuoteCancel abandons the pending quote and shows the cart again.
func HandleQuoteCancel(store *cart.Store, flow *services.MarginFlow) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		flow.Cancel()
		return renderCartPanel(e, store)
	}
}

// HandleSupplierOrder composes the internal purchase order at cost prices
// and renders it with a mailto link to the orders inbox.
func HandleSupplierOrder(store *cart.Store) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if store.Len() == 0 {
			return ErrorToast(e, http.StatusBadRequest, "The cart is empty")
		}

		order := services.BuildSupplierOrder(store.Items(), time.Now())
		text := order.Text()

		data := templates.OrderResultData{
			Text:      text,
			MailtoURL: services.MailtoURL(services.SupplierOrderEmail, order.Subject(), text),
		}
		return templates.OrderResult(data).Render(e.Request.Context(), e.Response)
	}
}
