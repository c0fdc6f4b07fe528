package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"catalogquote/cart"
	"catalogquote/services"
	"catalogquote/testhelpers"
)

func seededStore() *cart.Store {
	store := cart.NewStore()
	store.Add(cart.AddInput{
		Reference:     "CD-125",
		Description:   "Cutting disc 125mm",
		StandardPrice: 10.0,
		Quantity:      5,
	})
	return store
}

func TestHandleQuoteNew_RendersMarginPrompt(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	handler := HandleQuoteNew(store, flow)

	req := httptest.NewRequest(http.MethodGet, "/quote/new?channel=messaging", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Profit margin", "margin")
	// The pending channel lives in the flow, not in the form.
	if strings.Contains(body, `name="channel"`) {
		t.Error("margin form must not carry a channel field")
	}
	if strings.Contains(body, `name="to"`) {
		t.Error("messaging channel must not show a recipient field")
	}
	if _, ok := flow.Pending(); !ok {
		t.Error("expected a pending quote after the prompt is shown")
	}
}

func TestHandleQuoteNew_EmailChannelOffersRecipient(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	handler := HandleQuoteNew(store, flow)

	req := httptest.NewRequest(http.MethodGet, "/quote/new?channel=email", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), `name="to"`)
}

func TestHandleQuoteNew_EmptyCart(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := cart.NewStore()
	flow := services.NewMarginFlow()
	handler := HandleQuoteNew(store, flow)

	req := httptest.NewRequest(http.MethodGet, "/quote/new?channel=messaging", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if _, ok := flow.Pending(); ok {
		t.Error("empty cart must not start a quote")
	}
}

func TestHandleQuoteNew_UnknownChannel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	handler := HandleQuoteNew(store, flow)

	req := httptest.NewRequest(http.MethodGet, "/quote/new?channel=fax", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleQuoteConfirm_Messaging(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	if err := flow.Request(services.ChannelMessaging, store.Len()); err != nil {
		t.Fatalf("request: %v", err)
	}
	handler := HandleQuoteConfirm(app, store, flow)

	req := postForm("/quote/confirm", url.Values{"margin": {"20"}})
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	// 5 x 10.00 cost with 20% margin: unit 12.00, total 60.00
	testhelpers.AssertHTMLContains(t, body, "12,00", "60,00", "wa.me", "Open WhatsApp")
	if _, ok := flow.Pending(); ok {
		t.Error("expected the flow to be idle after confirm")
	}
}

func TestHandleQuoteConfirm_Email(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	if err := flow.Request(services.ChannelEmail, store.Len()); err != nil {
		t.Fatalf("request: %v", err)
	}
	handler := HandleQuoteConfirm(app, store, flow)

	req := postForm("/quote/confirm", url.Values{"margin": {"0"}})
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "mailto:", "Open email", "50,00")
}

func TestHandleQuoteConfirm_EmailWithRecipientStillRendersResult(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	if err := flow.Request(services.ChannelEmail, store.Len()); err != nil {
		t.Fatalf("request: %v", err)
	}
	handler := HandleQuoteConfirm(app, store, flow)

	// Whether the direct send works depends on mailer config; either way
	// the composed quote and the mailto fallback must render.
	req := postForm("/quote/confirm", url.Values{"margin": {"20"}, "to": {"client@example.com"}})
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "mailto:", "60,00")
}

func TestHandleQuoteConfirm_CartEmptiedWhilePending(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	if err := flow.Request(services.ChannelMessaging, store.Len()); err != nil {
		t.Fatalf("request: %v", err)
	}

	// The margin prompt does not block the cart; clearing it while the
	// request is pending must abort the confirm instead of composing a
	// zero-line document.
	store.Clear()

	handler := HandleQuoteConfirm(app, store, flow)
	req := postForm("/quote/confirm", url.Values{"margin": {"20"}, "to": {"client@example.com"}})
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "QUOTE") || strings.Contains(body, "wa.me") {
		t.Error("expected no quote document to be rendered for an empty cart")
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "empty") {
		t.Error("expected an empty-cart toast")
	}
	if _, ok := flow.Pending(); ok {
		t.Error("expected the flow to be idle after the aborted confirm")
	}
}

func TestHandleQuoteConfirm_NoPending(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	handler := HandleQuoteConfirm(app, store, flow)

	req := postForm("/quote/confirm", url.Values{"margin": {"20"}})
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleQuoteCancel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	flow := services.NewMarginFlow()
	if err := flow.Request(services.ChannelMessaging, store.Len()); err != nil {
		t.Fatalf("request: %v", err)
	}
	handler := HandleQuoteCancel(store, flow)

	req := httptest.NewRequest(http.MethodPost, "/quote/cancel", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if _, ok := flow.Pending(); ok {
		t.Error("expected the pending quote to be abandoned")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "CD-125")
}

func TestHandleSupplierOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := seededStore()
	handler := HandleSupplierOrder(store)

	req := httptest.NewRequest(http.MethodPost, "/order/supplier", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Supplier order", "CD-125", "5 pcs")
	if !strings.Contains(body, "mailto:"+services.SupplierOrderEmail) {
		t.Error("expected mailto link to the orders inbox")
	}
}

func TestHandleSupplierOrder_EmptyCart(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := cart.NewStore()
	handler := HandleSupplierOrder(store)

	req := httptest.NewRequest(http.MethodPost, "/order/supplier", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
