package services

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// Channel identifies the delivery channel a pending quote request targets.
type Channel string

const (
	ChannelMessaging Channel = "messaging"
	ChannelEmail     Channel = "email"
)

var (
	// ErrEmptyCart aborts document generation when the cart has no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoPending is returned when Confirm or Cancel run without a
	// pending quote request.
	ErrNoPending = errors.New("no pending quote request")
	// ErrUnknownChannel rejects channels outside messaging/email.
	ErrUnknownChannel = errors.New("unknown delivery channel")
)

type flowState int

const (
	flowIdle flowState = iota
	flowAwaitingMargin
)

// MarginFlow is the prompt-then-continue state machine for client quotes:
// a request suspends until the user supplies a margin percentage (Confirm)
// or dismisses the prompt (Cancel). The chosen channel is remembered only
// while a request is pending.
type MarginFlow struct {
	mu      sync.Mutex
	state   flowState
	channel Channel
}

// NewMarginFlow returns an idle flow.
func NewMarginFlow() *MarginFlow {
	return &MarginFlow{}
}

// Request moves the flow to awaiting-margin for the given channel.
// An empty cart fails the request and leaves the flow idle. A request made
// while another is pending replaces it; the tool drives a single prompt.
func (f *MarginFlow) Request(ch Channel, cartLen int) error {
	if ch != ChannelMessaging && ch != ChannelEmail {
		return ErrUnknownChannel
	}
	if cartLen == 0 {
		return ErrEmptyCart
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = flowAwaitingMargin
	f.channel = ch
	return nil
}

// Cancel discards the pending request with no partial effect.
func (f *MarginFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = flowIdle
	f.channel = ""
}

// Confirm resolves the pending request with the raw margin input and
// returns the remembered channel plus the normalized margin percentage.
// The flow returns to idle whether or not the caller's composition
// afterwards succeeds.
func (f *MarginFlow) Confirm(rawMargin string) (Channel, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != flowAwaitingMargin {
		return "", 0, ErrNoPending
	}

	ch := f.channel
	f.state = flowIdle
	f.channel = ""
	return ch, ParseMargin(rawMargin), nil
}

// Pending reports whether a request is awaiting margin input and for which
// channel.
func (f *MarginFlow) Pending() (Channel, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.channel, f.state == flowAwaitingMargin
}

// ParseMargin normalizes a raw margin percentage. Non-numeric or negative
// input becomes 0; the flow never errors on bad margins.
func ParseMargin(raw string) float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	m, err := strconv.ParseFloat(raw, 64)
	if err != nil || m < 0 {
		return 0
	}
	return m
}
