// Package cart holds the in-memory budget cart and its pricing rule.
//
// The cart lives for the duration of the process and is only ever mutated
// through the Store methods. Readers get value copies, never references
// into the backing slice.
package cart

import "sync"

// LineItem is one row in the cart.
type LineItem struct {
	Reference     string
	Description   string
	StandardPrice float64
	Quantity      int
	NetCondition  string  // free-text volume offer, kept for display
	MinQty        int     // 0 = no net tier
	NetUnitPrice  float64 // 0 = no net tier
	StockLabel    string
}

// AddInput carries the fields for a line being added to the cart.
type AddInput struct {
	Reference     string
	Description   string
	StandardPrice float64
	Quantity      int
	NetCondition  string
	MinQty        int
	NetUnitPrice  float64
	StockLabel    string
}

// Store owns the cart state. Handlers run on the HTTP server's goroutines,
// so all access goes through the mutex.
type Store struct {
	mu    sync.Mutex
	items []LineItem
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// Add inserts a line or merges it into an existing one. Quantities below 1
// are coerced to 1. When the reference already exists, only the quantity is
// increased; the originally stored price, description and net condition win.
func (s *Store) Add(in AddInput) {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Reference == in.Reference {
			s.items[i].Quantity += qty
			return
		}
	}

	stockLabel := in.StockLabel
	if stockLabel == "" {
		stockLabel = "Consult"
	}

	s.items = append(s.items, LineItem{
		Reference:     in.Reference,
		Description:   in.Description,
		StandardPrice: in.StandardPrice,
		Quantity:      qty,
		NetCondition:  in.NetCondition,
		MinQty:        in.MinQty,
		NetUnitPrice:  in.NetUnitPrice,
		StockLabel:    stockLabel,
	})
}

// Remove deletes the line at the given 0-based display position.
// Out-of-range positions leave the cart untouched and return false.
func (s *Store) Remove(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return false
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return true
}

// Clear empties the cart. The interactive confirmation happens in the UI
// before this is called.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a snapshot of the cart in display order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of lines in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subtotal returns the cost-basis total over all lines. No margin applied.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	for _, it := range s.items {
		sum += ItemCost(it).Total
	}
	return sum
}
