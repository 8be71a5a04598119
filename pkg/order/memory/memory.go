// Package memory implements an in-memory order repository.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"vendorflow/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]order.Order
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{orders: make(map[string]order.Order)}
}

// Create stores the order.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.duplicate(o) {
		return order.ErrDuplicate
	}
	r.orders[o.ID] = clone(o)
	return nil
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return clone(o), nil
}

// List returns orders matching f, ordered by PO number.
func (r *Repository) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if f.Match(o) {
			out = append(out, clone(o))
		}
	}
	slices.SortFunc(out, func(a, b order.Order) int {
		return strings.Compare(a.PONumber, b.PONumber)
	})
	return out, nil
}

// Update replaces an existing order.
func (r *Repository) Update(ctx context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return order.ErrNotFound
	}
	if r.duplicate(o) {
		return order.ErrDuplicate
	}
	r.orders[o.ID] = clone(o)
	return nil
}

// Delete removes an order by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// DetachVendor clears the vendor of every order referencing vendorID.
func (r *Repository) DetachVendor(ctx context.Context, vendorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.orders {
		if o.Vendor() == vendorID {
			o.VendorID = nil
			r.orders[id] = o
		}
	}
	return nil
}

// duplicate reports whether another order already holds o's PO number.
// Callers must hold mu.
func (r *Repository) duplicate(o order.Order) bool {
	for id, existing := range r.orders {
		if id != o.ID && existing.PONumber == o.PONumber {
			return true
		}
	}
	return false
}

func clone(o order.Order) order.Order {
	o.VendorID = clonePtr(o.VendorID)
	o.DeliveryDate = clonePtr(o.DeliveryDate)
	o.QualityRating = clonePtr(o.QualityRating)
	o.AcknowledgmentDate = clonePtr(o.AcknowledgmentDate)
	o.Items = slices.Clone(o.Items)
	return o
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
