// Package memory implements an in-memory vendor repository.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"vendorflow/pkg/vendor"
)

// Repository provides an in-memory implementation of vendor.Repository.
type Repository struct {
	mu      sync.RWMutex
	vendors map[string]vendor.Vendor
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{vendors: make(map[string]vendor.Vendor)}
}

// Create stores the vendor.
func (r *Repository) Create(ctx context.Context, v vendor.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.duplicate(v.ID, v.VendorCode) {
		return vendor.ErrDuplicate
	}
	r.vendors[v.ID] = v
	return nil
}

// Get retrieves a vendor by ID.
func (r *Repository) Get(ctx context.Context, id string) (vendor.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vendors[id]
	if !ok {
		return vendor.Vendor{}, vendor.ErrNotFound
	}
	return v, nil
}

// List returns all vendors ordered by vendor code.
func (r *Repository) List(ctx context.Context) ([]vendor.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]vendor.Vendor, 0, len(r.vendors))
	for _, v := range r.vendors {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b vendor.Vendor) int {
		return strings.Compare(a.VendorCode, b.VendorCode)
	})
	return out, nil
}

// UpdateProfile replaces the profile of an existing vendor.
func (r *Repository) UpdateProfile(ctx context.Context, id string, p vendor.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return vendor.ErrNotFound
	}
	if r.duplicate(id, p.VendorCode) {
		return vendor.ErrDuplicate
	}
	v.Profile = p
	r.vendors[id] = v
	return nil
}

// Delete removes a vendor by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vendors[id]; !ok {
		return vendor.ErrNotFound
	}
	delete(r.vendors, id)
	return nil
}

// UpdateMetrics overwrites all four metrics.
func (r *Repository) UpdateMetrics(ctx context.Context, id string, m vendor.Metrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return vendor.ErrNotFound
	}
	v.Metrics = m
	r.vendors[id] = v
	return nil
}

// UpdateResponseTime overwrites only the average response time.
func (r *Repository) UpdateResponseTime(ctx context.Context, id string, seconds float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return vendor.ErrNotFound
	}
	v.AverageResponseTime = seconds
	r.vendors[id] = v
	return nil
}

// duplicate reports whether a vendor other than id holds code.
// Callers must hold mu.
func (r *Repository) duplicate(id, code string) bool {
	for otherID, v := range r.vendors {
		if otherID != id && v.VendorCode == code {
			return true
		}
	}
	return false
}
