package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vendorflow/pkg/optional"
)

// Well-known purchase order states. Status is free-form; only Completed has
// meaning to the vendor metrics.
const (
	StatusPending   = "pending"
	StatusOrdered   = "ordered"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

// Order represents a purchase order placed with a vendor.
type Order struct {
	ID                   string          `json:"id"`
	PONumber             string          `json:"po_number" validate:"required,max=100"`
	VendorID             *string         `json:"vendor"`
	OrderDate            time.Time       `json:"order_date" validate:"required"`
	ExpectedDeliveryDate time.Time       `json:"expected_delivery_date" validate:"required"`
	DeliveryDate         *time.Time      `json:"delivery_date"`
	Items                json.RawMessage `json:"items" swaggertype:"object"`
	Quantity             int             `json:"quantity" validate:"min=0"`
	Status               string          `json:"status" validate:"required,max=100"`
	QualityRating        *float64        `json:"quality_rating" validate:"omitempty,min=0,max=5"`
	IssueDate            time.Time       `json:"issue_date" validate:"required"`
	AcknowledgmentDate   *time.Time      `json:"acknowledgment_date"`
}

// Completed reports whether the order reached the completed state.
func (o Order) Completed() bool {
	return o.Status == StatusCompleted
}

// Vendor returns the vendor id or "" when the order is unassigned.
func (o Order) Vendor() string {
	if o.VendorID == nil {
		return ""
	}
	return *o.VendorID
}

// Patch is a partial update. Only fields present in the payload are applied.
type Patch struct {
	PONumber             optional.Value[string]          `json:"po_number"`
	VendorID             optional.Value[*string]         `json:"vendor"`
	OrderDate            optional.Value[time.Time]       `json:"order_date"`
	ExpectedDeliveryDate optional.Value[time.Time]       `json:"expected_delivery_date"`
	DeliveryDate         optional.Value[*time.Time]      `json:"delivery_date"`
	Items                optional.Value[json.RawMessage] `json:"items"`
	Quantity             optional.Value[int]             `json:"quantity"`
	Status               optional.Value[string]          `json:"status"`
	QualityRating        optional.Value[*float64]        `json:"quality_rating"`
	IssueDate            optional.Value[time.Time]       `json:"issue_date"`
	AcknowledgmentDate   optional.Value[*time.Time]      `json:"acknowledgment_date"`
}

// Apply returns o with the patch applied. o is not modified.
func (p Patch) Apply(o Order) Order {
	p.PONumber.Apply(&o.PONumber)
	p.VendorID.Apply(&o.VendorID)
	p.OrderDate.Apply(&o.OrderDate)
	p.ExpectedDeliveryDate.Apply(&o.ExpectedDeliveryDate)
	p.DeliveryDate.Apply(&o.DeliveryDate)
	p.Items.Apply(&o.Items)
	p.Quantity.Apply(&o.Quantity)
	p.Status.Apply(&o.Status)
	p.QualityRating.Apply(&o.QualityRating)
	p.IssueDate.Apply(&o.IssueDate)
	p.AcknowledgmentDate.Apply(&o.AcknowledgmentDate)
	return o
}

// Filter narrows List results. Zero value matches every order.
type Filter struct {
	VendorID string
}

// Match reports whether o satisfies the filter.
func (f Filter) Match(o Order) bool {
	return f.VendorID == "" || o.Vendor() == f.VendorID
}

// Repository defines behavior for persisting orders.
type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	Update(ctx context.Context, o Order) error
	Delete(ctx context.Context, id string) error
	// DetachVendor clears the vendor reference of every order of vendorID.
	DetachVendor(ctx context.Context, vendorID string) error
}

var (
	// ErrNotFound indicates the requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrDuplicate indicates another order already uses the PO number.
	ErrDuplicate = errors.New("po number already exists")
)
