// Package purchasing runs order and vendor mutations and keeps vendor
// metrics in step with them.
//
// Every order mutation ends with an explicit call into the performance
// recalculator carrying the status before and after the change.
package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vendorflow/pkg/logger"
	"vendorflow/pkg/order"
	"vendorflow/pkg/otel"
	"vendorflow/pkg/performance"
	"vendorflow/pkg/validate"
	"vendorflow/pkg/vendor"
)

// Service coordinates the order and vendor stores.
type Service struct {
	orders  order.Repository
	vendors vendor.Repository
	recalc  *performance.Recalculator
	log     *logger.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Service.
func New(orders order.Repository, vendors vendor.Repository, log *logger.Logger) *Service {
	return &Service{
		orders:  orders,
		vendors: vendors,
		recalc:  performance.NewRecalculator(orders, vendors, log),
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// CreateOrder validates and stores o under a fresh id. A zero order or
// issue date defaults to now.
func (s *Service) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	ctx, span := otel.AddSpan(ctx, "purchasing.CreateOrder")
	defer span.End()

	o.ID = s.newID()
	now := s.now().UTC()
	if o.OrderDate.IsZero() {
		o.OrderDate = now
	}
	if o.IssueDate.IsZero() {
		o.IssueDate = now
	}
	if err := s.checkOrder(ctx, o); err != nil {
		return order.Order{}, err
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return order.Order{}, orderStoreErr(err)
	}
	s.log.Info(ctx, "order created", "order", o.ID, "vendor", o.Vendor(), "status", o.Status)
	s.afterMutation(ctx, nil, &o)
	return o, nil
}

// GetOrder returns the order with id.
func (s *Service) GetOrder(ctx context.Context, id string) (order.Order, error) {
	return s.orders.Get(ctx, id)
}

// ListOrders returns the orders matching f.
func (s *Service) ListOrders(ctx context.Context, f order.Filter) ([]order.Order, error) {
	return s.orders.List(ctx, f)
}

// UpdateOrder applies a partial update.
func (s *Service) UpdateOrder(ctx context.Context, id string, p order.Patch) (order.Order, error) {
	ctx, span := otel.AddSpan(ctx, "purchasing.UpdateOrder")
	defer span.End()

	before, err := s.orders.Get(ctx, id)
	if err != nil {
		return order.Order{}, err
	}
	after := p.Apply(before)
	after.ID = id
	if err := s.checkOrder(ctx, after); err != nil {
		return order.Order{}, err
	}
	if err := s.orders.Update(ctx, after); err != nil {
		return order.Order{}, orderStoreErr(err)
	}
	s.log.Info(ctx, "order updated", "order", id, "vendor", after.Vendor(), "old_status", before.Status, "status", after.Status)
	s.afterMutation(ctx, &before, &after)
	return after, nil
}

// ReplaceOrder is a full update: every required field must be present.
// Optional fields left out keep their stored values.
func (s *Service) ReplaceOrder(ctx context.Context, id string, p order.Patch) (order.Order, error) {
	missing := map[string]string{}
	if !p.PONumber.Set {
		missing["po_number"] = "required"
	}
	if !p.ExpectedDeliveryDate.Set {
		missing["expected_delivery_date"] = "required"
	}
	if !p.Status.Set {
		missing["status"] = "required"
	}
	if len(missing) > 0 {
		return order.Order{}, &validate.Error{Fields: missing}
	}
	return s.UpdateOrder(ctx, id, p)
}

// DeleteOrder removes the order and always recomputes its vendor.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	ctx, span := otel.AddSpan(ctx, "purchasing.DeleteOrder")
	defer span.End()

	before, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "order deleted", "order", id, "vendor", before.Vendor())
	s.afterMutation(ctx, &before, nil)
	return nil
}

// Acknowledge stamps the order's acknowledgment date with the current time
// and refreshes the vendor's average response time.
func (s *Service) Acknowledge(ctx context.Context, id string) (order.Order, error) {
	ctx, span := otel.AddSpan(ctx, "purchasing.Acknowledge")
	defer span.End()

	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return order.Order{}, err
	}
	now := s.now().UTC()
	o.AcknowledgmentDate = &now
	if err := s.orders.Update(ctx, o); err != nil {
		return order.Order{}, err
	}
	s.log.Info(ctx, "order acknowledged", "order", id, "vendor", o.Vendor())

	if vendorID := o.Vendor(); vendorID != "" {
		if _, err := s.recalc.RecalculateResponseTime(ctx, vendorID); err != nil && !errors.Is(err, vendor.ErrNotFound) {
			s.log.Error(ctx, "recomputing response time", "vendor", vendorID, "error", err)
		}
	}
	return o, nil
}

// afterMutation is the order mutation hook. before is nil for creates and
// after is nil for deletes. The mutation is already stored, so a failed
// recompute is logged and left for the next one to repair.
func (s *Service) afterMutation(ctx context.Context, before, after *order.Order) {
	if err := s.recomputeAffected(ctx, before, after); err != nil {
		s.log.Error(ctx, "recomputing vendor metrics", "error", err)
	}
}

func (s *Service) recomputeAffected(ctx context.Context, before, after *order.Order) error {
	var (
		oldStatus, newStatus *string
		oldVendor, newVendor string
	)
	if before != nil {
		oldStatus, oldVendor = &before.Status, before.Vendor()
	}
	if after != nil {
		newStatus, newVendor = &after.Status, after.Vendor()
	}

	switch {
	case after == nil:
		return s.recompute(ctx, oldVendor)
	case before != nil && oldVendor != newVendor:
		return errors.Join(s.recompute(ctx, oldVendor), s.recompute(ctx, newVendor))
	case performance.ShouldRecompute(oldStatus, newStatus):
		return s.recompute(ctx, newVendor)
	}
	return nil
}

func (s *Service) recompute(ctx context.Context, vendorID string) error {
	if vendorID == "" {
		return nil
	}
	if _, err := s.recalc.Recalculate(ctx, vendorID); err != nil {
		if errors.Is(err, vendor.ErrNotFound) {
			s.log.Warn(ctx, "skipping metrics of missing vendor", "vendor", vendorID)
			return nil
		}
		return err
	}
	return nil
}

// checkOrder validates the payload and the vendor reference.
func (s *Service) checkOrder(ctx context.Context, o order.Order) error {
	if err := validate.Struct(o); err != nil {
		return err
	}
	if o.VendorID == nil {
		return nil
	}
	if _, err := s.vendors.Get(ctx, *o.VendorID); err != nil {
		if errors.Is(err, vendor.ErrNotFound) {
			return validate.Field("vendor", "not_found")
		}
		return fmt.Errorf("checking vendor %s: %w", *o.VendorID, err)
	}
	return nil
}

func orderStoreErr(err error) error {
	if errors.Is(err, order.ErrDuplicate) {
		return validate.Field("po_number", "unique")
	}
	return err
}
