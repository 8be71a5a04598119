// Package performance derives vendor metrics from purchase orders and
// decides when an order mutation requires them to be recomputed.
package performance

import (
	"context"
	"fmt"

	"vendorflow/pkg/logger"
	"vendorflow/pkg/order"
	"vendorflow/pkg/otel"
	"vendorflow/pkg/vendor"
)

// Compute derives the four metrics from every order of one vendor.
func Compute(orders []order.Order) vendor.Metrics {
	var (
		completed, onTime, rated int
		ratingSum                float64
	)
	for _, o := range orders {
		if !o.Completed() {
			continue
		}
		completed++
		if o.DeliveryDate != nil && !o.DeliveryDate.After(o.ExpectedDeliveryDate) {
			onTime++
		}
		if o.QualityRating != nil {
			rated++
			ratingSum += *o.QualityRating
		}
	}

	var m vendor.Metrics
	if completed > 0 {
		m.OnTimeDeliveryRate = 100 * float64(onTime) / float64(completed)
	}
	if rated > 0 {
		m.QualityRatingAvg = ratingSum / float64(rated)
	}
	m.AverageResponseTime = ResponseTime(orders)
	if len(orders) > 0 {
		m.FulfillmentRate = 100 * float64(completed) / float64(len(orders))
	}
	return m
}

// ResponseTime is the mean number of seconds between issue and
// acknowledgment over acknowledged orders, regardless of status.
func ResponseTime(orders []order.Order) float64 {
	var (
		n     int
		total float64
	)
	for _, o := range orders {
		if o.AcknowledgmentDate == nil {
			continue
		}
		n++
		total += o.AcknowledgmentDate.Sub(o.IssueDate).Seconds()
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// ShouldRecompute reports whether a status transition changes the set of
// completed orders. A nil old status is a create, a nil new status a delete.
func ShouldRecompute(oldStatus, newStatus *string) bool {
	if equal(oldStatus, newStatus) {
		return false
	}
	return is(oldStatus, order.StatusCompleted) || is(newStatus, order.StatusCompleted)
}

func equal(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func is(s *string, want string) bool {
	return s != nil && *s == want
}

// Recalculator reads a vendor's orders and writes the derived metrics back.
type Recalculator struct {
	orders  order.Repository
	vendors vendor.Repository
	log     *logger.Logger
}

// NewRecalculator returns a Recalculator over the given stores.
func NewRecalculator(orders order.Repository, vendors vendor.Repository, log *logger.Logger) *Recalculator {
	return &Recalculator{orders: orders, vendors: vendors, log: log}
}

// Recalculate recomputes and persists all four metrics of vendorID.
func (r *Recalculator) Recalculate(ctx context.Context, vendorID string) (vendor.Metrics, error) {
	ctx, span := otel.AddSpan(ctx, "performance.Recalculate")
	defer span.End()

	orders, err := r.orders.List(ctx, order.Filter{VendorID: vendorID})
	if err != nil {
		return vendor.Metrics{}, fmt.Errorf("listing orders of vendor %s: %w", vendorID, err)
	}
	m := Compute(orders)
	if err := r.vendors.UpdateMetrics(ctx, vendorID, m); err != nil {
		return vendor.Metrics{}, fmt.Errorf("saving metrics of vendor %s: %w", vendorID, err)
	}
	r.log.Debug(ctx, "vendor metrics recomputed",
		"vendor", vendorID,
		"orders", len(orders),
		"on_time_delivery_rate", m.OnTimeDeliveryRate,
		"quality_rating_avg", m.QualityRatingAvg,
		"average_response_time", m.AverageResponseTime,
		"fulfillment_rate", m.FulfillmentRate)
	return m, nil
}

// RecalculateResponseTime recomputes and persists only the average response
// time of vendorID.
func (r *Recalculator) RecalculateResponseTime(ctx context.Context, vendorID string) (float64, error) {
	ctx, span := otel.AddSpan(ctx, "performance.RecalculateResponseTime")
	defer span.End()

	orders, err := r.orders.List(ctx, order.Filter{VendorID: vendorID})
	if err != nil {
		return 0, fmt.Errorf("listing orders of vendor %s: %w", vendorID, err)
	}
	seconds := ResponseTime(orders)
	if err := r.vendors.UpdateResponseTime(ctx, vendorID, seconds); err != nil {
		return 0, fmt.Errorf("saving response time of vendor %s: %w", vendorID, err)
	}
	r.log.Debug(ctx, "vendor response time recomputed", "vendor", vendorID, "average_response_time", seconds)
	return seconds, nil
}
