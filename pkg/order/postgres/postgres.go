package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"vendorflow/pkg/order"
)

const columns = "id,po_number,vendor_id,order_date,expected_delivery_date,delivery_date,items,quantity,status,quality_rating,issue_date,acknowledgment_date"

// Repository persists orders in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new order.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO purchase_orders ("+columns+") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)",
		o.ID, o.PONumber, o.VendorID, o.OrderDate, o.ExpectedDeliveryDate, o.DeliveryDate,
		itemsArg(o.Items), o.Quantity, o.Status, o.QualityRating, o.IssueDate, o.AcknowledgmentDate)
	return mapErr(err)
}

// Get retrieves an order by ID.
func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	o, err := scan(r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM purchase_orders WHERE id=$1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	return o, err
}

// List fetches orders matching f.
func (r *Repository) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	query := "SELECT " + columns + " FROM purchase_orders"
	var args []any
	if f.VendorID != "" {
		query += " WHERE vendor_id=$1"
		args = append(args, f.VendorID)
	}
	query += " ORDER BY po_number"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []order.Order
	for rows.Next() {
		o, err := scan(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Update updates an existing order.
func (r *Repository) Update(ctx context.Context, o order.Order) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE purchase_orders SET po_number=$2, vendor_id=$3, order_date=$4, expected_delivery_date=$5,
		delivery_date=$6, items=$7, quantity=$8, status=$9, quality_rating=$10, issue_date=$11,
		acknowledgment_date=$12 WHERE id=$1`,
		o.ID, o.PONumber, o.VendorID, o.OrderDate, o.ExpectedDeliveryDate, o.DeliveryDate,
		itemsArg(o.Items), o.Quantity, o.Status, o.QualityRating, o.IssueDate, o.AcknowledgmentDate)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return order.ErrNotFound
	}
	return nil
}

// Delete removes an order by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM purchase_orders WHERE id=$1", id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return order.ErrNotFound
	}
	return nil
}

// DetachVendor clears the vendor reference on all orders of vendorID.
func (r *Repository) DetachVendor(ctx context.Context, vendorID string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE purchase_orders SET vendor_id=NULL WHERE vendor_id=$1", vendorID)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (order.Order, error) {
	var (
		o     order.Order
		items []byte
	)
	err := s.Scan(&o.ID, &o.PONumber, &o.VendorID, &o.OrderDate, &o.ExpectedDeliveryDate,
		&o.DeliveryDate, &items, &o.Quantity, &o.Status, &o.QualityRating, &o.IssueDate,
		&o.AcknowledgmentDate)
	if err != nil {
		return order.Order{}, err
	}
	if items != nil {
		o.Items = json.RawMessage(items)
	}
	return o, nil
}

// itemsArg passes the payload as text so the jsonb column parses it.
func itemsArg(items json.RawMessage) any {
	if len(items) == 0 {
		return nil
	}
	return string(items)
}

func mapErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", order.ErrDuplicate, pqErr.Constraint)
	}
	return err
}
