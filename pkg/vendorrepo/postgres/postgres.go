package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"vendorflow/pkg/vendor"
)

const columns = "id,name,contact_details,address,vendor_code,on_time_delivery_rate,quality_rating_avg,average_response_time,fulfillment_rate"

// Repository persists vendors in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new vendor with zeroed metrics.
func (r *Repository) Create(ctx context.Context, v vendor.Vendor) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO vendors ("+columns+") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)",
		v.ID, v.Name, v.ContactDetails, v.Address, v.VendorCode,
		v.OnTimeDeliveryRate, v.QualityRatingAvg, v.AverageResponseTime, v.FulfillmentRate)
	return mapErr(err)
}

// Get retrieves a vendor by ID.
func (r *Repository) Get(ctx context.Context, id string) (vendor.Vendor, error) {
	v, err := scan(r.db.QueryRowContext(ctx, "SELECT "+columns+" FROM vendors WHERE id=$1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return vendor.Vendor{}, vendor.ErrNotFound
	}
	return v, err
}

// List fetches all vendors.
func (r *Repository) List(ctx context.Context) ([]vendor.Vendor, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+columns+" FROM vendors ORDER BY vendor_code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vendors []vendor.Vendor
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// UpdateProfile updates the editable vendor fields.
func (r *Repository) UpdateProfile(ctx context.Context, id string, p vendor.Profile) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE vendors SET name=$2, contact_details=$3, address=$4, vendor_code=$5 WHERE id=$1",
		id, p.Name, p.ContactDetails, p.Address, p.VendorCode)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

// Delete removes a vendor by ID. Orders referencing it are detached by the
// foreign key.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM vendors WHERE id=$1", id)
	if err != nil {
		return err
	}
	return affected(res)
}

// UpdateMetrics overwrites the four derived metrics.
func (r *Repository) UpdateMetrics(ctx context.Context, id string, m vendor.Metrics) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET on_time_delivery_rate=$2, quality_rating_avg=$3,
		average_response_time=$4, fulfillment_rate=$5 WHERE id=$1`,
		id, m.OnTimeDeliveryRate, m.QualityRatingAvg, m.AverageResponseTime, m.FulfillmentRate)
	if err != nil {
		return err
	}
	return affected(res)
}

// UpdateResponseTime overwrites only the average response time.
func (r *Repository) UpdateResponseTime(ctx context.Context, id string, seconds float64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE vendors SET average_response_time=$2 WHERE id=$1", id, seconds)
	if err != nil {
		return err
	}
	return affected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (vendor.Vendor, error) {
	var v vendor.Vendor
	err := s.Scan(&v.ID, &v.Name, &v.ContactDetails, &v.Address, &v.VendorCode,
		&v.OnTimeDeliveryRate, &v.QualityRatingAvg, &v.AverageResponseTime, &v.FulfillmentRate)
	return v, err
}

func affected(res sql.Result) error {
	n, _ := res.RowsAffected()
	if n == 0 {
		return vendor.ErrNotFound
	}
	return nil
}

func mapErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", vendor.ErrDuplicate, pqErr.Constraint)
	}
	return err
}
