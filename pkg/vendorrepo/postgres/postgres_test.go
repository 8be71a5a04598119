package postgres

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorflow/pkg/vendor"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestGet(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM vendors WHERE id=$1")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows(strings.Split(columns, ",")).
			AddRow("1", "Vendor One", "contact@vendorone.com", "100 One St", "VEND001", 50.0, 4.25, 3600.0, 100.0))

	v, err := repo.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Vendor One", v.Name)
	assert.Equal(t, vendor.Metrics{OnTimeDeliveryRate: 50, QualityRatingAvg: 4.25, AverageResponseTime: 3600, FulfillmentRate: 100}, v.Metrics)
}

func TestGetNotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("FROM vendors WHERE id").
		WillReturnRows(sqlmock.NewRows(strings.Split(columns, ",")))

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, vendor.ErrNotFound)
}

func TestCreateDuplicate(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("INSERT INTO vendors").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "vendors_vendor_code_key"})

	err := repo.Create(context.Background(), vendor.Vendor{ID: "1"})
	assert.True(t, errors.Is(err, vendor.ErrDuplicate), "got %v", err)
}

func TestUpdateProfileLeavesMetrics(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE vendors SET name=$2, contact_details=$3, address=$4, vendor_code=$5 WHERE id=$1")).
		WithArgs("1", "New", "c", "a", "VEND001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(context.Background(), "1", vendor.Profile{Name: "New", ContactDetails: "c", Address: "a", VendorCode: "VEND001"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMetrics(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("UPDATE vendors SET on_time_delivery_rate").
		WithArgs("1", 50.0, 4.25, 10.0, 100.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vendors SET on_time_delivery_rate").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateMetrics(context.Background(), "1", vendor.Metrics{OnTimeDeliveryRate: 50, QualityRatingAvg: 4.25, AverageResponseTime: 10, FulfillmentRate: 100}))
	assert.ErrorIs(t, repo.UpdateMetrics(context.Background(), "2", vendor.Metrics{}), vendor.ErrNotFound)
}

func TestUpdateResponseTime(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE vendors SET average_response_time=$2 WHERE id=$1")).
		WithArgs("1", 42.5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateResponseTime(context.Background(), "1", 42.5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM vendors WHERE id=$1")).
		WithArgs("1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "1"), vendor.ErrNotFound)
}
