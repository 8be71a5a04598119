package postgres

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorflow/pkg/order"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func orderRow(when time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(strings.Split(columns, ",")).
		AddRow("1", "PO1", "v1", when, when.Add(48*time.Hour), nil, []byte(`{"a":1}`), 3, "pending", 4.5, when, nil)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO purchase_orders (" + columns + ")")).
		WithArgs("1", "PO1", nil, now, now, nil, nil, 0, "pending", nil, now, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), order.Order{
		ID: "1", PONumber: "PO1", OrderDate: now, ExpectedDeliveryDate: now, Status: "pending", IssueDate: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicate(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("INSERT INTO purchase_orders").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "purchase_orders_po_number_key"})

	err := repo.Create(context.Background(), order.Order{ID: "1", PONumber: "PO1"})
	assert.True(t, errors.Is(err, order.ErrDuplicate), "got %v", err)
}

func TestGet(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM purchase_orders WHERE id=\\$1").
		WithArgs("1").
		WillReturnRows(orderRow(now))

	o, err := repo.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "PO1", o.PONumber)
	assert.Equal(t, "v1", o.Vendor())
	assert.Nil(t, o.DeliveryDate)
	assert.Nil(t, o.AcknowledgmentDate)
	require.NotNil(t, o.QualityRating)
	assert.Equal(t, 4.5, *o.QualityRating)
	assert.JSONEq(t, `{"a":1}`, string(o.Items))
}

func TestGetNotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("SELECT .* FROM purchase_orders WHERE id=\\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(strings.Split(columns, ",")))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestListByVendor(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM purchase_orders WHERE vendor_id=$1 ORDER BY po_number")).
		WithArgs("v1").
		WillReturnRows(orderRow(time.Now()))

	orders, err := repo.List(context.Background(), order.Filter{VendorID: "v1"})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec("UPDATE purchase_orders SET po_number").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), order.Order{ID: "1"})
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM purchase_orders WHERE id=$1")).
		WithArgs("1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM purchase_orders WHERE id=$1")).
		WithArgs("1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "1"), order.ErrNotFound)
}

func TestDetachVendor(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE purchase_orders SET vendor_id=NULL WHERE vendor_id=$1")).
		WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DetachVendor(context.Background(), "v1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
