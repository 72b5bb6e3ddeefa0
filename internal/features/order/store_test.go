package order

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// decimalArg matches a decimal argument by numeric value, queried
// decimals pass through driver.Valuer as plain strings.
type decimalArg string

func (d decimalArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}

	want, err := decimal.NewFromString(string(d))
	if err != nil {
		return false
	}

	got, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}

	return want.Equal(got)
}

func Test_store_createFromCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)

	userID := uuid.New()
	orderID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.product_id, c.quantity, p.name, p.price`)).
		WithArgs(userID).
		WillReturnRows(
			sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}).
				AddRow(productA.String(), 2, "diver 200m", "150.00").
				AddRow(productB.String(), 1, "field watch", "89.50"),
		)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders(user_id, total_amount)`)).
		WithArgs(userID, decimalArg("389.50")).
		WillReturnRows(
			sqlmock.NewRows([]string{"order_id", "status", "created_at"}).
				AddRow(orderID.String(), "pending", time.Now()),
		)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(orderID, productA, 2, decimalArg("150.00")).
		WillReturnRows(
			sqlmock.NewRows([]string{"order_item_id"}).AddRow(uuid.New().String()),
		)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(orderID, productB, 1, decimalArg("89.50")).
		WillReturnRows(
			sqlmock.NewRows([]string{"order_item_id"}).AddRow(uuid.New().String()),
		)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectCommit()

	newOrder, err := s.createFromCart(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, orderID, newOrder.OrderID)
	require.Equal(t, StatusPending, newOrder.Status)
	require.Equal(t, "389.5", newOrder.TotalAmount.String())
	require.Len(t, newOrder.Items, 2)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_createFromCart_emptyCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT c.product_id, c.quantity, p.name, p.price`)).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "name", "price"}))
	mock.ExpectRollback()

	_, err = s.createFromCart(context.Background(), userID)
	require.ErrorIs(t, err, servererrors.ErrCartEmpty)

	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_completeOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1 WHERE order_id = $2`)).
		WithArgs(StatusPaid, orderID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.completeOne(context.Background(), orderID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_completeOne_alreadyPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("paid"))
	mock.ExpectRollback()

	err = s.completeOne(context.Background(), orderID)
	require.ErrorIs(t, err, servererrors.ErrOrderAlreadyPaid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_cancelOne_conflicts(t *testing.T) {
	tests := []struct {
		name    string
		current string
		wantErr error
	}{
		{name: "paid order", current: "paid", wantErr: servererrors.ErrCannotCancelPaidOrder},
		{name: "already cancelled", current: "cancelled", wantErr: servererrors.ErrOrderAlreadyCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			s := NewStore(db)
			orderID := uuid.New()

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`)).
				WithArgs(orderID).
				WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(tt.current))
			mock.ExpectRollback()

			err = s.cancelOne(context.Background(), orderID)
			require.ErrorIs(t, err, tt.wantErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func Test_store_transition_orderNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	err = s.completeOne(context.Background(), orderID)
	require.ErrorIs(t, err, servererrors.ErrOrderNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_deleteOne_paidOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("paid"))
	mock.ExpectRollback()

	err = s.deleteOne(context.Background(), orderID)
	require.ErrorIs(t, err, servererrors.ErrCannotDeletePaidOrder)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_deleteOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`)).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM order_items WHERE order_id = $1`)).
		WithArgs(orderID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE order_id = $1`)).
		WithArgs(orderID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.deleteOne(context.Background(), orderID))
	require.NoError(t, mock.ExpectationsWereMet())
}
