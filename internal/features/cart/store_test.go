package cart

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_store_addOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)

	userID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quantity FROM products WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET quantity = quantity - $1`)).
		WithArgs(3, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO cart(user_id, product_id, quantity)`)).
		WithArgs(userID, productID, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.addOne(context.Background(), userID, productID, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_addOne_insufficientStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)

	userID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quantity FROM products WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(2))
	mock.ExpectRollback()

	err = s.addOne(context.Background(), userID, productID, 3)
	require.ErrorIs(t, err, servererrors.ErrInsufficientStock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_addOne_productNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)

	userID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT quantity FROM products WHERE product_id = $1 FOR UPDATE`)).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}))
	mock.ExpectRollback()

	err = s.addOne(context.Background(), userID, productID, 1)
	require.ErrorIs(t, err, servererrors.ErrProductNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_removeOne_restoresStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)

	cartItemID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT product_id, quantity FROM cart WHERE cart_item_id = $1 FOR UPDATE`)).
		WithArgs(cartItemID).
		WillReturnRows(
			sqlmock.NewRows([]string{"product_id", "quantity"}).
				AddRow(productID.String(), 2),
		)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart WHERE cart_item_id = $1`)).
		WithArgs(cartItemID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET quantity = quantity + $1`)).
		WithArgs(2, productID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.removeOne(context.Background(), cartItemID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_removeOne_notFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)
	cartItemID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT product_id, quantity FROM cart WHERE cart_item_id = $1 FOR UPDATE`)).
		WithArgs(cartItemID).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity"}))
	mock.ExpectRollback()

	err = s.removeOne(context.Background(), cartItemID)
	require.ErrorIs(t, err, servererrors.ErrCartItemNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
