package review

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_store_createOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)

	userID := uuid.New()
	productID := uuid.New()
	reviewID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM products WHERE product_id = $1`)).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = 'paid'`)).
		WithArgs(userID, productID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reviews(product_id, user_id, rating, comment)`)).
		WithArgs(productID, userID, 5, "great diver").
		WillReturnRows(sqlmock.NewRows([]string{"review_id"}).AddRow(reviewID))

	created, err := s.createOne(context.Background(), userID, productID, 5, "great diver")
	require.NoError(t, err)
	require.Equal(t, reviewID, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_createOne_productNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)

	userID := uuid.New()
	productID := uuid.New()

	// a missing product is a 404, never a purchase-gating 403
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM products WHERE product_id = $1`)).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = s.createOne(context.Background(), userID, productID, 4, "")
	require.ErrorIs(t, err, servererrors.ErrProductNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_store_createOne_notPurchased(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(db)

	userID := uuid.New()
	productID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM products WHERE product_id = $1`)).
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = 'paid'`)).
		WithArgs(userID, productID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = s.createOne(context.Background(), userID, productID, 4, "")
	require.ErrorIs(t, err, servererrors.ErrReviewNotAllowed)
	require.NoError(t, mock.ExpectationsWereMet())
}
