package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// createOne inserts a review for a product the user has bought in a
// paid order. The unique key on (user_id, product_id) closes the race
// between two concurrent inserts for the same pair.
func (s *Store) createOne(ctx context.Context, userID uuid.UUID, productID uuid.UUID, rating int, comment string) (uuid.UUID, error) {
	var productExists bool
	productQuery := `SELECT EXISTS(
		SELECT 1 FROM products WHERE product_id = $1
	)`

	err := s.db.QueryRowContext(ctx, productQuery, productID).Scan(&productExists)
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed to check product in review store: %w",
			err,
		)
	}
	if !productExists {
		return uuid.Nil, servererrors.ErrProductNotFound
	}

	var purchased bool
	purchaseQuery := `SELECT EXISTS(
		SELECT 1
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.order_id
		WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = 'paid'
	)`

	err = s.db.QueryRowContext(ctx, purchaseQuery, userID, productID).Scan(&purchased)
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed to check purchase in review store: %w",
			err,
		)
	}
	if !purchased {
		return uuid.Nil, servererrors.ErrReviewNotAllowed
	}

	insertQuery := `INSERT INTO reviews(product_id, user_id, rating, comment)
		VALUES($1, $2, $3, $4)
		RETURNING review_id`

	var reviewID uuid.UUID
	err = s.db.QueryRowContext(
		ctx,
		insertQuery,
		productID,
		userID,
		rating,
		comment,
	).Scan(&reviewID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case pqUniqueViolation:
				return uuid.Nil, servererrors.ErrDuplicateReview
			case pqForeignKeyViolation:
				return uuid.Nil, servererrors.ErrProductNotFound
			}
		}

		return uuid.Nil, fmt.Errorf(
			"failed to insert new review in review store: %w",
			err,
		)
	}

	return reviewID, nil
}

func (s *Store) findAllByProduct(ctx context.Context, productID uuid.UUID) ([]*ReviewWithAuthor, error) {
	query := `SELECT r.review_id, r.rating, r.comment,
			u.first_name || ' ' || u.last_name, r.created_at
		FROM reviews r
		JOIN users u ON r.user_id = u.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get product reviews from review store: %w",
			err,
		)
	}
	defer rows.Close()

	var reviews []*ReviewWithAuthor
	for rows.Next() {
		var review ReviewWithAuthor
		err := rows.Scan(
			&review.ReviewID,
			&review.Rating,
			&review.Comment,
			&review.ReviewerName,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan review from review store: %w",
				err,
			)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (s *Store) findStats(ctx context.Context, productID uuid.UUID) (*ReviewStats, error) {
	query := `SELECT
			COUNT(*),
			COALESCE(AVG(rating), 0),
			COUNT(*) FILTER (WHERE rating = 1),
			COUNT(*) FILTER (WHERE rating = 2),
			COUNT(*) FILTER (WHERE rating = 3),
			COUNT(*) FILTER (WHERE rating = 4),
			COUNT(*) FILTER (WHERE rating = 5)
		FROM reviews
		WHERE product_id = $1`

	var stats ReviewStats
	err := s.db.QueryRowContext(ctx, query, productID).Scan(
		&stats.Count,
		&stats.Average,
		&stats.Histogram[0],
		&stats.Histogram[1],
		&stats.Histogram[2],
		&stats.Histogram[3],
		&stats.Histogram[4],
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan review stats from review store: %w",
			err,
		)
	}

	return &stats, nil
}

func (s *Store) findReviewable(ctx context.Context, userID uuid.UUID) ([]*ReviewableProduct, error) {
	query := `SELECT DISTINCT p.product_id, p.name,
			COALESCE((SELECT pi.image_path FROM product_images pi
				WHERE pi.product_id = p.product_id LIMIT 1), '')
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.order_id
		JOIN products p ON oi.product_id = p.product_id
		WHERE o.user_id = $1
			AND o.status = 'paid'
			AND NOT EXISTS (
				SELECT 1 FROM reviews r
				WHERE r.user_id = $1 AND r.product_id = p.product_id
			)
		ORDER BY p.name`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get reviewable products from review store: %w",
			err,
		)
	}
	defer rows.Close()

	var products []*ReviewableProduct
	for rows.Next() {
		var product ReviewableProduct
		err := rows.Scan(
			&product.ProductID,
			&product.Name,
			&product.ImagePath,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan reviewable product from review store: %w",
				err,
			)
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}

func (s *Store) findAll(ctx context.Context) ([]*AdminReview, error) {
	query := `SELECT r.review_id, r.product_id, p.name,
			u.first_name || ' ' || u.last_name, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN products p ON r.product_id = p.product_id
		JOIN users u ON r.user_id = u.user_id
		ORDER BY r.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all reviews from review store: %w",
			err,
		)
	}
	defer rows.Close()

	var reviews []*AdminReview
	for rows.Next() {
		var review AdminReview
		err := rows.Scan(
			&review.ReviewID,
			&review.ProductID,
			&review.ProductName,
			&review.ReviewerName,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan review from review store: %w",
				err,
			)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}

func (s *Store) deleteOne(ctx context.Context, reviewID uuid.UUID) error {
	query := `DELETE FROM reviews WHERE review_id = $1`

	result, err := s.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		return fmt.Errorf(
			"failed to delete review in review store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return servererrors.ErrReviewNotFound
	}

	return nil
}
