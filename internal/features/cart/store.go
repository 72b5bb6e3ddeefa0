package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

// addOne reserves stock and upserts the cart row in one transaction. The
// product row lock makes the check-then-decrement atomic, so two
// concurrent adds can never oversell the same product.
func (s *store) addOne(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin add-to-cart tx: %w", err)
	}

	lockQuery := `SELECT quantity FROM products WHERE product_id = $1 FOR UPDATE`

	var available int
	err = tx.QueryRowContext(ctx, lockQuery, productID).Scan(&available)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return servererrors.ErrProductNotFound
		}
		return fmt.Errorf(
			"failed to lock product row in cart store: %w",
			err,
		)
	}

	if available < quantity {
		tx.Rollback()
		return servererrors.ErrInsufficientStock
	}

	reserveQuery := `UPDATE products SET quantity = quantity - $1, updated_at = now() WHERE product_id = $2`
	if _, err = tx.ExecContext(ctx, reserveQuery, quantity, productID); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to reserve stock in cart store: %w",
			err,
		)
	}

	upsertQuery := `INSERT INTO cart(user_id, product_id, quantity)
		VALUES($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity`

	if _, err = tx.ExecContext(ctx, upsertQuery, userID, productID, quantity); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to upsert cart item in cart store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit add-to-cart tx: %w", err)
	}

	return nil
}

// removeOne deletes a cart row and restores its reservation onto the
// product's stock within one transaction.
func (s *store) removeOne(ctx context.Context, cartItemID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin remove-from-cart tx: %w", err)
	}

	lockQuery := `SELECT product_id, quantity FROM cart WHERE cart_item_id = $1 FOR UPDATE`

	var (
		productID uuid.UUID
		quantity  int
	)
	err = tx.QueryRowContext(ctx, lockQuery, cartItemID).Scan(&productID, &quantity)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return servererrors.ErrCartItemNotFound
		}
		return fmt.Errorf(
			"failed to lock cart row in cart store: %w",
			err,
		)
	}

	deleteQuery := `DELETE FROM cart WHERE cart_item_id = $1`
	if _, err = tx.ExecContext(ctx, deleteQuery, cartItemID); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to delete cart item in cart store: %w",
			err,
		)
	}

	restoreQuery := `UPDATE products SET quantity = quantity + $1, updated_at = now() WHERE product_id = $2`
	if _, err = tx.ExecContext(ctx, restoreQuery, quantity, productID); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to restore stock in cart store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit remove-from-cart tx: %w", err)
	}

	return nil
}

func (s *store) findAllByUser(ctx context.Context, userID uuid.UUID) ([]*CartItemDTO, error) {
	query := `SELECT c.cart_item_id, c.quantity, p.name, p.description, p.price,
			COALESCE((SELECT pi.image_path FROM product_images pi WHERE pi.product_id = p.product_id LIMIT 1), '')
		FROM cart c
		JOIN products p ON c.product_id = p.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get cart items from cart store: %w",
			err,
		)
	}
	defer rows.Close()

	var items []*CartItemDTO
	for rows.Next() {
		var item CartItemDTO
		if err := rows.Scan(
			&item.CartItemID,
			&item.Quantity,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.ImagePath,
		); err != nil {
			return nil, fmt.Errorf(
				"failed to scan cart item from cart store: %w",
				err,
			)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
