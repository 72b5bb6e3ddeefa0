package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

// createFromCart converts a user's cart into an order inside a single
// transaction: snapshot cart lines with the current catalog price, insert
// the order and its items with that price frozen in, then clear the cart.
// Either all of it commits or none of it does.
func (s *store) createFromCart(ctx context.Context, userID uuid.UUID) (*Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout tx: %w", err)
	}

	snapshotQuery := `SELECT c.product_id, c.quantity, p.name, p.price
		FROM cart c
		JOIN products p ON c.product_id = p.product_id
		WHERE c.user_id = $1
		FOR UPDATE OF c`

	rows, err := tx.QueryContext(ctx, snapshotQuery, userID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to snapshot cart in order store: %w",
			err,
		)
	}

	var items []*OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ProductID,
			&item.Quantity,
			&item.Name,
			&item.Price,
		); err != nil {
			rows.Close()
			tx.Rollback()
			return nil, fmt.Errorf(
				"failed to scan cart line in order store: %w",
				err,
			)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to read cart lines in order store: %w",
			err,
		)
	}
	rows.Close()

	if len(items) == 0 {
		tx.Rollback()
		return nil, servererrors.ErrCartEmpty
	}

	totalAmount := decimal.Zero
	for _, item := range items {
		totalAmount = totalAmount.Add(
			item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		)
	}

	newOrder := &Order{
		UserID:      userID,
		TotalAmount: totalAmount,
		Items:       items,
	}

	orderQuery := `INSERT INTO orders(user_id, total_amount)
		VALUES($1, $2)
		RETURNING order_id, status, created_at`

	err = tx.QueryRowContext(
		ctx,
		orderQuery,
		userID,
		totalAmount,
	).Scan(
		&newOrder.OrderID,
		&newOrder.Status,
		&newOrder.CreatedAt,
	)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to insert order in order store: %w",
			err,
		)
	}

	itemQuery := `INSERT INTO order_items(order_id, product_id, quantity, price)
		VALUES($1, $2, $3, $4)
		RETURNING order_item_id`

	for _, item := range items {
		item.OrderID = newOrder.OrderID

		err = tx.QueryRowContext(
			ctx,
			itemQuery,
			newOrder.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price,
		).Scan(&item.OrderItemID)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf(
				"failed to insert order item in order store: %w",
				err,
			)
		}
	}

	clearCartQuery := `DELETE FROM cart WHERE user_id = $1`
	if _, err = tx.ExecContext(ctx, clearCartQuery, userID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf(
			"failed to clear cart in order store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout tx: %w", err)
	}

	return newOrder, nil
}

// completeOne transitions an order to paid. The row lock makes the
// read-check-write atomic: of two concurrent completions exactly one
// commits, the other sees the new status and gets the conflict sentinel.
func (s *store) completeOne(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(
		ctx,
		orderID,
		StatusPaid,
		func(current Status) error {
			if current == StatusPaid {
				return servererrors.ErrOrderAlreadyPaid
			}
			return nil
		},
	)
}

func (s *store) cancelOne(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(
		ctx,
		orderID,
		StatusCancelled,
		func(current Status) error {
			if current == StatusPaid {
				return servererrors.ErrCannotCancelPaidOrder
			}
			if current == StatusCancelled {
				return servererrors.ErrOrderAlreadyCancelled
			}
			return nil
		},
	)
}

func (s *store) transition(
	ctx context.Context,
	orderID uuid.UUID,
	to Status,
	check func(current Status) error,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transition tx: %w", err)
	}

	lockQuery := `SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`

	var current Status
	err = tx.QueryRowContext(ctx, lockQuery, orderID).Scan(&current)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return servererrors.ErrOrderNotFound
		}
		return fmt.Errorf(
			"failed to lock order row in order store: %w",
			err,
		)
	}

	if err := check(current); err != nil {
		tx.Rollback()
		return err
	}

	updateQuery := `UPDATE orders SET status = $1 WHERE order_id = $2`
	if _, err = tx.ExecContext(ctx, updateQuery, to, orderID); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to update order status in order store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition tx: %w", err)
	}

	return nil
}

// deleteOne removes an unpaid order and its items under the same row
// lock the status transitions take.
func (s *store) deleteOne(ctx context.Context, orderID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete tx: %w", err)
	}

	lockQuery := `SELECT status FROM orders WHERE order_id = $1 FOR UPDATE`

	var current Status
	err = tx.QueryRowContext(ctx, lockQuery, orderID).Scan(&current)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return servererrors.ErrOrderNotFound
		}
		return fmt.Errorf(
			"failed to lock order row in order store: %w",
			err,
		)
	}

	if current == StatusPaid {
		tx.Rollback()
		return servererrors.ErrCannotDeletePaidOrder
	}

	deleteItemsQuery := `DELETE FROM order_items WHERE order_id = $1`
	if _, err = tx.ExecContext(ctx, deleteItemsQuery, orderID); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to delete order items in order store: %w",
			err,
		)
	}

	deleteOrderQuery := `DELETE FROM orders WHERE order_id = $1`
	if _, err = tx.ExecContext(ctx, deleteOrderQuery, orderID); err != nil {
		tx.Rollback()
		return fmt.Errorf(
			"failed to delete order in order store: %w",
			err,
		)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete tx: %w", err)
	}

	return nil
}

func (s *store) findAllByUser(ctx context.Context, userID uuid.UUID) ([]*Order, error) {
	query := `SELECT order_id, user_id, status, total_amount, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return s.findOrders(ctx, query, userID)
}

func (s *store) findAll(ctx context.Context) ([]*Order, error) {
	query := `SELECT order_id, user_id, status, total_amount, created_at
		FROM orders
		ORDER BY created_at DESC`

	return s.findOrders(ctx, query)
}

func (s *store) findOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get orders from order store: %w",
			err,
		)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.OrderID,
			&o.UserID,
			&o.Status,
			&o.TotalAmount,
			&o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf(
				"failed to scan order from order store: %w",
				err,
			)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed to read orders from order store: %w",
			err,
		)
	}

	for _, o := range orders {
		items, err := s.findItems(ctx, o.OrderID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}

	return orders, nil
}

func (s *store) findByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	query := `SELECT order_id, user_id, status, total_amount, created_at
		FROM orders
		WHERE order_id = $1`

	var o Order
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&o.OrderID,
		&o.UserID,
		&o.Status,
		&o.TotalAmount,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf(
			"failed to scan order from order store: %w",
			err,
		)
	}

	items, err := s.findItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (s *store) findItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	query := `SELECT oi.order_item_id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON oi.product_id = p.product_id
		WHERE oi.order_id = $1`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get order items from order store: %w",
			err,
		)
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.OrderItemID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.Price,
		); err != nil {
			return nil, fmt.Errorf(
				"failed to scan order item from order store: %w",
				err,
			)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// findReceiptInfo gathers the purchaser identity and line items an order
// event payload needs.
func (s *store) findReceiptInfo(ctx context.Context, orderID uuid.UUID) (*receiptInfo, error) {
	query := `SELECT o.order_id, u.first_name || ' ' || u.last_name, u.email, o.created_at, o.total_amount
		FROM orders o
		JOIN users u ON o.user_id = u.user_id
		WHERE o.order_id = $1`

	var info receiptInfo
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&info.OrderID,
		&info.CustomerName,
		&info.CustomerEmail,
		&info.CreatedAt,
		&info.TotalAmount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf(
			"failed to scan receipt info from order store: %w",
			err,
		)
	}

	items, err := s.findItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	info.Items = items

	return &info, nil
}
