package admin

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) findDashboardStats(ctx context.Context) (*DashboardStats, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM orders),
		(SELECT COUNT(*) FROM products),
		(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = 'paid')`

	var stats DashboardStats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.UserCount,
		&stats.OrderCount,
		&stats.ProductCount,
		&stats.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan dashboard stats from admin store: %w",
			err,
		)
	}

	return &stats, nil
}

func (s *Store) findAllUsers(ctx context.Context) ([]*ManagedUser, error) {
	query := `SELECT user_id, first_name, last_name, email, role, status, created_at
		FROM users
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all users from admin store: %w",
			err,
		)
	}
	defer rows.Close()

	var users []*ManagedUser
	for rows.Next() {
		var user ManagedUser
		err := rows.Scan(
			&user.UserID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Role,
			&user.Status,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan user from admin store: %w",
				err,
			)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

func (s *Store) updateUserRole(ctx context.Context, userID uuid.UUID, role string) error {
	return s.updateUserField(ctx, userID, "role", role)
}

func (s *Store) updateUserStatus(ctx context.Context, userID uuid.UUID, status string) error {
	return s.updateUserField(ctx, userID, "status", status)
}

func (s *Store) updateUserField(ctx context.Context, userID uuid.UUID, column, value string) error {
	// column is fixed by the callers above, never user input
	query := fmt.Sprintf(
		"UPDATE users SET %s = $1, updated_at = now() WHERE user_id = $2",
		column,
	)

	result, err := s.db.ExecContext(ctx, query, value, userID)
	if err != nil {
		return fmt.Errorf(
			"failed to update user %s in admin store: %w",
			column,
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return servererrors.ErrUserNotFound
	}

	return nil
}

func (s *Store) deleteUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM users WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf(
			"failed to delete user in admin store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return servererrors.ErrUserNotFound
	}

	return nil
}

// findOrdersPerMonth counts paid orders per calendar month of the
// given year.
func (s *Store) findOrdersPerMonth(ctx context.Context, year int) (*MonthlyCounts, error) {
	query := `SELECT EXTRACT(MONTH FROM created_at)::int, COUNT(*)
		FROM orders
		WHERE status = 'paid' AND EXTRACT(YEAR FROM created_at)::int = $1
		GROUP BY 1`

	counts := &MonthlyCounts{Year: year}

	rows, err := s.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get orders per month from admin store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		var month, count int
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf(
				"failed to scan orders per month from admin store: %w",
				err,
			)
		}
		if month >= 1 && month <= 12 {
			counts.Months[month-1] = count
		}
	}

	return counts, rows.Err()
}

func (s *Store) findSalesPerMonth(ctx context.Context, year int) (*MonthlySeries, error) {
	query := `SELECT EXTRACT(MONTH FROM created_at)::int, COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status = 'paid' AND EXTRACT(YEAR FROM created_at)::int = $1
		GROUP BY 1`

	series := &MonthlySeries{Year: year}

	rows, err := s.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get sales per month from admin store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			month int
			total decimal.Decimal
		)
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf(
				"failed to scan sales per month from admin store: %w",
				err,
			)
		}
		if month >= 1 && month <= 12 {
			series.Months[month-1] = total
		}
	}

	return series, rows.Err()
}

func (s *Store) findCategoryDistribution(ctx context.Context) ([]*CategorySlice, error) {
	query := `SELECT COALESCE(c.name, 'uncategorized'), COUNT(*)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.order_id
		JOIN products p ON oi.product_id = p.product_id
		LEFT JOIN categories c ON p.category_id = c.category_id
		WHERE o.status = 'paid'
		GROUP BY 1
		ORDER BY 2 DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get category distribution from admin store: %w",
			err,
		)
	}
	defer rows.Close()

	var slices []*CategorySlice
	for rows.Next() {
		var slice CategorySlice
		if err := rows.Scan(&slice.Category, &slice.Count); err != nil {
			return nil, fmt.Errorf(
				"failed to scan category distribution from admin store: %w",
				err,
			)
		}
		slices = append(slices, &slice)
	}

	return slices, rows.Err()
}
