package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const pqUniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newUser *User) (uuid.UUID, error) {
	query := `INSERT INTO users(first_name, last_name, email, password)
		VALUES($1, $2, $3, $4)
		RETURNING user_id`

	var userID uuid.UUID
	err := s.db.QueryRowContext(
		ctx,
		query,
		newUser.FirstName,
		newUser.LastName,
		newUser.Email,
		newUser.Password,
	).Scan(&userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return uuid.Nil, servererrors.ErrEmailAlreadyTaken
		}

		return uuid.Nil, fmt.Errorf(
			"failed to insert new user in user store: %w",
			err,
		)
	}

	return userID, nil
}

func (s *Store) findByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT user_id, first_name, last_name, email, password, role, status,
			COALESCE(image_path, ''), created_at, updated_at
		FROM users
		WHERE email = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) findByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	query := `SELECT user_id, first_name, last_name, email, password, role, status,
			COALESCE(image_path, ''), created_at, updated_at
		FROM users
		WHERE user_id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, userID))
}

// findStats aggregates the profile numbers. Total spent only counts
// paid orders.
func (s *Store) findStats(ctx context.Context, userID uuid.UUID) (*ProfileStatsResponse, error) {
	query := `SELECT
			COUNT(o.order_id),
			COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = 'paid'), 0),
			u.created_at
		FROM users u
		LEFT JOIN orders o ON o.user_id = u.user_id
		WHERE u.user_id = $1
		GROUP BY u.user_id`

	var (
		stats      ProfileStatsResponse
		totalSpent decimal.Decimal
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.OrderCount,
		&totalSpent,
		&stats.MemberSince,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan user stats from user store: %w",
			err,
		)
	}
	stats.TotalSpent = totalSpent

	return &stats, nil
}

func (s *Store) scanOne(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.UserID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Status,
		&user.ImagePath,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrUserNotFound
		}

		return nil, fmt.Errorf(
			"failed to scan user from user store: %w",
			err,
		)
	}

	return &user, nil
}
