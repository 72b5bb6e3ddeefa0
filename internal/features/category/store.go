package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/lib/pq"
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

func (s *Store) createOne(ctx context.Context, newCategory *CreateCategoryRequest) (uuid.UUID, error) {
	query := `INSERT INTO categories(name, description) VALUES($1, $2) RETURNING category_id`

	var categoryID uuid.UUID
	err := s.db.QueryRowContext(
		ctx,
		query,
		newCategory.Name,
		newCategory.Description,
	).Scan(&categoryID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return uuid.Nil, servererrors.ErrCategoryAlreadyExists
		}

		return uuid.Nil, fmt.Errorf(
			"failed to insert new category in category store: %w",
			err,
		)
	}

	return categoryID, nil
}

func (s *Store) updateOne(ctx context.Context, update *UpdateCategoryRequest) error {
	setClauses := []string{}
	queryParams := []any{}

	if update.Name != nil {
		setClauses = append(
			setClauses,
			fmt.Sprintf("name = $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *update.Name)
	}
	if update.Description != nil {
		setClauses = append(
			setClauses,
			fmt.Sprintf("description = $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *update.Description)
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		"UPDATE categories SET %s WHERE category_id = $%d",
		strings.Join(setClauses, ", "),
		len(queryParams)+1,
	)
	queryParams = append(queryParams, update.CategoryID)

	result, err := s.db.ExecContext(ctx, query, queryParams...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return servererrors.ErrCategoryAlreadyExists
		}

		return fmt.Errorf(
			"failed to update category in category store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return servererrors.ErrCategoryNotFound
	}

	return nil
}

// deleteOne removes a category. Products keep existing with their
// category_id cleared by the fk ON DELETE SET NULL.
func (s *Store) deleteOne(ctx context.Context, categoryID uuid.UUID) error {
	query := `DELETE FROM categories WHERE category_id = $1`

	result, err := s.db.ExecContext(ctx, query, categoryID)
	if err != nil {
		return fmt.Errorf(
			"failed to delete category in category store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return servererrors.ErrCategoryNotFound
	}

	return nil
}

func (s *Store) findAll(ctx context.Context) ([]*Category, error) {
	query := `SELECT category_id, name, description, created_at FROM categories ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all categories from category store: %w",
			err,
		)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var category Category
		err := rows.Scan(
			&category.CategoryID,
			&category.Name,
			&category.Description,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan category from category store: %w",
				err,
			)
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}
