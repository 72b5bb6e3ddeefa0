package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// pq error code for a foreign key violation, raised when deleting a
// product that order_items still reference.
const pqForeignKeyViolation = "23503"

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newProduct *CreateProductRequest) (uuid.UUID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	productQuery := `INSERT INTO products(name, description, price, quantity, category_id)
		VALUES($1, $2, $3, $4, $5)
		RETURNING product_id`

	var categoryID any
	if newProduct.CategoryID != "" {
		categoryID = newProduct.CategoryID
	}

	var productID uuid.UUID
	err = tx.QueryRowContext(
		ctx,
		productQuery,
		newProduct.Name,
		newProduct.Description,
		decimal.NewFromFloat(newProduct.Price),
		newProduct.Quantity,
		categoryID,
	).Scan(&productID)
	if err != nil {
		tx.Rollback()
		return uuid.Nil, fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	if err := insertImages(ctx, tx, productID, newProduct.Images); err != nil {
		tx.Rollback()
		return uuid.Nil, err
	}

	return productID, tx.Commit()
}

func (s *Store) updateOne(ctx context.Context, update *UpdateProductRequest) error {
	setClauses := []string{}
	queryParams := []any{}

	appendClause := func(column string, value any) {
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(queryParams)+1),
		)
		queryParams = append(queryParams, value)
	}

	if update.Name != nil {
		appendClause("name", *update.Name)
	}
	if update.Description != nil {
		appendClause("description", *update.Description)
	}
	if update.Price != nil {
		appendClause("price", decimal.NewFromFloat(*update.Price))
	}
	if update.Quantity != nil {
		appendClause("quantity", *update.Quantity)
	}
	if update.CategoryID != nil {
		if *update.CategoryID == "" {
			setClauses = append(setClauses, "category_id = NULL")
		} else {
			appendClause("category_id", *update.CategoryID)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if len(setClauses) > 0 {
		setClauses = append(setClauses, "updated_at = now()")

		query := fmt.Sprintf(
			"UPDATE products SET %s WHERE product_id = $%d",
			strings.Join(setClauses, ", "),
			len(queryParams)+1,
		)
		queryParams = append(queryParams, update.ProductID)

		result, err := tx.ExecContext(ctx, query, queryParams...)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf(
				"failed to update product in product store: %w",
				err,
			)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			tx.Rollback()
			return err
		}
		if affected == 0 {
			tx.Rollback()
			return servererrors.ErrProductNotFound
		}
	}

	if update.Images != nil {
		productID, err := uuid.Parse(update.ProductID)
		if err != nil {
			tx.Rollback()
			return err
		}

		deleteImagesQuery := `DELETE FROM product_images WHERE product_id = $1`
		if _, err := tx.ExecContext(ctx, deleteImagesQuery, productID); err != nil {
			tx.Rollback()
			return fmt.Errorf(
				"failed to delete old product images in product store: %w",
				err,
			)
		}

		if err := insertImages(ctx, tx, productID, update.Images); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// deleteOne removes a product. A foreign key violation means sold order
// items still reference it, which surfaces as a referential conflict.
func (s *Store) deleteOne(ctx context.Context, productID uuid.UUID) error {
	query := `DELETE FROM products WHERE product_id = $1`

	result, err := s.db.ExecContext(ctx, query, productID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation {
			return servererrors.ErrProductReferenced
		}

		return fmt.Errorf(
			"failed to delete product in product store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return servererrors.ErrProductNotFound
	}

	return nil
}

func (s *Store) findAll(ctx context.Context) ([]*Product, error) {
	query := `SELECT p.product_id, p.name, p.description, p.price, p.quantity,
			p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.category_id
		ORDER BY p.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		product := new(Product)
		if err := scanRowsIntoProduct(rows, product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(
			"failed to read products from product store: %w",
			err,
		)
	}

	if err := s.attachImages(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (s *Store) findByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	query := `SELECT p.product_id, p.name, p.description, p.price, p.quantity,
			p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.category_id
		WHERE p.product_id = $1`

	product := new(Product)

	var categoryID uuid.NullUUID
	err := s.db.QueryRowContext(ctx, query, productID).Scan(
		&product.ProductID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Quantity,
		&categoryID,
		&product.CategoryName,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, servererrors.ErrProductNotFound
		}
		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}
	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}

	if err := s.attachImages(ctx, []*Product{product}); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *Store) findByName(ctx context.Context, name string) (*Product, error) {
	query := `SELECT product_id FROM products WHERE name = $1`

	product := new(Product)
	err := s.db.QueryRowContext(ctx, query, name).Scan(&product.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product, nil
		}

		return product, fmt.Errorf(
			"failed to scan product by name from product store: %w",
			err,
		)
	}

	return product, nil
}

// attachImages loads image paths for the given products in one query.
func (s *Store) attachImages(ctx context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	productIDs := make([]uuid.UUID, 0, len(products))
	byID := make(map[uuid.UUID]*Product, len(products))
	for _, product := range products {
		product.Images = []string{}
		productIDs = append(productIDs, product.ProductID)
		byID[product.ProductID] = product
	}

	query := `SELECT product_id, image_path FROM product_images WHERE product_id = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(productIDs))
	if err != nil {
		return fmt.Errorf(
			"failed to get product images from product store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID uuid.UUID
			imagePath string
		)
		if err := rows.Scan(&productID, &imagePath); err != nil {
			return fmt.Errorf(
				"failed to scan product image from product store: %w",
				err,
			)
		}

		if product, ok := byID[productID]; ok {
			product.Images = append(product.Images, imagePath)
		}
	}

	return rows.Err()
}

func insertImages(ctx context.Context, tx *sql.Tx, productID uuid.UUID, images []string) error {
	imageQuery := `INSERT INTO product_images(product_id, image_path) VALUES($1, $2)`

	for _, imagePath := range images {
		if _, err := tx.ExecContext(ctx, imageQuery, productID, imagePath); err != nil {
			return fmt.Errorf(
				"failed to insert product image in product store: %w",
				err,
			)
		}
	}

	return nil
}

func scanRowsIntoProduct(rows *sql.Rows, product *Product) error {
	var categoryID uuid.NullUUID

	err := rows.Scan(
		&product.ProductID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Quantity,
		&categoryID,
		&product.CategoryName,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	if categoryID.Valid {
		product.CategoryID = &categoryID.UUID
	}

	return nil
}
