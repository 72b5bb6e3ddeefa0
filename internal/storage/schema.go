package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on startup. order_items.product_id deliberately has
// no cascade: a product referenced by a sold item cannot be deleted.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name VARCHAR(50) NOT NULL,
		last_name VARCHAR(50) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'customer' CHECK (role IN ('customer', 'admin')),
		status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
		image_path VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		session_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		refresh_token TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		category_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) UNIQUE NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		product_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(200) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		category_id UUID REFERENCES categories(category_id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS product_images (
		image_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
		image_path VARCHAR(255) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS cart (
		cart_item_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
		quantity INT NOT NULL DEFAULT 1 CHECK (quantity > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, product_id)
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		order_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'processing', 'shipped', 'delivered', 'cancelled', 'paid')),
		total_amount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id UUID NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(product_id) ON DELETE RESTRICT,
		quantity INT NOT NULL CHECK (quantity > 0),
		price DECIMAL(10,2) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		review_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		rating INT NOT NULL CHECK (rating >= 1 AND rating <= 5),
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, product_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reviews_product_id ON reviews(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_user_id ON reviews(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category_id ON products(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cart_user_id ON cart(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
}

// Migrate creates the watchbuy tables and indexes if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	return nil
}
