package product

import (
	"context"
	"fmt"
	"strings"
)

func (s *Store) search(ctx context.Context, queryItems *SearchRequestQuery) (products []*Product, count int, err error) {
	query, countQuery, queryParams := generateQueryAndParams(
		queryItems,
	)

	err = s.db.QueryRowContext(
		ctx,
		countQuery,
		queryParams[:len(queryParams)-2]..., // exclude limit and offset
	).Scan(
		&count,
	)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to get search results count from product store: %w",
			err,
		)
	}

	rows, err := s.db.QueryContext(ctx, query, queryParams...)
	if err != nil {
		return nil, 0, fmt.Errorf(
			"failed to search products in product store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		product := new(Product)
		if err := scanRowsIntoProduct(rows, product); err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf(
			"failed to read search results from product store: %w",
			err,
		)
	}

	if err := s.attachImages(ctx, products); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

// findSuggestions returns up to ten matching product names and five
// matching category names for an autocomplete prefix.
func (s *Store) findSuggestions(ctx context.Context, prefix string) ([]*Suggestion, error) {
	pattern := fmt.Sprintf("%s%%", prefix)

	productQuery := `SELECT name FROM products WHERE name ILIKE $1 ORDER BY name LIMIT 10`
	categoryQuery := `SELECT name FROM categories WHERE name ILIKE $1 ORDER BY name LIMIT 5`

	suggestions := []*Suggestion{}

	for _, q := range []struct {
		kind  string
		query string
	}{
		{kind: "product", query: productQuery},
		{kind: "category", query: categoryQuery},
	} {
		rows, err := s.db.QueryContext(ctx, q.query, pattern)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to get %s suggestions from product store: %w",
				q.kind,
				err,
			)
		}

		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return nil, fmt.Errorf(
					"failed to scan %s suggestion from product store: %w",
					q.kind,
					err,
				)
			}
			suggestions = append(suggestions, &Suggestion{
				Type:  q.kind,
				Value: name,
			})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return suggestions, nil
}

func generateQueryAndParams(queryItems *SearchRequestQuery) (string, string, []any) {
	selectFields := `p.product_id, p.name, p.description, p.price, p.quantity,
		p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at`

	defaultQuery := fmt.Sprintf(
		`SELECT %s FROM products p LEFT JOIN categories c ON p.category_id = c.category_id`,
		selectFields,
	)
	defaultCountQuery := `SELECT COUNT(*) FROM products p LEFT JOIN categories c ON p.category_id = c.category_id`

	whereClauses := []string{}
	queryParams := []any{}
	sortClause := ""

	if queryItems.FilterOpts.Search != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"(p.name ILIKE $%d OR p.description ILIKE $%d OR c.name ILIKE $%d)",
				len(queryParams)+1, len(queryParams)+2, len(queryParams)+3,
			),
		)

		pattern := fmt.Sprintf(
			"%%%s%%",
			queryItems.FilterOpts.Search,
		)
		queryParams = append(queryParams, pattern, pattern, pattern)
	}

	if queryItems.FilterOpts.Category != "" {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"c.name = $%d",
				len(queryParams)+1,
			),
		)

		queryParams = append(queryParams, queryItems.FilterOpts.Category)
	}

	if queryItems.FilterOpts.PriceMin > 0.00 {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf(
				"p.price >= $%d",
				len(queryParams)+1,
			),
		)
		queryParams = append(queryParams, queryItems.FilterOpts.PriceMin)
	}

	if queryItems.FilterOpts.PriceMax > 0.00 {
		whereClauses = append(
			whereClauses,
			fmt.Sprintf("p.price <= $%d", len(queryParams)+1),
		)

		queryParams = append(queryParams, queryItems.FilterOpts.PriceMax)
	}

	// SortBy comes through a oneof whitelist in the request DTO, so it
	// is safe to interpolate here.
	if queryItems.SortOpts.SortBy != "" {
		sortClause = fmt.Sprintf(
			"ORDER BY p.%s %s",
			queryItems.SortOpts.SortBy,
			strings.ToUpper(queryItems.SortOpts.SortOpt),
		)
	}

	if len(whereClauses) > 0 {
		whereStr := strings.Join(whereClauses, " AND ")

		defaultQuery += fmt.Sprintf(
			" WHERE %s",
			whereStr,
		)

		defaultCountQuery += fmt.Sprintf(
			" WHERE %s",
			whereStr,
		)
	}

	if sortClause != "" {
		defaultQuery += fmt.Sprintf(" %s", sortClause)
	}

	defaultQuery += fmt.Sprintf(
		" LIMIT $%d OFFSET $%d",
		len(queryParams)+1,
		len(queryParams)+2,
	)
	queryParams = append(
		queryParams,
		queryItems.PageOpts.Limit,
		(queryItems.PageOpts.Page-1)*queryItems.PageOpts.Limit,
	)

	return defaultQuery, defaultCountQuery, queryParams
}
