package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_generateQueryAndParams(t *testing.T) {
	queryItems := &SearchRequestQuery{}
	queryItems.FilterOpts.Search = "diver"
	queryItems.FilterOpts.Category = "dive watches"
	queryItems.FilterOpts.PriceMin = 100
	queryItems.FilterOpts.PriceMax = 500
	queryItems.SortOpts.SortBy = "price"
	queryItems.SortOpts.SortOpt = "asc"
	queryItems.PageOpts.Page = 2
	queryItems.PageOpts.Limit = 20

	query, countQuery, params := generateQueryAndParams(queryItems)

	require.Contains(t, query, "p.name ILIKE $1 OR p.description ILIKE $2 OR c.name ILIKE $3")
	require.Contains(t, query, "c.name = $4")
	require.Contains(t, query, "p.price >= $5")
	require.Contains(t, query, "p.price <= $6")
	require.Contains(t, query, "ORDER BY p.price ASC")
	require.Contains(t, query, "LIMIT $7 OFFSET $8")

	require.NotContains(t, countQuery, "ORDER BY")
	require.NotContains(t, countQuery, "LIMIT")

	require.Equal(t, []any{
		"%diver%",
		"%diver%",
		"%diver%",
		"dive watches",
		100.00,
		500.00,
		uint64(20),
		uint64(20), // page 2 with limit 20 skips the first 20
	}, params)
}

func Test_generateQueryAndParams_freeTextMatchesCategoryName(t *testing.T) {
	queryItems := &SearchRequestQuery{}
	queryItems.FilterOpts.Search = "dive"
	queryItems.SortOpts.SortBy = "created_at"
	queryItems.SortOpts.SortOpt = "desc"
	queryItems.PageOpts.Page = 1
	queryItems.PageOpts.Limit = 20

	query, countQuery, params := generateQueryAndParams(queryItems)

	// free text matches product name, description and category name
	require.Contains(t, query, "(p.name ILIKE $1 OR p.description ILIKE $2 OR c.name ILIKE $3)")
	require.Contains(t, countQuery, "(p.name ILIKE $1 OR p.description ILIKE $2 OR c.name ILIKE $3)")
	require.Equal(t, []any{
		"%dive%",
		"%dive%",
		"%dive%",
		uint64(20),
		uint64(0),
	}, params)
}

func Test_generateQueryAndParams_noFilters(t *testing.T) {
	queryItems := &SearchRequestQuery{}
	queryItems.SortOpts.SortBy = "created_at"
	queryItems.SortOpts.SortOpt = "desc"
	queryItems.PageOpts.Page = 1
	queryItems.PageOpts.Limit = 10

	query, countQuery, params := generateQueryAndParams(queryItems)

	require.NotContains(t, query, "WHERE")
	require.NotContains(t, countQuery, "WHERE")
	require.True(t, strings.HasSuffix(query, "LIMIT $1 OFFSET $2"))
	require.Equal(t, []any{uint64(10), uint64(0)}, params)
}
