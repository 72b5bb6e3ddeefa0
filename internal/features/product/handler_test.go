package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// capturingService records the search query it receives so tests can
// assert on url parameter parsing.
type capturingService struct {
	searched *SearchRequestQuery
}

func (c *capturingService) createProduct(_ context.Context, _ *CreateProductRequest) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (c *capturingService) updateProduct(_ context.Context, _ *UpdateProductRequest) error {
	return nil
}

func (c *capturingService) deleteProduct(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (c *capturingService) getAllProducts(_ context.Context) ([]*Product, error) {
	return nil, nil
}

func (c *capturingService) getProduct(_ context.Context, _ uuid.UUID) (*Product, error) {
	return nil, nil
}

func (c *capturingService) searchProducts(_ context.Context, queryItems *SearchRequestQuery) (*SearchResponse, error) {
	c.searched = queryItems
	return &SearchResponse{Results: []*Product{}}, nil
}

func (c *capturingService) getSuggestions(_ context.Context, _ string) ([]*Suggestion, error) {
	return nil, nil
}

func Test_handler_search_parsesFilterAndSortParams(t *testing.T) {
	service := &capturingService{}
	h := &handler{service: service}

	r := httptest.NewRequest(
		http.MethodGet,
		"/search?q=watch&minPrice=100&maxPrice=200&sortBy=price&sortOrder=asc",
		nil,
	)
	w := httptest.NewRecorder()

	require.NoError(t, h.searchHandler(w, r))
	require.NotNil(t, service.searched)

	require.Equal(t, "watch", service.searched.FilterOpts.Search)
	require.Equal(t, 100.00, service.searched.FilterOpts.PriceMin)
	require.Equal(t, 200.00, service.searched.FilterOpts.PriceMax)
	require.Equal(t, "price", service.searched.SortOpts.SortBy)
	require.Equal(t, "asc", service.searched.SortOpts.SortOpt)
}

func Test_handler_search_priceRangeOnly(t *testing.T) {
	service := &capturingService{}
	h := &handler{service: service}

	r := httptest.NewRequest(
		http.MethodGet,
		"/search?minPrice=100&maxPrice=200",
		nil,
	)
	w := httptest.NewRecorder()

	require.NoError(t, h.searchHandler(w, r))

	// a price range alone is valid search criteria
	require.NotNil(t, service.searched)
	require.Equal(t, 100.00, service.searched.FilterOpts.PriceMin)
	require.Equal(t, 200.00, service.searched.FilterOpts.PriceMax)
	require.Equal(t, "created_at", service.searched.SortOpts.SortBy)
	require.Equal(t, "desc", service.searched.SortOpts.SortOpt)
}

func Test_handler_search_noCriteria(t *testing.T) {
	service := &capturingService{}
	h := &handler{service: service}

	r := httptest.NewRequest(http.MethodGet, "/search", nil)
	w := httptest.NewRecorder()

	require.NoError(t, h.searchHandler(w, r))

	require.Nil(t, service.searched)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"error"`)
}
