package product

import (
	"context"
	"math"
	"strings"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, newProduct *CreateProductRequest) (uuid.UUID, error)
	updateOne(ctx context.Context, update *UpdateProductRequest) error
	deleteOne(ctx context.Context, productID uuid.UUID) error
	findAll(ctx context.Context) ([]*Product, error)
	findByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	findByName(ctx context.Context, name string) (*Product, error)
	search(ctx context.Context, queryItems *SearchRequestQuery) ([]*Product, int, error)
	findSuggestions(ctx context.Context, prefix string) ([]*Suggestion, error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (uuid.UUID, error) {
	newProduct.Name = strings.TrimSpace(newProduct.Name)
	newProduct.Description = strings.TrimSpace(newProduct.Description)

	product, err := s.store.findByName(ctx, newProduct.Name)
	if err != nil {
		return uuid.Nil, err
	}

	if product.ProductID != uuid.Nil {
		return uuid.Nil, servererrors.ErrProductAlreadyExists
	}

	return s.store.createOne(
		ctx,
		newProduct,
	)
}

func (s *service) updateProduct(ctx context.Context, update *UpdateProductRequest) error {
	if update.Name != nil {
		*update.Name = strings.TrimSpace(*update.Name)
	}
	if update.Description != nil {
		*update.Description = strings.TrimSpace(*update.Description)
	}

	return s.store.updateOne(ctx, update)
}

func (s *service) deleteProduct(ctx context.Context, productID uuid.UUID) error {
	return s.store.deleteOne(ctx, productID)
}

func (s *service) getAllProducts(ctx context.Context) ([]*Product, error) {
	return s.store.findAll(ctx)
}

func (s *service) getProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	return s.store.findByID(ctx, productID)
}

func (s *service) searchProducts(ctx context.Context, queryItems *SearchRequestQuery) (*SearchResponse, error) {
	products, count, err := s.store.search(ctx, queryItems)
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []*Product{}
	}

	totalPages := int(math.Ceil(
		float64(count) / float64(queryItems.PageOpts.Limit),
	))

	return &SearchResponse{
		Results:    products,
		Total:      count,
		Page:       queryItems.PageOpts.Page,
		TotalPages: totalPages,
		Query:      queryItems.FilterOpts.Search,
		Filters: SearchResponseFacet{
			Category:  queryItems.FilterOpts.Category,
			MinPrice:  queryItems.FilterOpts.PriceMin,
			MaxPrice:  queryItems.FilterOpts.PriceMax,
			SortBy:    queryItems.SortOpts.SortBy,
			SortOrder: queryItems.SortOpts.SortOpt,
		},
	}, nil
}

func (s *service) getSuggestions(ctx context.Context, prefix string) ([]*Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []*Suggestion{}, nil
	}

	return s.store.findSuggestions(ctx, prefix)
}
