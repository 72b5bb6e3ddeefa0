package cart

import (
	"context"

	"github.com/google/uuid"
)

type storer interface {
	addOne(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	removeOne(ctx context.Context, cartItemID uuid.UUID) error
	findAllByUser(ctx context.Context, userID uuid.UUID) ([]*CartItemDTO, error)
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) addToCart(ctx context.Context, userID uuid.UUID, req *AddToCartRequest) error {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return err
	}

	return s.store.addOne(ctx, userID, productID, req.Quantity)
}

func (s *service) getCart(ctx context.Context, userID uuid.UUID) ([]*CartItemDTO, error) {
	return s.store.findAllByUser(ctx, userID)
}

func (s *service) removeFromCart(ctx context.Context, cartItemID uuid.UUID) error {
	return s.store.removeOne(ctx, cartItemID)
}
