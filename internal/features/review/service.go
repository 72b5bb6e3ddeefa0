package review

import (
	"context"
	"strings"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
)

type Storer interface {
	createOne(ctx context.Context, userID uuid.UUID, productID uuid.UUID, rating int, comment string) (uuid.UUID, error)
	findAllByProduct(ctx context.Context, productID uuid.UUID) ([]*ReviewWithAuthor, error)
	findStats(ctx context.Context, productID uuid.UUID) (*ReviewStats, error)
	findReviewable(ctx context.Context, userID uuid.UUID) ([]*ReviewableProduct, error)
	findAll(ctx context.Context) ([]*AdminReview, error)
	deleteOne(ctx context.Context, reviewID uuid.UUID) error
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) addReview(ctx context.Context, userID uuid.UUID, newReview *AddReviewRequest) (uuid.UUID, error) {
	if newReview.Rating < 1 || newReview.Rating > 5 {
		return uuid.Nil, servererrors.ErrInvalidRating
	}

	productID, err := uuid.Parse(newReview.ProductID)
	if err != nil {
		return uuid.Nil, servererrors.ErrProductNotFound
	}

	return s.store.createOne(
		ctx,
		userID,
		productID,
		newReview.Rating,
		strings.TrimSpace(newReview.Comment),
	)
}

func (s *service) getProductReviews(ctx context.Context, productID uuid.UUID) ([]*ReviewWithAuthor, error) {
	return s.store.findAllByProduct(ctx, productID)
}

func (s *service) getProductStats(ctx context.Context, productID uuid.UUID) (*ReviewStats, error) {
	return s.store.findStats(ctx, productID)
}

func (s *service) getReviewableProducts(ctx context.Context, userID uuid.UUID) ([]*ReviewableProduct, error) {
	return s.store.findReviewable(ctx, userID)
}

func (s *service) getAllReviews(ctx context.Context) ([]*AdminReview, error) {
	return s.store.findAll(ctx)
}

func (s *service) deleteReview(ctx context.Context, reviewID uuid.UUID) error {
	return s.store.deleteOne(ctx, reviewID)
}
