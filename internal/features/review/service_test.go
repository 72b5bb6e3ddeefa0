package review

import (
	"context"
	"testing"

	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeReviewStore struct {
	purchased map[uuid.UUID]bool // keyed by product id
	reviewed  map[uuid.UUID]bool
}

func (f *fakeReviewStore) createOne(_ context.Context, _ uuid.UUID, productID uuid.UUID, _ int, _ string) (uuid.UUID, error) {
	if !f.purchased[productID] {
		return uuid.Nil, servererrors.ErrReviewNotAllowed
	}
	if f.reviewed[productID] {
		return uuid.Nil, servererrors.ErrDuplicateReview
	}
	f.reviewed[productID] = true

	return uuid.New(), nil
}

func (f *fakeReviewStore) findAllByProduct(_ context.Context, _ uuid.UUID) ([]*ReviewWithAuthor, error) {
	return nil, nil
}

func (f *fakeReviewStore) findStats(_ context.Context, _ uuid.UUID) (*ReviewStats, error) {
	return &ReviewStats{}, nil
}

func (f *fakeReviewStore) findReviewable(_ context.Context, _ uuid.UUID) ([]*ReviewableProduct, error) {
	return nil, nil
}

func (f *fakeReviewStore) findAll(_ context.Context) ([]*AdminReview, error) {
	return nil, nil
}

func (f *fakeReviewStore) deleteOne(_ context.Context, _ uuid.UUID) error {
	return nil
}

func Test_service_addReview(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name      string
		rating    int
		purchased bool
		reviewed  bool
		wantErr   error
	}{
		{name: "happy path", rating: 5, purchased: true},
		{name: "rating too low", rating: 0, purchased: true, wantErr: servererrors.ErrInvalidRating},
		{name: "rating too high", rating: 6, purchased: true, wantErr: servererrors.ErrInvalidRating},
		{name: "not purchased", rating: 4, purchased: false, wantErr: servererrors.ErrReviewNotAllowed},
		{name: "already reviewed", rating: 3, purchased: true, reviewed: true, wantErr: servererrors.ErrDuplicateReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeReviewStore{
				purchased: map[uuid.UUID]bool{productID: tt.purchased},
				reviewed:  map[uuid.UUID]bool{productID: tt.reviewed},
			}
			svc := NewService(store)

			reviewID, err := svc.addReview(
				context.Background(),
				uuid.New(),
				&AddReviewRequest{
					ProductID: productID.String(),
					Rating:    tt.rating,
					Comment:   "  keeps great time  ",
				},
			)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotEqual(t, uuid.Nil, reviewID)
		})
	}
}

func Test_service_addReview_badProductID(t *testing.T) {
	store := &fakeReviewStore{
		purchased: map[uuid.UUID]bool{},
		reviewed:  map[uuid.UUID]bool{},
	}
	svc := NewService(store)

	_, err := svc.addReview(
		context.Background(),
		uuid.New(),
		&AddReviewRequest{ProductID: "not-a-uuid", Rating: 4},
	)
	require.ErrorIs(t, err, servererrors.ErrProductNotFound)
}
