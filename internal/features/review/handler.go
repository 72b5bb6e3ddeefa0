package review

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/drew18-it/watchbuy/internal/handlerutils"
	"github.com/drew18-it/watchbuy/internal/middlewares"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/drew18-it/watchbuy/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	addReview(ctx context.Context, userID uuid.UUID, newReview *AddReviewRequest) (uuid.UUID, error)
	getProductReviews(ctx context.Context, productID uuid.UUID) ([]*ReviewWithAuthor, error)
	getProductStats(ctx context.Context, productID uuid.UUID) (*ReviewStats, error)
	getReviewableProducts(ctx context.Context, userID uuid.UUID) ([]*ReviewableProduct, error)
	getAllReviews(ctx context.Context) ([]*AdminReview, error)
	deleteReview(ctx context.Context, reviewID uuid.UUID) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(reviewService servicer, middleware middleware) *handler {
	return &handler{
		service:    reviewService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/reviews/product/{productID}",
		handlerutils.MakeHandler(
			h.getProductReviewsHandler,
		),
	)

	router.Get(
		"/reviews/stats/{productID}",
		handlerutils.MakeHandler(
			h.getProductStatsHandler,
		),
	)

	// protected routes
	router.Post(
		"/reviews",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.addReviewHandler,
			),
		),
	)

	router.Get(
		"/reviews/reviewable",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getReviewableHandler,
			),
		),
	)

	router.Get(
		"/admin/reviews",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getAllReviewsHandler,
				"admin",
			),
		),
	)

	router.Delete(
		"/admin/reviews/{reviewID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteReviewHandler,
				"admin",
			),
		),
	)
}

func (h *handler) addReviewHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *AddReviewRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	reviewID, err := h.service.addReview(
		ctx,
		middlewares.GetEntityIDFromContextKey(ctx),
		payload,
	)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidRating):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInvalidRating.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrReviewNotAllowed):
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrReviewNotAllowed.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrDuplicateReview):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrDuplicateReview.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"review added",
		map[string]any{"review_id": reviewID},
	)
}

func (h *handler) getProductReviewsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	reviews, err := h.service.getProductReviews(ctx, productID)
	if err != nil {
		return err
	}

	if reviews == nil {
		reviews = []*ReviewWithAuthor{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product reviews retrieved",
		reviews,
	)
}

func (h *handler) getProductStatsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	stats, err := h.service.getProductStats(ctx, productID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"review stats retrieved",
		stats,
	)
}

func (h *handler) getReviewableHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	products, err := h.service.getReviewableProducts(
		ctx,
		middlewares.GetEntityIDFromContextKey(ctx),
	)
	if err != nil {
		return err
	}

	if products == nil {
		products = []*ReviewableProduct{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"reviewable products retrieved",
		products,
	)
}

func (h *handler) getAllReviewsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	reviews, err := h.service.getAllReviews(ctx)
	if err != nil {
		return err
	}

	if reviews == nil {
		reviews = []*AdminReview{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all reviews retrieved",
		reviews,
	)
}

func (h *handler) deleteReviewHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid review id",
			nil,
		)
	}

	if err := h.service.deleteReview(ctx, reviewID); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrReviewNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrReviewNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"review deleted",
		nil,
	)
}
