package cart

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
	addToCart(ctx context.Context, userID uuid.UUID, req *AddToCartRequest) error
	getCart(ctx context.Context, userID uuid.UUID) ([]*CartItemDTO, error)
	removeFromCart(ctx context.Context, cartItemID uuid.UUID) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(cartService servicer, middleware middleware) *handler {
	return &handler{
		service:    cartService,
		middleware: middleware,
	}
}

// RegisterRoutes mounts the cart routes. Every route is customer-only:
// an admin actor gets 403 from the auth middleware before any handler
// runs.
func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/cart",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.addToCartHandler,
				"customer",
			),
		),
	)

	router.Get(
		"/cart",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getCartHandler,
				"customer",
			),
		),
	)

	router.Delete(
		"/cart/{cartItemID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.removeFromCartHandler,
				"customer",
			),
		),
	)
}

func (h *handler) addToCartHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *AddToCartRequest
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

	userID := middlewares.GetEntityIDFromContextKey(ctx)

	err := h.service.addToCart(ctx, userID, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrInsufficientStock):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrInsufficientStock.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"item added to cart",
		nil,
	)
}

func (h *handler) getCartHandler(w http.ResponseWriter, r *http.Request) error {
	userID := middlewares.GetEntityIDFromContextKey(r.Context())

	items, err := h.service.getCart(r.Context(), userID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart retrieved",
		items,
	)
}

func (h *handler) removeFromCartHandler(w http.ResponseWriter, r *http.Request) error {
	cartItemID, err := uuid.Parse(chi.URLParam(r, "cartItemID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid cart item id",
			nil,
		)
	}

	err = h.service.removeFromCart(r.Context(), cartItemID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCartItemNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCartItemNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"item removed from cart",
		nil,
	)
}
