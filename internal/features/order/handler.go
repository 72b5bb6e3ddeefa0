package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/drew18-it/watchbuy/internal/handlerutils"
	"github.com/drew18-it/watchbuy/internal/middlewares"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	checkout(ctx context.Context, userID uuid.UUID) (*CheckoutResponse, error)
	completeOrder(ctx context.Context, orderID uuid.UUID) error
	cancelOrder(ctx context.Context, orderID uuid.UUID) error
	deleteOrder(ctx context.Context, orderID uuid.UUID) error
	getOrders(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	getAllOrders(ctx context.Context) ([]*Order, error)
	getOrder(ctx context.Context, orderID, requesterID uuid.UUID, requesterRole string) (*Order, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/checkout",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.checkoutHandler,
				"customer",
			),
		),
	)

	router.Get(
		"/orders",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getOrdersHandler,
			),
		),
	)

	router.Get(
		"/orders/{orderID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getOrderHandler,
			),
		),
	)

	// admin order lifecycle
	router.Get(
		"/admin/orders",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getAllOrdersHandler,
				"admin",
			),
		),
	)

	router.Put(
		"/admin/orders/{orderID}/complete",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.completeOrderHandler,
				"admin",
			),
		),
	)

	router.Put(
		"/admin/orders/{orderID}/cancel",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.cancelOrderHandler,
				"admin",
			),
		),
	)

	router.Delete(
		"/admin/orders/{orderID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteOrderHandler,
				"admin",
			),
		),
	)
}

func (h *handler) checkoutHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	userID := middlewares.GetEntityIDFromContextKey(ctx)

	resp, err := h.service.checkout(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCartEmpty):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrCartEmpty.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"order placed",
		resp,
	)
}

func (h *handler) getOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	userID := middlewares.GetEntityIDFromContextKey(r.Context())

	orders, err := h.service.getOrders(r.Context(), userID)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"orders retrieved",
		orders,
	)
}

func (h *handler) getOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid order id",
			nil,
		)
	}

	authCtx := middlewares.GetAuthFromContext(r.Context())

	foundOrder, err := h.service.getOrder(
		r.Context(),
		orderID,
		authCtx.UserID,
		authCtx.Role,
	)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrOrderNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrOrderNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrForbidden):
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrForbidden.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order found",
		foundOrder,
	)
}

func (h *handler) getAllOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.service.getAllOrders(r.Context())
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all orders retrieved",
		orders,
	)
}

func (h *handler) completeOrderHandler(w http.ResponseWriter, r *http.Request) error {
	return h.transitionHandler(
		w,
		r,
		h.service.completeOrder,
		StatusPaid,
		"order marked as paid",
	)
}

func (h *handler) cancelOrderHandler(w http.ResponseWriter, r *http.Request) error {
	return h.transitionHandler(
		w,
		r,
		h.service.cancelOrder,
		StatusCancelled,
		"order cancelled",
	)
}

func (h *handler) transitionHandler(
	w http.ResponseWriter,
	r *http.Request,
	transition func(ctx context.Context, orderID uuid.UUID) error,
	to Status,
	message string,
) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid order id",
			nil,
		)
	}

	if err := transition(ctx, orderID); err != nil {
		return mapTransitionError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		message,
		TransitionResponse{
			OrderID: orderID,
			Status:  to,
		},
	)
}

func (h *handler) deleteOrderHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid order id",
			nil,
		)
	}

	if err := h.service.deleteOrder(ctx, orderID); err != nil {
		return mapTransitionError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order deleted",
		nil,
	)
}

func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, servererrors.ErrOrderNotFound):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrOrderNotFound.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrOrderAlreadyPaid),
		errors.Is(err, servererrors.ErrOrderAlreadyCancelled),
		errors.Is(err, servererrors.ErrCannotCancelPaidOrder),
		errors.Is(err, servererrors.ErrCannotDeletePaidOrder):
		return servererrors.New(
			http.StatusConflict,
			err.Error(),
			nil,
		)

	default:
		return err
	}
}
