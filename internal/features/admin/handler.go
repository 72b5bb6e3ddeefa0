package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/drew18-it/watchbuy/internal/handlerutils"
	"github.com/drew18-it/watchbuy/internal/middlewares"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/drew18-it/watchbuy/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	getDashboardStats(ctx context.Context) (*DashboardStats, error)
	getAllUsers(ctx context.Context) ([]*ManagedUser, error)
	setUserRole(ctx context.Context, actorID uuid.UUID, update *UpdateUserRoleRequest) error
	setUserStatus(ctx context.Context, actorID uuid.UUID, update *UpdateUserStatusRequest) error
	removeUser(ctx context.Context, actorID uuid.UUID, userID uuid.UUID) error
	getOrdersPerMonth(ctx context.Context, year int) (*MonthlyCounts, error)
	getSalesPerMonth(ctx context.Context, year int) (*MonthlySeries, error)
	getCategoryDistribution(ctx context.Context) ([]*CategorySlice, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(adminService servicer, middleware middleware) *handler {
	return &handler{
		service:    adminService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/admin/dashboard-stats",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.dashboardStatsHandler,
				"admin",
			),
		),
	)

	router.Get(
		"/admin/users",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getAllUsersHandler,
				"admin",
			),
		),
	)

	router.Put(
		"/admin/users/{userID}/role",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.setUserRoleHandler,
				"admin",
			),
		),
	)

	router.Put(
		"/admin/users/{userID}/status",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.setUserStatusHandler,
				"admin",
			),
		),
	)

	router.Delete(
		"/admin/users/{userID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteUserHandler,
				"admin",
			),
		),
	)

	router.Get(
		"/admin/charts/orders-per-month",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.ordersPerMonthHandler,
				"admin",
			),
		),
	)

	router.Get(
		"/admin/charts/sales-per-month",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.salesPerMonthHandler,
				"admin",
			),
		),
	)

	router.Get(
		"/admin/charts/category-distribution",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.categoryDistributionHandler,
				"admin",
			),
		),
	)
}

func (h *handler) dashboardStatsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	stats, err := h.service.getDashboardStats(ctx)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"dashboard stats retrieved",
		stats,
	)
}

func (h *handler) getAllUsersHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	users, err := h.service.getAllUsers(ctx)
	if err != nil {
		return err
	}

	if users == nil {
		users = []*ManagedUser{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all users retrieved",
		users,
	)
}

func (h *handler) setUserRoleHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *UpdateUserRoleRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.UserID = chi.URLParam(r, "userID")

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	err := h.service.setUserRole(
		ctx,
		middlewares.GetEntityIDFromContextKey(ctx),
		payload,
	)
	if err != nil {
		return mapUserMgmtError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user role updated",
		nil,
	)
}

func (h *handler) setUserStatusHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *UpdateUserStatusRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.UserID = chi.URLParam(r, "userID")

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	err := h.service.setUserStatus(
		ctx,
		middlewares.GetEntityIDFromContextKey(ctx),
		payload,
	)
	if err != nil {
		return mapUserMgmtError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user status updated",
		nil,
	)
}

func (h *handler) deleteUserHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid user id",
			nil,
		)
	}

	err = h.service.removeUser(
		ctx,
		middlewares.GetEntityIDFromContextKey(ctx),
		userID,
	)
	if err != nil {
		return mapUserMgmtError(err)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"user deleted",
		nil,
	)
}

func (h *handler) ordersPerMonthHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	counts, err := h.service.getOrdersPerMonth(
		ctx,
		yearFromQuery(r),
	)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"orders per month retrieved",
		counts,
	)
}

func (h *handler) salesPerMonthHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	series, err := h.service.getSalesPerMonth(
		ctx,
		yearFromQuery(r),
	)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"sales per month retrieved",
		series,
	)
}

func (h *handler) categoryDistributionHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	slices, err := h.service.getCategoryDistribution(ctx)
	if err != nil {
		return err
	}

	if slices == nil {
		slices = []*CategorySlice{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category distribution retrieved",
		slices,
	)
}

func mapUserMgmtError(err error) error {
	switch {
	case errors.Is(err, servererrors.ErrUserNotFound):
		return servererrors.New(
			http.StatusNotFound,
			servererrors.ErrUserNotFound.Error(),
			nil,
		)

	case errors.Is(err, servererrors.ErrForbidden):
		return servererrors.New(
			http.StatusForbidden,
			"admins cannot modify their own account here",
			nil,
		)

	default:
		return err
	}
}

func yearFromQuery(r *http.Request) int {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 {
		return time.Now().Year()
	}

	return year
}
