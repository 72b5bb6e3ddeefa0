package category

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/drew18-it/watchbuy/internal/handlerutils"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/drew18-it/watchbuy/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (uuid.UUID, error)
	updateCategory(ctx context.Context, update *UpdateCategoryRequest) error
	deleteCategory(ctx context.Context, categoryID uuid.UUID) error
	getAllCategories(ctx context.Context) ([]*Category, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(categoryService servicer, middleware middleware) *handler {
	return &handler{
		service:    categoryService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/categories",
		handlerutils.MakeHandler(
			h.getAllCategoriesHandler,
		),
	)

	// protected routes
	router.Post(
		"/categories",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createCategoryHandler,
				"admin",
			),
		),
	)

	router.Put(
		"/categories/{categoryID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateCategoryHandler,
				"admin",
			),
		),
	)

	router.Delete(
		"/categories/{categoryID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteCategoryHandler,
				"admin",
			),
		),
	)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	categories, err := h.service.getAllCategories(ctx)
	if err != nil {
		return err
	}

	if categories == nil {
		categories = []*Category{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all categories retrieved",
		categories,
	)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateCategoryRequest
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

	categoryID, err := h.service.createCategory(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCategoryAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrCategoryAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"category created",
		map[string]any{"category_id": categoryID},
	)
}

func (h *handler) updateCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	categoryIDStr := chi.URLParam(r, "categoryID")
	if _, err := uuid.Parse(categoryIDStr); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid category id",
			nil,
		)
	}

	var payload *UpdateCategoryRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.CategoryID = categoryIDStr

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	if err := h.service.updateCategory(ctx, payload); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCategoryNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrCategoryAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrCategoryAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category updated",
		nil,
	)
}

func (h *handler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid category id",
			nil,
		)
	}

	if err := h.service.deleteCategory(ctx, categoryID); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCategoryNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"category deleted",
		nil,
	)
}
