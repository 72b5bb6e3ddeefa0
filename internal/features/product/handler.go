package product

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/drew18-it/watchbuy/internal/handlerutils"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/drew18-it/watchbuy/internal/validate"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type servicer interface {
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (uuid.UUID, error)
	updateProduct(ctx context.Context, update *UpdateProductRequest) error
	deleteProduct(ctx context.Context, productID uuid.UUID) error
	getAllProducts(ctx context.Context) ([]*Product, error)
	getProduct(ctx context.Context, productID uuid.UUID) (*Product, error)
	searchProducts(ctx context.Context, queryItems *SearchRequestQuery) (*SearchResponse, error)
	getSuggestions(ctx context.Context, prefix string) ([]*Suggestion, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(productService servicer, middleware middleware) *handler {
	return &handler{
		service:    productService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.getAllProductsHandler,
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.getProductHandler,
		),
	)

	router.Get(
		"/search",
		handlerutils.MakeHandler(
			h.searchHandler,
		),
	)

	router.Get(
		"/search/suggestions",
		handlerutils.MakeHandler(
			h.suggestionsHandler,
		),
	)

	// protected routes
	router.Post(
		"/products",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createProductHandler,
				"admin",
			),
		),
	)

	router.Put(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateProductHandler,
				"admin",
			),
		),
	)

	router.Delete(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteProductHandler,
				"admin",
			),
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateProductRequest
	var err error
	defer r.Body.Close()

	if err = handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err = validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	productID, err := h.service.createProduct(
		ctx,
		payload,
	)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrProductAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"product created",
		map[string]any{"product_id": productID},
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productIDStr := chi.URLParam(r, "productID")
	if _, err := uuid.Parse(productIDStr); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	var payload *UpdateProductRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload.ProductID = productIDStr

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	if err := h.service.updateProduct(ctx, payload); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product updated",
		nil,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
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

	if err := h.service.deleteProduct(ctx, productID); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrProductReferenced):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrProductReferenced.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product deleted",
		nil,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	products, err := h.service.getAllProducts(ctx)
	if err != nil {
		return err
	}

	if products == nil {
		products = []*Product{}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		products,
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			"invalid product id",
			nil,
		)
	}

	product, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

func (h *handler) searchHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	queries := r.URL.Query()

	if !hasSearchCriteria(queries) {
		handlerutils.WriteErrorJSON(
			w,
			http.StatusOK,
			"search query or filters required",
			nil,
		)
		return nil
	}

	queryItems := getQueryItems(queries)

	if err := validate.StructFields(queryItems); err != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrURLQueryParams.Error(),
			err,
		)
	}

	result, err := h.service.searchProducts(ctx, queryItems)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"search results retrieved",
		result,
	)
}

func (h *handler) suggestionsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	suggestions, err := h.service.getSuggestions(
		ctx,
		r.URL.Query().Get("q"),
	)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"suggestions retrieved",
		suggestions,
	)
}

func hasSearchCriteria(queriesParams url.Values) bool {
	for _, key := range []string{"q", "category", "minPrice", "maxPrice"} {
		if strings.TrimSpace(queriesParams.Get(key)) != "" {
			return true
		}
	}

	return false
}

func getQueryItems(queriesParams url.Values) *SearchRequestQuery {
	query := new(SearchRequestQuery)

	query.FilterOpts.Search = strings.TrimSpace(queriesParams.Get("q"))
	query.FilterOpts.Category = strings.TrimSpace(queriesParams.Get("category"))

	query.SortOpts.SortBy = "created_at"
	query.SortOpts.SortOpt = "desc"

	if sortBy := strings.TrimSpace(queriesParams.Get("sortBy")); sortBy != "" {
		query.SortOpts.SortBy = sortBy
	}

	if sortOrder := strings.TrimSpace(queriesParams.Get("sortOrder")); sortOrder != "" {
		query.SortOpts.SortOpt = sortOrder
	}

	query.PageOpts.Page = stringToUint64(
		1,
		queriesParams.Get("page"),
	)

	query.PageOpts.Limit = stringToUint64(
		20,
		queriesParams.Get("limit"),
	)

	query.FilterOpts.PriceMin = stringToFloat64(
		0.00,
		queriesParams.Get("minPrice"),
	)

	query.FilterOpts.PriceMax = stringToFloat64(
		0.00,
		queriesParams.Get("maxPrice"),
	)

	return query
}

func stringToUint64(defaultValue uint64, field string) uint64 {
	num, err := strconv.ParseUint(field, 10, 0)
	if err != nil {
		return defaultValue
	}

	return num
}

func stringToFloat64(defaultValue float64, field string) float64 {
	num, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return defaultValue
	}

	return num
}
