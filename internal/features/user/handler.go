package user

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
	register(ctx context.Context, newUser *RegisterUserRequest) (uuid.UUID, error)
	login(ctx context.Context, creds *LoginUserRequest) (*User, *authTokens, error)
	logout(ctx context.Context, refreshToken string) error
	renewAccessToken(ctx context.Context, refreshToken string) (string, error)
	getProfile(ctx context.Context, userID uuid.UUID) (*User, error)
	getStats(ctx context.Context, userID uuid.UUID) (*ProfileStatsResponse, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler
}

type tokenExpirer interface {
	AccessTokenExpiry() time.Duration
	RefreshTokenExpiry() time.Duration
}

type handler struct {
	service    servicer
	middleware middleware
	expiries   tokenExpirer
}

func NewHandler(userService servicer, middleware middleware, expiries tokenExpirer) *handler {
	return &handler{
		service:    userService,
		middleware: middleware,
		expiries:   expiries,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/users/register",
		handlerutils.MakeHandler(
			h.registerHandler,
		),
	)

	router.Post(
		"/users/login",
		handlerutils.MakeHandler(
			h.loginHandler,
		),
	)

	router.Post(
		"/users/renew",
		handlerutils.MakeHandler(
			h.renewHandler,
		),
	)

	// protected routes
	router.Post(
		"/users/logout",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.logoutHandler,
			),
		),
	)

	router.Get(
		"/users/me",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.profileHandler,
			),
		),
	)

	router.Get(
		"/users/me/stats",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.profileStatsHandler,
			),
		),
	)
}

func (h *handler) registerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *RegisterUserRequest
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

	userID, err := h.service.register(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrEmailAlreadyTaken):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrEmailAlreadyTaken.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"user registered",
		map[string]any{"user_id": userID},
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *LoginUserRequest
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

	loggedInUser, tokens, err := h.service.login(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidCredentials):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrAccountInactive):
			return servererrors.New(
				http.StatusForbidden,
				servererrors.ErrAccountInactive.Error(),
				nil,
			)

		default:
			return err
		}
	}

	h.setAuthCookie(w, "accessToken", tokens.AccessToken, h.expiries.AccessTokenExpiry())
	h.setAuthCookie(w, "refreshToken", tokens.RefreshToken, h.expiries.RefreshTokenExpiry())

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"logged in",
		loggedInUser,
	)
}

func (h *handler) logoutHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	refreshToken, err := r.Cookie("refreshToken")
	if err == nil {
		if err := h.service.logout(ctx, refreshToken.Value); err != nil {
			return err
		}
	}

	h.clearAuthCookie(w, "accessToken")
	h.clearAuthCookie(w, "refreshToken")

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"logged out",
		nil,
	)
}

func (h *handler) renewHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	refreshToken, err := r.Cookie("refreshToken")
	if err != nil {
		return servererrors.New(
			http.StatusUnauthorized,
			servererrors.ErrUnauthorized.Error(),
			nil,
		)
	}

	accessToken, err := h.service.renewAccessToken(ctx, refreshToken.Value)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUnauthorized),
			errors.Is(err, servererrors.ErrSessionNotFound),
			errors.Is(err, servererrors.ErrSessionExpired):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)

		default:
			return err
		}
	}

	h.setAuthCookie(w, "accessToken", accessToken, h.expiries.AccessTokenExpiry())

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"access token renewed",
		nil,
	)
}

func (h *handler) profileHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	profile, err := h.service.getProfile(
		ctx,
		middlewares.GetEntityIDFromContextKey(ctx),
	)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"profile retrieved",
		profile,
	)
}

func (h *handler) profileStatsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	stats, err := h.service.getStats(
		ctx,
		middlewares.GetEntityIDFromContextKey(ctx),
	)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"profile stats retrieved",
		stats,
	)
}

func (h *handler) setAuthCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *handler) clearAuthCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
