package middlewares

import (
	"context"
	"net/http"

	"github.com/drew18-it/watchbuy/internal/auth"
	"github.com/drew18-it/watchbuy/internal/handlerutils"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
)

type tokenValidator interface {
	ValidateAccessToken(tokenStr string) (isValid bool, claims *auth.TokenClaims, err error)
}

type middleware struct {
	jwtManager tokenValidator
}

func NewMiddleware(jwtManager tokenValidator) *middleware {
	return &middleware{
		jwtManager: jwtManager,
	}
}

type contextKey struct{}

var EntityKey contextKey = contextKey{}

// AuthContext is the request-scoped identity injected by
// [middleware.AuthWithContext]. Handlers and services read it instead of
// any ambient session state.
type AuthContext struct {
	UserID uuid.UUID
	Role   string
}

// AuthWithContext validates the access token cookie, checks the actor's
// role against authEntityTypes (any match passes; empty means any
// authenticated actor) and injects an [AuthContext] into the request
// context.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler, authEntityTypes ...string) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		accessToken, err := r.Cookie("accessToken")
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrNoAccessTokenCookie.Error(),
				nil,
			)
		}

		isValid, claims, err := mw.jwtManager.ValidateAccessToken(accessToken.Value)
		if err != nil {
			return err
		}

		if !isValid {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		if len(authEntityTypes) > 0 {
			allowed := false
			for _, entityType := range authEntityTypes {
				if claims.EntityType == entityType {
					allowed = true
					break
				}
			}

			if !allowed {
				return servererrors.New(
					http.StatusForbidden,
					servererrors.ErrUnauthorizedAccess.Error(),
					nil,
				)
			}
		}

		entityID, err := uuid.Parse(claims.EntityID)
		if err != nil {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		ctx := r.Context()
		ctx = context.WithValue(
			ctx,
			EntityKey,
			&AuthContext{
				UserID: entityID,
				Role:   claims.EntityType,
			},
		)
		r = r.WithContext(ctx)

		return h(w, r)
	}
}

func GetAuthFromContext(ctx context.Context) *AuthContext {
	authCtx, ok := ctx.Value(EntityKey).(*AuthContext)
	if !ok {
		return &AuthContext{}
	}

	return authCtx
}

func GetEntityIDFromContextKey(ctx context.Context) uuid.UUID {
	return GetAuthFromContext(ctx).UserID
}
