package user

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/drew18-it/watchbuy/internal/auth"
	"github.com/drew18-it/watchbuy/internal/features/session"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Storer interface {
	createOne(ctx context.Context, newUser *User) (uuid.UUID, error)
	findByEmail(ctx context.Context, email string) (*User, error)
	findByID(ctx context.Context, userID uuid.UUID) (*User, error)
	findStats(ctx context.Context, userID uuid.UUID) (*ProfileStatsResponse, error)
}

type sessionStorer interface {
	Create(ctx context.Context, userID uuid.UUID, refreshToken string, expiresAt time.Time) error
	FindByRefreshToken(ctx context.Context, refreshToken string) (*session.Session, error)
	DeleteByRefreshToken(ctx context.Context, refreshToken string) error
	DeleteExpired(ctx context.Context) error
}

type tokener interface {
	GenerateAccessToken(entityID uuid.UUID, entityType string) (string, error)
	GenerateRefreshToken(entityID uuid.UUID, entityType string) (string, error)
	ValidateRefreshToken(tokenStr string) (bool, *auth.TokenClaims, error)
	RefreshTokenExpiry() time.Duration
}

// authTokens is what login hands back for the handler to set as cookies.
type authTokens struct {
	AccessToken  string
	RefreshToken string
}

type service struct {
	store    Storer
	sessions sessionStorer
	tokens   tokener
}

func NewService(store Storer, sessions sessionStorer, tokens tokener) *service {
	return &service{
		store:    store,
		sessions: sessions,
		tokens:   tokens,
	}
}

func (s *service) register(ctx context.Context, newUser *RegisterUserRequest) (uuid.UUID, error) {
	hashed, err := bcrypt.GenerateFromPassword(
		[]byte(newUser.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return uuid.Nil, err
	}

	return s.store.createOne(ctx, &User{
		FirstName: strings.TrimSpace(newUser.FirstName),
		LastName:  strings.TrimSpace(newUser.LastName),
		Email:     strings.ToLower(strings.TrimSpace(newUser.Email)),
		Password:  string(hashed),
	})
}

func (s *service) login(ctx context.Context, creds *LoginUserRequest) (*User, *authTokens, error) {
	foundUser, err := s.store.findByEmail(
		ctx,
		strings.ToLower(strings.TrimSpace(creds.Email)),
	)
	if err != nil {
		if errors.Is(err, servererrors.ErrUserNotFound) {
			return nil, nil, servererrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(foundUser.Password),
		[]byte(creds.Password),
	)
	if err != nil {
		return nil, nil, servererrors.ErrInvalidCredentials
	}

	if foundUser.Status != StatusActive {
		return nil, nil, servererrors.ErrAccountInactive
	}

	accessToken, err := s.tokens.GenerateAccessToken(
		foundUser.UserID,
		foundUser.Role,
	)
	if err != nil {
		return nil, nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(
		foundUser.UserID,
		foundUser.Role,
	)
	if err != nil {
		return nil, nil, err
	}

	err = s.sessions.Create(
		ctx,
		foundUser.UserID,
		refreshToken,
		time.Now().Add(s.tokens.RefreshTokenExpiry()),
	)
	if err != nil {
		return nil, nil, err
	}

	// housekeeping, never blocks a login
	if err := s.sessions.DeleteExpired(ctx); err != nil {
		log.Printf("failed to delete expired sessions: %v", err)
	}

	return foundUser, &authTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *service) logout(ctx context.Context, refreshToken string) error {
	return s.sessions.DeleteByRefreshToken(ctx, refreshToken)
}

// renewAccessToken rotates the short lived access token off a still
// valid refresh token with a live session row behind it.
func (s *service) renewAccessToken(ctx context.Context, refreshToken string) (string, error) {
	isValid, claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	if !isValid {
		return "", servererrors.ErrUnauthorized
	}

	foundSession, err := s.sessions.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	if time.Now().After(foundSession.ExpiresAt) {
		if err := s.sessions.DeleteByRefreshToken(ctx, refreshToken); err != nil {
			log.Printf("failed to delete expired session: %v", err)
		}
		return "", servererrors.ErrSessionExpired
	}

	entityID, err := uuid.Parse(claims.EntityID)
	if err != nil {
		return "", err
	}

	return s.tokens.GenerateAccessToken(entityID, claims.EntityType)
}

func (s *service) getProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.store.findByID(ctx, userID)
}

func (s *service) getStats(ctx context.Context, userID uuid.UUID) (*ProfileStatsResponse, error) {
	return s.store.findStats(ctx, userID)
}
