package user

import (
	"context"
	"testing"
	"time"

	"github.com/drew18-it/watchbuy/internal/auth"
	"github.com/drew18-it/watchbuy/internal/features/session"
	"github.com/drew18-it/watchbuy/internal/servererrors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users map[string]*User
}

func (f *fakeUserStore) createOne(_ context.Context, newUser *User) (uuid.UUID, error) {
	if _, exists := f.users[newUser.Email]; exists {
		return uuid.Nil, servererrors.ErrEmailAlreadyTaken
	}

	newUser.UserID = uuid.New()
	f.users[newUser.Email] = newUser

	return newUser.UserID, nil
}

func (f *fakeUserStore) findByEmail(_ context.Context, email string) (*User, error) {
	found, ok := f.users[email]
	if !ok {
		return nil, servererrors.ErrUserNotFound
	}

	return found, nil
}

func (f *fakeUserStore) findByID(_ context.Context, userID uuid.UUID) (*User, error) {
	for _, u := range f.users {
		if u.UserID == userID {
			return u, nil
		}
	}

	return nil, servererrors.ErrUserNotFound
}

func (f *fakeUserStore) findStats(_ context.Context, _ uuid.UUID) (*ProfileStatsResponse, error) {
	return &ProfileStatsResponse{}, nil
}

type fakeSessionStore struct {
	sessions map[string]*session.Session
}

func (f *fakeSessionStore) Create(_ context.Context, userID uuid.UUID, refreshToken string, expiresAt time.Time) error {
	f.sessions[refreshToken] = &session.Session{
		SessionID:    uuid.New(),
		UserID:       userID,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}

	return nil
}

func (f *fakeSessionStore) FindByRefreshToken(_ context.Context, refreshToken string) (*session.Session, error) {
	found, ok := f.sessions[refreshToken]
	if !ok {
		return nil, servererrors.ErrSessionNotFound
	}

	return found, nil
}

func (f *fakeSessionStore) DeleteByRefreshToken(_ context.Context, refreshToken string) error {
	delete(f.sessions, refreshToken)
	return nil
}

func (f *fakeSessionStore) DeleteExpired(_ context.Context) error {
	return nil
}

func newTestService() (*service, *fakeUserStore, *fakeSessionStore) {
	userStore := &fakeUserStore{users: map[string]*User{}}
	sessionStore := &fakeSessionStore{sessions: map[string]*session.Session{}}
	tokens := auth.NewTokenService("access-secret", "refresh-secret", 900, 604800)

	return NewService(userStore, sessionStore, tokens), userStore, sessionStore
}

func seedUser(t *testing.T, store *fakeUserStore, email, password, status string) *User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	seeded := &User{
		UserID:   uuid.New(),
		Email:    email,
		Password: string(hashed),
		Role:     RoleCustomer,
		Status:   status,
	}
	store.users[email] = seeded

	return seeded
}

func Test_service_login(t *testing.T) {
	svc, userStore, sessionStore := newTestService()
	seeded := seedUser(t, userStore, "ada@example.com", "correct horse", StatusActive)

	loggedIn, tokens, err := svc.login(context.Background(), &LoginUserRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, seeded.UserID, loggedIn.UserID)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	// session row created for the refresh token
	require.Contains(t, sessionStore.sessions, tokens.RefreshToken)
}

func Test_service_login_wrongPassword(t *testing.T) {
	svc, userStore, _ := newTestService()
	seedUser(t, userStore, "ada@example.com", "correct horse", StatusActive)

	_, _, err := svc.login(context.Background(), &LoginUserRequest{
		Email:    "ada@example.com",
		Password: "battery staple",
	})
	require.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
}

func Test_service_login_unknownEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.login(context.Background(), &LoginUserRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, servererrors.ErrInvalidCredentials)
}

func Test_service_login_inactiveAccount(t *testing.T) {
	svc, userStore, _ := newTestService()
	seedUser(t, userStore, "ada@example.com", "correct horse", StatusInactive)

	_, _, err := svc.login(context.Background(), &LoginUserRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.ErrorIs(t, err, servererrors.ErrAccountInactive)
}

func Test_service_register_duplicateEmail(t *testing.T) {
	svc, userStore, _ := newTestService()
	seedUser(t, userStore, "ada@example.com", "correct horse", StatusActive)

	_, err := svc.register(context.Background(), &RegisterUserRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com", // emails get lowercased before lookup
		Password:  "another password",
	})
	require.ErrorIs(t, err, servererrors.ErrEmailAlreadyTaken)
}

func Test_service_renewAccessToken(t *testing.T) {
	svc, userStore, _ := newTestService()
	seedUser(t, userStore, "ada@example.com", "correct horse", StatusActive)

	_, tokens, err := svc.login(context.Background(), &LoginUserRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	accessToken, err := svc.renewAccessToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
}

func Test_service_renewAccessToken_expiredSession(t *testing.T) {
	svc, userStore, sessionStore := newTestService()
	seedUser(t, userStore, "ada@example.com", "correct horse", StatusActive)

	_, tokens, err := svc.login(context.Background(), &LoginUserRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	sessionStore.sessions[tokens.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)

	_, err = svc.renewAccessToken(context.Background(), tokens.RefreshToken)
	require.ErrorIs(t, err, servererrors.ErrSessionExpired)

	// expired session rows get purged on the failed renew
	require.NotContains(t, sessionStore.sessions, tokens.RefreshToken)
}

func Test_service_renewAccessToken_garbageToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.renewAccessToken(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, servererrors.ErrUnauthorized)
}
