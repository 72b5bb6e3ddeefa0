package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is one refresh token grant. A user can hold several at a
// time, one per signed-in device.
type Session struct {
	SessionID    uuid.UUID `json:"session_id"`
	UserID       uuid.UUID `json:"user_id"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
