package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/SGP-2025/attendance-service/internal/models"
)

// ErrNotFound marks a session ID with no live record behind it (never
// created, expired, or logged out).
var ErrNotFound = errors.New("session not found")

// Session is the process-side record of one authenticated browser session.
// It is created by a successful credential verification and destroyed by
// logout or expiry; no durability beyond the backing store's lifetime is
// promised.
type Session struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	Role        models.UserRole `json:"role"`
	DisplayName string          `json:"display_name"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// New builds a session for a verified user with a fresh random ID.
func New(user *models.User, ttl time.Duration) Session {
	now := time.Now()
	return Session{
		ID:          uuid.NewString(),
		Username:    user.Username,
		Role:        user.Role,
		DisplayName: user.DisplayName,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// Store persists sessions keyed by ID. Get never returns an expired session.
type Store interface {
	Save(ctx context.Context, sess Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
