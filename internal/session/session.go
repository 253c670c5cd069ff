package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"lunashop/internal/models"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Session is the per-browser state referenced by the session cookie: the
// authenticated user (if any) and the shopping cart. It is destroyed on
// logout, which also discards the cart.
type Session struct {
	ID       string      `json:"id"`
	UserID   string      `json:"user_id,omitempty"`
	Username string      `json:"username,omitempty"`
	IsAdmin  bool        `json:"is_admin,omitempty"`
	Cart     models.Cart `json:"cart,omitempty"`
}

// New creates an empty session with a fresh id.
func New() *Session {
	return &Session{ID: uuid.New().String()}
}

// Authenticated reports whether a user is logged in on this session.
func (s *Session) Authenticated() bool {
	return s.UserID != ""
}

// Store persists sessions keyed by session id. A missing id yields
// ErrNotFound; concurrent writes to the same session are last-write-wins.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
