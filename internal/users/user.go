// Package users persists registered accounts and their profile details.
package users

import (
	"context"
	"errors"
	"time"

	"github.com/rzbill/flake/pkg/id"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("users: not found")
	// ErrUsernameTaken is returned by Create when the username is already
	// registered.
	ErrUsernameTaken = errors.New("users: username taken")
)

// User is an account record. PasswordHash and PasswordSalt never leave the
// service layer.
type User struct {
	ID           id.ID     `json:"id"`
	Username     string    `json:"username"`
	Fullname     string    `json:"fullname"`
	PasswordHash string    `json:"passwordHash"`
	PasswordSalt string    `json:"passwordSalt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Info holds profile details keyed by the owning user's ID.
type Info struct {
	UserID  id.ID  `json:"userId"`
	Age     int32  `json:"age"`
	Address string `json:"address"`
}

// Store persists users. It does not check ID uniqueness; IDs come from the
// generator.
type Store interface {
	Exists(ctx context.Context, username string) (bool, error)
	// Create stores u and info atomically.
	Create(ctx context.Context, u User, info Info) error
	Get(ctx context.Context, userID id.ID) (User, Info, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Ping(ctx context.Context) error
	Close() error
}
