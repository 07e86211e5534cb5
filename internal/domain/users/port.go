package users

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when no user matches the username/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Repository port (interface for persistence)
type Repository interface {
	GetByCredentials(ctx context.Context, username, password string) (*User, error)
}
