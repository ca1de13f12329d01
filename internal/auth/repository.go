package auth

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	// FindByLogin matches either the email or the username.
	FindByLogin(ctx context.Context, login string) (*User, error)
}
