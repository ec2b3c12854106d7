package userRepo

import (
	"context"
	"errors"

	"jenga/models"
)

// ErrDuplicateEmail signals that an account already exists for the email.
var ErrDuplicateEmail = errors.New("an account with that email already exists")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns (nil, nil) when the
	// document does not exist.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns (nil, nil)
	// when no account exists for the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record. Fails with ErrDuplicateEmail when the
	// email is taken.
	Create(ctx context.Context, user *models.User) error
	// UpdateName changes the user's display name.
	UpdateName(ctx context.Context, id, name string) error
	// List retrieves users, newest first, cursor-paginated. Admin-only at the
	// service layer.
	List(ctx context.Context, page models.PageOptions) ([]models.User, bool, error)
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes(ctx context.Context) error
}
