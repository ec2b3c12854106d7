package user

import (
	"context"

	"jenga/models"
)

// AuthResult bundles a signed token with the account it authenticates.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService owns accounts and authentication.
type UserService interface {
	// Register creates a CLIENT or PROVIDER account and signs a token for it.
	Register(ctx context.Context, email, password, name, role string) (*AuthResult, error)
	// Login verifies credentials and signs a token.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// GetByID returns the account.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdateName changes the account's display name. Self-or-admin only,
	// enforced by the calling layer.
	UpdateName(ctx context.Context, id, name string) (*models.User, error)
	// List returns accounts, newest first. Admin-only, enforced by the
	// calling layer.
	List(ctx context.Context, page models.PageOptions) ([]models.User, models.Pagination, error)
}
