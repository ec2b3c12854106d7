package models

import "time"

// Roles a user account can hold.
const (
	RoleClient   = "CLIENT"
	RoleProvider = "PROVIDER"
	RoleAdmin    = "ADMIN"
)

// IsValidRole reports whether role is one of the registerable roles.
// ADMIN accounts are provisioned out of band, never via registration.
func IsValidRole(role string) bool {
	return role == RoleClient || role == RoleProvider
}

// User is an account in the marketplace.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// AuthUser is the acting identity attached to a request after authentication.
type AuthUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
