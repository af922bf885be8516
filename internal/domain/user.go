package domain

import (
	"context"
	"time"
)

// User is an application profile synchronized from the identity provider.
// ClerkID is the provider-issued stable identifier; at most one User exists
// per ClerkID. Name and ImageURL are optional and empty when absent.
type User struct {
	ID        int64
	ClerkID   string
	Email     string
	Name      string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepository defines persistence operations for users.
// Upsert semantics (lookup by ClerkID, then insert or overwrite) are
// composed in the service layer from these primitives.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByClerkID(ctx context.Context, clerkID string) (*User, error)
	// Update overwrites email, name, image_url and updated_at for the row
	// matching user.ClerkID. CreatedAt is never touched.
	Update(ctx context.Context, user *User) error
	// DeleteByClerkID removes the row if present. It reports whether a row
	// was deleted; deleting a missing user is not an error.
	DeleteByClerkID(ctx context.Context, clerkID string) (bool, error)
}
