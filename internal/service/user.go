// Package service contains the application logic between handlers and
// repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmoren/saasbase/internal/domain"
)

// UserService implements the user synchronization operations. The
// authenticated entry points take the clerk ID resolved from a verified
// session; the webhook entry points take it as explicit input, trust having
// been established by signature verification at the HTTP boundary. The two
// are kept as separate methods rather than one method with a trust flag.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetCurrentUser returns the profile for the session's clerk ID, or
// domain.ErrNotFound if the user has not been synchronized yet.
func (s *UserService) GetCurrentUser(ctx context.Context, clerkID string) (*domain.User, error) {
	if clerkID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.GetByClerkID(ctx, clerkID)
}

// UpsertUser creates or overwrites the profile for the session's clerk ID
// and returns its ID. The clerk ID always comes from the verified session,
// never from caller input. Calling twice with the same arguments is
// idempotent with respect to final state; UpdatedAt still advances.
func (s *UserService) UpsertUser(ctx context.Context, clerkID, email, name, imageURL string) (int64, error) {
	if clerkID == "" {
		return 0, domain.ErrUnauthenticated
	}
	return s.upsert(ctx, clerkID, email, name, imageURL)
}

// UpdateCurrentUser patches only the provided fields on an existing
// profile. Email is not updatable through this path. Returns
// domain.ErrNotFound when no profile exists for the session.
func (s *UserService) UpdateCurrentUser(ctx context.Context, clerkID string, name, imageURL *string) (int64, error) {
	if clerkID == "" {
		return 0, domain.ErrUnauthenticated
	}

	user, err := s.users.GetByClerkID(ctx, clerkID)
	if err != nil {
		return 0, err
	}

	if name != nil {
		user.Name = *name
	}
	if imageURL != nil {
		user.ImageURL = *imageURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	return user.ID, nil
}

// UpsertUserFromWebhook creates or overwrites the profile for an explicit
// clerk ID. Callers must have verified the event signature first.
func (s *UserService) UpsertUserFromWebhook(ctx context.Context, clerkID, email, name, imageURL string) (int64, error) {
	if clerkID == "" {
		return 0, fmt.Errorf("%w: clerk id is required", domain.ErrInvalidInput)
	}
	return s.upsert(ctx, clerkID, email, name, imageURL)
}

// DeleteByClerkID removes the profile for the given clerk ID. It reports
// whether a profile was deleted; a missing profile is a no-op, not an error.
func (s *UserService) DeleteByClerkID(ctx context.Context, clerkID string) (bool, error) {
	if clerkID == "" {
		return false, fmt.Errorf("%w: clerk id is required", domain.ErrInvalidInput)
	}
	return s.users.DeleteByClerkID(ctx, clerkID)
}

// upsert looks up by clerk ID and either overwrites the whole mutable field
// set or inserts a fresh row. When a client-triggered and a webhook-triggered
// upsert race on the same clerk ID, whichever write lands last wins entirely;
// there is no field-level merge.
func (s *UserService) upsert(ctx context.Context, clerkID, email, name, imageURL string) (int64, error) {
	if email == "" {
		return 0, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	existing, err := s.users.GetByClerkID(ctx, clerkID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("get user: %w", err)
	}

	if existing != nil {
		existing.Email = email
		existing.Name = name
		existing.ImageURL = imageURL
		if err := s.users.Update(ctx, existing); err != nil {
			return 0, fmt.Errorf("update user: %w", err)
		}
		return existing.ID, nil
	}

	user := &domain.User{
		ClerkID:  clerkID,
		Email:    email,
		Name:     name,
		ImageURL: imageURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}
