package ports

import (
	"context"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

// UserProfileInput carries the editable user profile fields. The record id is
// always the caller identity, never client-supplied.
type UserProfileInput struct {
	Name  string
	Email string
}

// UserRepository defines persistence for user profiles.
type UserRepository interface {
	// Insert creates the profile, failing with domain.ErrUserExists when a
	// profile with the same id already exists (create-if-not-exists).
	Insert(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

// UserService defines the user profile use cases. Every operation is scoped
// to the caller's own profile.
type UserService interface {
	Create(ctx context.Context, callerID string, in UserProfileInput) (*domain.User, error)
	Get(ctx context.Context, callerID, userID string) (*domain.User, error)
	List(ctx context.Context, callerID string) ([]domain.User, error)
	Update(ctx context.Context, callerID, userID string, in UserProfileInput) (*domain.User, error)
	Delete(ctx context.Context, callerID, userID string) error
}
