package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

// UserService implements the profile use cases. A profile's id is always the
// caller identity, so every operation on a foreign id collapses to not-found.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create registers the caller's profile, create-if-not-exists. A second
// create for the same identity fails with domain.ErrUserExists.
func (s *UserService) Create(ctx context.Context, callerID string, in ports.UserProfileInput) (*domain.User, error) {
	user := &domain.User{
		ID:        callerID,
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", callerID).Msg("user profile created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, callerID, userID string) (*domain.User, error) {
	if userID != callerID {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, userID)
}

// List returns the caller's own profile as a single-element collection, or an
// empty one when no profile exists yet.
func (s *UserService) List(ctx context.Context, callerID string) ([]domain.User, error) {
	user, err := s.repo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return []domain.User{}, nil
		}
		return nil, err
	}
	return []domain.User{*user}, nil
}

func (s *UserService) Update(ctx context.Context, callerID, userID string, in ports.UserProfileInput) (*domain.User, error) {
	if userID != callerID {
		return nil, domain.ErrUserNotFound
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, callerID, userID string) error {
	if userID != callerID {
		return domain.ErrUserNotFound
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("user profile deleted")
	return nil
}
