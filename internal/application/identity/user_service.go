package identity

import (
	"context"
	"errors"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/identity"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles admin user management
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	// revokeTTL bounds how long a deleted user's outstanding tokens stay rejected
	revokeTTL time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, blacklist auth.TokenBlacklist, revokeTTL time.Duration, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{userRepo: userRepo, blacklist: blacklist, revokeTTL: revokeTTL, logger: logger}
}

// List returns every user ordered by username
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, nil
}

// Delete removes a user. Admins cannot delete their own account.
func (s *UserService) Delete(ctx context.Context, actor *Actor, id int64) error {
	if actor != nil && actor.UserID == id {
		return shared.InvalidInput("You cannot delete your own account")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("User")
		}
		return err
	}

	if s.blacklist != nil {
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, id, s.revokeTTL); err != nil {
			s.logger.Error("Failed to revoke tokens of deleted user", zap.Int64("user_id", id), zap.Error(err))
		}
	}

	s.logger.Info("User deleted", zap.Int64("user_id", id))
	return nil
}
