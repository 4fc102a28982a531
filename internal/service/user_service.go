package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/repository"
)

// UserService implements the admin's account-management operations.
type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Pending returns accounts awaiting approval.
func (s *UserService) Pending(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	pending := users[:0:0]
	for _, u := range users {
		if !u.IsApproved() {
			pending = append(pending, u)
		}
	}
	return pending, nil
}

// Approved returns all approved accounts.
func (s *UserService) Approved(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	approved := users[:0:0]
	for _, u := range users {
		if u.IsApproved() {
			approved = append(approved, u)
		}
	}
	return approved, nil
}

// Leads returns all accounts with the Lead role.
func (s *UserService) Leads(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	leads := users[:0:0]
	for _, u := range users {
		if u.Role == domain.RoleLead {
			leads = append(leads, u)
		}
	}
	return leads, nil
}

// Approve flips the status cell for each named account. Unknown names are
// skipped and reported back rather than failing the batch.
func (s *UserService) Approve(ctx context.Context, userNames []string) (approved, skipped []string, err error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list users: %w", err)
	}

	byName := make(map[string]domain.User, len(users))
	for _, u := range users {
		byName[u.UserName] = u
	}

	for _, name := range userNames {
		u, ok := byName[name]
		if !ok {
			skipped = append(skipped, name)
			continue
		}
		if err := s.userRepo.SetStatus(ctx, u.Row, domain.StatusApproved); err != nil {
			return approved, skipped, fmt.Errorf("failed to approve %q: %w", name, err)
		}
		approved = append(approved, name)
	}

	s.logger.Info("approved users",
		zap.Strings("approved", approved),
		zap.Strings("skipped", skipped),
	)
	return approved, skipped, nil
}

// Promote raises an approved student to the Lead role.
func (s *UserService) Promote(ctx context.Context, userName string) error {
	user, err := s.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsApproved() {
		return fmt.Errorf("%w: only approved students can be promoted", ErrPermissionDenied)
	}
	if user.Role == domain.RoleLead {
		return fmt.Errorf("%w: user is already a lead", ErrConflict)
	}

	if err := s.userRepo.SetRole(ctx, user.Row, domain.RoleLead); err != nil {
		return fmt.Errorf("failed to promote %q: %w", userName, err)
	}
	s.logger.Info("promoted user to lead", zap.String("user_name", userName))
	return nil
}
