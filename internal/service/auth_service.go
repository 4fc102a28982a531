package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pragyanai/demotrack/internal/auth"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/pragyanai/demotrack/internal/repository"
)

// AuthService implements signup and the two login flows against the
// users workbook.
type AuthService struct {
	userRepo  *repository.UserRepository
	adminRepo *repository.AdminRepository
	logger    *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	adminRepo *repository.AdminRepository,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		logger:    logger,
	}
}

// Signup creates a new account pending admin approval.
func (s *AuthService) Signup(ctx context.Context, req *domain.SignupRequest) error {
	taken, err := s.userRepo.Exists(ctx, req.UserName, req.PhoneLogin)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if taken {
		s.logger.Warn("signup with existing username or phone", zap.String("user_name", req.UserName))
		return fmt.Errorf("%w: username or login phone already exists", ErrConflict)
	}

	user := &domain.User{
		FullName:      req.FullName,
		College:       req.College,
		Branch:        req.Branch,
		RollNo:        req.RollNo,
		YearOfPassing: req.YearOfPassing,
		PhoneLogin:    req.PhoneLogin,
		PhoneWhatsapp: req.PhoneWhatsapp,
		UserName:      req.UserName,
		PasswordHash:  auth.HashPassword(req.Password),
		Status:        domain.StatusNotApproved,
		Role:          domain.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("new user created, pending approval", zap.String("user_name", req.UserName))
	return nil
}

// Login authenticates by username or login phone against the stored
// password digest. Outcomes are distinct so the handler can report
// "unknown user", "wrong password", and "pending approval" separately,
// as the original login screen did.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("login failed: user not found", zap.String("identifier", identifier))
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Warn("login failed: invalid password", zap.String("identifier", identifier))
		return nil, ErrInvalidCredentials
	}

	if !user.IsApproved() {
		s.logger.Warn("login failed: account not approved", zap.String("identifier", identifier))
		return nil, ErrNotApproved
	}

	s.logger.Info("successful login", zap.String("user_name", user.UserName))
	return user, nil
}

// AdminLogin authenticates against the Admin worksheet.
func (s *AuthService) AdminLogin(ctx context.Context, userName, password string) (*domain.Admin, error) {
	admin, err := s.adminRepo.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("admin login failed", zap.String("user_name", userName))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if !auth.CheckAdminPassword(admin.Password, password) {
		s.logger.Warn("admin login failed", zap.String("user_name", userName))
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("successful admin login", zap.String("user_name", userName))
	return admin, nil
}

// Profile returns the current sheet row for a username.
func (s *AuthService) Profile(ctx context.Context, userName string) (*domain.User, error) {
	user, err := s.userRepo.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
