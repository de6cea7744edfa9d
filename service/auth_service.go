package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tournament/models"
	"tournament/validation"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type AuthService struct {
	admins    AdminRepository
	validator *validation.Validator
	logger    *log.Logger
	cost      int
}

func NewAuthService(admins AdminRepository, validator *validation.Validator, logger *log.Logger) *AuthService {
	return &AuthService{
		admins:    admins,
		validator: validator,
		logger:    logger.WithPrefix("auth"),
		cost:      bcrypt.DefaultCost,
	}
}

// Login checks the credentials. Unknown users and wrong passwords both
// return models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *validation.Login) (*models.Admin, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, models.ErrAdminNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		s.logger.Warn("failed login", "username", req.Username)
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login", "username", req.Username)
		return nil, models.ErrInvalidCredentials
	}

	s.logger.Info("admin logged in", "username", admin.Username)
	return admin, nil
}

// Me returns the admin behind a session, or ErrUnauthorized if it no longer
// exists.
func (s *AuthService) Me(ctx context.Context, session *models.Session) (*models.Admin, error) {
	if session == nil {
		return nil, models.ErrUnauthorized
	}
	admin, err := s.admins.GetByID(ctx, session.AdminID)
	if err != nil {
		if errors.Is(err, models.ErrAdminNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}
	return admin, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, req *validation.PasswordChange) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, models.ErrAdminNotFound) {
			return models.ErrUnauthorized
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return models.NewValidationError("currentPassword", "Current password is incorrect")
	}

	hash, err := s.hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.admins.UpdatePassword(ctx, adminID, hash); err != nil {
		return err
	}

	s.logger.Info("admin password changed", "username", admin.Username)
	return nil
}

// CreateAdmin hashes password and stores a new admin account.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > 50 {
		return nil, models.NewValidationError("username", "Username must be between 1 and 50 characters")
	}
	if len(password) < 8 || len(password) > 72 {
		return nil, models.NewValidationError("password", "Password must be between 8 and 72 characters")
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	admin, err := s.admins.Create(ctx, username, hash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin created", "username", admin.Username)
	return admin, nil
}

// EnsureInitialAdmin creates the configured admin when no admin exists yet.
// It reports whether an admin was created.
func (s *AuthService) EnsureInitialAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if username == "" || password == "" {
		s.logger.Warn("no admin account exists; create one with `tournament admin create`")
		return false, nil
	}

	if _, err := s.CreateAdmin(ctx, username, password); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
