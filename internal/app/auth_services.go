package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// TokenTypeBearer is the token_type reported with issued tokens
const TokenTypeBearer = "bearer"

// authService implements the AuthService interface
type authService struct {
	userRepo users.UserRepository
	tokens   users.TokenManager
	hasher   users.PasswordHasher
	logger   logger.Logger
	now      func() time.Time
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo users.UserRepository, tokens users.TokenManager, hasher users.PasswordHasher, logger logger.Logger) (users.AuthService, error) {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*users.TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, users.ErrInvalidCredentials
		}
		return nil, err
	}

	match, needsRehash := s.hasher.Verify(user.PasswordHash, password)
	if !match {
		s.logger.Warn("Failed login attempt for user ", username)
		return nil, users.ErrInvalidCredentials
	}

	if needsRehash {
		if hash, err := s.hasher.Hash(password); err == nil {
			user.PasswordHash = hash
			s.logger.Info("Upgraded password hash of user ", username)
		} else {
			s.logger.Warn("Failed to upgrade password hash of user ", username, ": ", err)
		}
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	loginAt := s.now().UTC()
	user.LastLogin = &loginAt
	user.RefreshToken = pair.RefreshToken
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	s.logger.Info("User logged in: ", username)
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*users.TokenPair, error) {
	identity, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, users.ErrInvalidToken
		}
		return nil, err
	}

	// only the most recently issued refresh token is accepted
	if user.RefreshToken == "" || subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		s.logger.Warn("Rejected stale refresh token of user ", user.Username)
		return nil, users.ErrInvalidToken
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = pair.RefreshToken
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return pair, nil
}

func (s *authService) Authenticate(_ context.Context, accessToken string) (*users.Identity, error) {
	return s.tokens.ValidateAccessToken(accessToken)
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if err := validators.Var(newPassword, "required,min=4,max=72"); err != nil {
		return fmt.Errorf("invalid new password: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if match, _ := s.hasher.Verify(user.PasswordHash, oldPassword); !match {
		return users.ErrInvalidOldPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info("Password changed for user ", user.Username)
	return nil
}

func (s *authService) CreateUser(ctx context.Context, req *users.CreateUserRequest) (*users.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	admins, err := s.userRepo.CountByRole(ctx, users.RoleAdmin)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	_, err = s.CreateUser(ctx, &users.CreateUserRequest{
		Username: users.DefaultAdminUsername,
		Email:    users.DefaultAdminEmail,
		Password: password,
		Role:     users.RoleAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create default admin: %w", err)
	}

	s.logger.Info("Created default admin user ", users.DefaultAdminUsername)
	return true, nil
}

func (s *authService) issue(user *users.User) (*users.TokenPair, error) {
	identity := user.Identity()

	access, err := s.tokens.GenerateAccessToken(identity)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(identity)
	if err != nil {
		return nil, err
	}

	return &users.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    int64(s.tokens.AccessTokenTTL().Seconds()),
	}, nil
}
