package users

import (
	"context"
	"time"
)

// AuthService defines authentication and account operations
type AuthService interface {
	// Login verifies the credentials and issues a token pair.
	Login(ctx context.Context, username, password string) (*TokenPair, error)

	// Refresh exchanges a stored refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Authenticate validates an access token.
	Authenticate(ctx context.Context, accessToken string) (*Identity, error)

	// ChangePassword replaces the password after checking the current one.
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error

	// CreateUser registers a new account.
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)

	// EnsureAdmin creates the default administrator when no admin exists.
	EnsureAdmin(ctx context.Context, password string) (created bool, err error)
}

// UserRepository defines the interface for User persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

// TokenManager issues and validates signed tokens
type TokenManager interface {
	GenerateAccessToken(identity Identity) (string, error)
	GenerateRefreshToken(identity Identity) (string, error)
	// ValidateAccessToken returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateAccessToken(token string) (*Identity, error)
	// ValidateRefreshToken returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateRefreshToken(token string) (*Identity, error)
	AccessTokenTTL() time.Duration
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash and whether the hash
	// uses a superseded scheme and should be replaced.
	Verify(hash, password string) (match bool, needsRehash bool)
}
