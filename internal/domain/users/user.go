package users

import (
	"errors"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Default administrator created on first start
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when the username is already registered
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidOldPassword is returned when a password change does not present the current password
	ErrInvalidOldPassword = errors.New("invalid old password")
	// ErrInvalidToken is returned for malformed, forged or revoked tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for tokens past their expiry
	ErrExpiredToken = errors.New("token has expired")
)

// User entity
type User struct {
	ID           int64
	Username     string `validate:"required,min=3,max=50"`
	Email        string `validate:"omitempty,email,max=100"`
	PasswordHash string `validate:"required"`
	Role         string `validate:"required,oneof=user admin"`
	RefreshToken string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.Struct(u)
}

// Identity returns the claims carried in tokens issued for the user
func (u *User) Identity() Identity {
	return Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Identity is the authenticated principal extracted from a token
type Identity struct {
	UserID   int64
	Username string
	Email    string
	Role     string
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	// ExpiresIn is the access token lifetime in seconds
	ExpiresIn int64
}

// CreateUserRequest carries the fields accepted when registering a user
type CreateUserRequest struct {
	Username string `validate:"required,min=3,max=50"`
	Email    string `validate:"omitempty,email,max=100"`
	Password string `validate:"required,min=4,max=72"`
	Role     string `validate:"required,oneof=user admin"`
}

// Validate for validating CreateUserRequest struct
func (r *CreateUserRequest) Validate() error {
	return validators.Struct(r)
}
