package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// JWT signing algorithms supported by the token manager
const (
	JWTAlgorithmHS256 = "HS256"
	JWTAlgorithmHS384 = "HS384"
	JWTAlgorithmHS512 = "HS512"
)

// AuthSettings holds the API key, token issuance and password hashing parameters
type AuthSettings struct {
	APIKey                 string `mapstructure:"api_key" validate:"required"`
	JWTSecretKey           string `mapstructure:"jwt_secret_key" validate:"required,min=8"`
	JWTAlgorithm           string `mapstructure:"jwt_algorithm" validate:"required,oneof=HS256 HS384 HS512"`
	TokenExpireMinutes     int    `mapstructure:"jwt_token_expire_minutes" validate:"min=1"`
	RefreshTokenExpireDays int    `mapstructure:"jwt_refresh_token_expire_days" validate:"min=1"`
	PasswordSalt           string `mapstructure:"password_salt"`
	AdminDefaultPassword   string `mapstructure:"admin_default_password" validate:"required"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	return nil
}

// AccessTokenTTL returns the lifetime of access tokens
func (s *AuthSettings) AccessTokenTTL() time.Duration {
	return time.Duration(s.TokenExpireMinutes) * time.Minute
}

// RefreshTokenTTL returns the lifetime of refresh tokens
func (s *AuthSettings) RefreshTokenTTL() time.Duration {
	return time.Duration(s.RefreshTokenExpireDays) * 24 * time.Hour
}
