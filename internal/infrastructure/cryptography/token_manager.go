package cryptography

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents the JWT claims issued by the gateway
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// jwtManager implements users.TokenManager with HMAC signed tokens
type jwtManager struct {
	secret          []byte
	method          jwt.SigningMethod
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time
}

// NewTokenManager creates a TokenManager from the auth settings
func NewTokenManager(settings *config.AuthSettings) (users.TokenManager, error) {
	if settings.JWTSecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}

	method, err := signingMethod(settings.JWTAlgorithm)
	if err != nil {
		return nil, err
	}

	return &jwtManager{
		secret:          []byte(settings.JWTSecretKey),
		method:          method,
		accessTokenTTL:  settings.AccessTokenTTL(),
		refreshTokenTTL: settings.RefreshTokenTTL(),
		now:             time.Now,
	}, nil
}

func signingMethod(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case config.JWTAlgorithmHS256, "":
		return jwt.SigningMethodHS256, nil
	case config.JWTAlgorithmHS384:
		return jwt.SigningMethodHS384, nil
	case config.JWTAlgorithmHS512:
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm: %s", algorithm)
	}
}

func (m *jwtManager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}

func (m *jwtManager) GenerateAccessToken(identity users.Identity) (string, error) {
	return m.generate(identity, TokenTypeAccess, m.accessTokenTTL)
}

func (m *jwtManager) GenerateRefreshToken(identity users.Identity) (string, error) {
	return m.generate(identity, TokenTypeRefresh, m.refreshTokenTTL)
}

func (m *jwtManager) ValidateAccessToken(token string) (*users.Identity, error) {
	return m.validate(token, TokenTypeAccess)
}

func (m *jwtManager) ValidateRefreshToken(token string) (*users.Identity, error) {
	return m.validate(token, TokenTypeRefresh)
}

func (m *jwtManager) generate(identity users.Identity, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Username: identity.Username,
		Email:    identity.Email,
		Role:     identity.Role,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			// two refresh tokens issued within the same second must still differ
			ID: uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (m *jwtManager) validate(tokenString, tokenType string) (*users.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != m.method.Alg() {
			return nil, users.ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, users.ErrExpiredToken
		}
		return nil, users.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != tokenType {
		return nil, users.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, users.ErrInvalidToken
	}

	return &users.Identity{
		UserID:   userID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}
