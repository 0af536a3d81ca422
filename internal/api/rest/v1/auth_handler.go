package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// AuthHandler defines the interface for the authentication endpoints
type AuthHandler interface {
	Login(ctx *gin.Context)
	Refresh(ctx *gin.Context)
	Me(ctx *gin.Context)
	ChangePassword(ctx *gin.Context)
}

type authHandler struct {
	authService users.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService users.AuthService) AuthHandler {
	return &authHandler{authService: authService}
}

// Login handles POST /auth/login with form or JSON credentials
// @Summary Log in with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest
	if err := ctx.ShouldBind(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid login data: %v", err))
		return
	}

	pair, err := handler.authService.Login(ctx.Request.Context(), request.Username, request.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			abortWithMessage(ctx, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toTokenResponse(pair))
}

// Refresh handles POST /auth/refresh and rotates the refresh token
// @Summary Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (handler *authHandler) Refresh(ctx *gin.Context) {
	var request RefreshRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, fmt.Sprintf("invalid refresh data: %v", err))
		return
	}

	pair, err := handler.authService.Refresh(ctx.Request.Context(), request.RefreshToken)
	if err != nil {
		if errors.Is(err, users.ErrExpiredToken) {
			abortWithMessage(ctx, http.StatusUnauthorized, "Refresh token has expired")
			return
		}
		if errors.Is(err, users.ErrInvalidToken) {
			abortWithMessage(ctx, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toTokenResponse(pair))
}

// Me handles GET /auth/me
func (handler *authHandler) Me(ctx *gin.Context) {
	identity, ok := identityFrom(ctx)
	if !ok {
		abortWithMessage(ctx, http.StatusUnauthorized, "Missing JWT token")
		return
	}

	ctx.JSON(http.StatusOK, MeResponse{
		ID:       identity.UserID,
		Username: identity.Username,
		Email:    identity.Email,
		Role:     identity.Role,
	})
}

// ChangePassword handles POST /auth/change-password
func (handler *authHandler) ChangePassword(ctx *gin.Context) {
	identity, ok := identityFrom(ctx)
	if !ok {
		abortWithMessage(ctx, http.StatusUnauthorized, "Missing JWT token")
		return
	}

	var request ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, "Old and new password are required")
		return
	}

	err := handler.authService.ChangePassword(ctx.Request.Context(), identity.UserID, request.OldPassword, request.NewPassword)
	if err != nil {
		if errors.Is(err, users.ErrInvalidOldPassword) {
			abortWithMessage(ctx, http.StatusBadRequest, "Invalid old password")
			return
		}
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Password changed successfully"})
}

func toTokenResponse(pair *users.TokenPair) TokenResponse {
	return TokenResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}
}
