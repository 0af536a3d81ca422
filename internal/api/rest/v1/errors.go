package v1

import (
	"errors"
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/pkg/validators"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

var notFoundErrors = []error{
	customers.ErrCustomerNotFound,
	appointments.ErrAppointmentNotFound,
	documents.ErrSubmissionNotFound,
	documents.ErrCategoryNotFound,
	documents.ErrFileNotFound,
	documents.ErrNoObjects,
	settings.ErrServiceNotFound,
	users.ErrUserNotFound,
}

var badRequestErrors = []error{
	validators.ErrValidation,
	appointments.ErrPastDate,
	appointments.ErrSlotTaken,
	dashboard.ErrInvalidPeriod,
	settings.ErrEmptyPrompt,
	users.ErrInvalidOldPassword,
	users.ErrUserExists,
}

// statusFor maps a service error to an HTTP status
func statusFor(err error) int {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, users.ErrInvalidCredentials) || errors.Is(err, users.ErrInvalidToken) || errors.Is(err, users.ErrExpiredToken) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func abortWithMessage(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// respondWithError writes err with the status statusFor derives.
// Internal errors are reported with a generic message unless the gateway runs in debug mode.
func respondWithError(ctx *gin.Context, err error) {
	status := statusFor(err)
	_ = ctx.Error(err)
	message := err.Error()
	if status == http.StatusInternalServerError && !gin.IsDebugging() {
		message = "Internal server error"
	}
	ctx.JSON(status, ErrorResponse{Message: message})
}
