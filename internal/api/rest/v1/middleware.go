package v1

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/ratelimit"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/telemetry"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ClaimsKey is the gin context key holding the authenticated users.Identity
	ClaimsKey = "claims"
	// APIKeyHeader carries the shared gateway key
	APIKeyHeader = "X-API-Key"
	// APIKeyQueryParam may carry the key on websocket upgrades, where browsers cannot set headers
	APIKeyQueryParam = "api_key"

	unmatchedRoute    = "unmatched"
	retryAfterSeconds = "60"
)

// publicPaths are served without a bearer token. Matching is exact.
var publicPaths = map[string]struct{}{
	"/":                        {},
	"/health":                  {},
	"/metrics":                 {},
	"/test/config":             {},
	"/ws":                      {},
	BasePath + "/auth/login":   {},
	BasePath + "/auth/refresh": {},
}

// IsPublicPath reports whether path is served without a bearer token
func IsPublicPath(path string) bool {
	_, ok := publicPaths[path]
	return ok
}

// Recovery turns panics into a 500 response.
// In debug mode the body also carries the recovered value.
func Recovery(logger logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered interface{}) {
		logger.Error("Recovered from panic: ", recovered)
		response := ErrorResponse{Message: "Internal server error"}
		if gin.IsDebugging() {
			response.Details = fmt.Sprint(recovered)
		}
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, response)
	})
}

// RequestObserver logs each request, records its metrics and wraps it in a span.
// Health probes are not logged.
func RequestObserver(logger logger.Logger, metrics *telemetry.Metrics, tracer trace.Tracer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		method := ctx.Request.Method
		route := ctx.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		var span trace.Span
		if tracer != nil {
			spanCtx, s := tracer.Start(ctx.Request.Context(), method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
			ctx.Request = ctx.Request.WithContext(spanCtx)
			span = s
		}

		ctx.Next()

		status := ctx.Writer.Status()
		latency := time.Since(start)

		if metrics != nil {
			metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
		}

		if span != nil {
			span.SetAttributes(
				attribute.String("http.method", method),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", status),
			)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			span.End()
		}

		if len(ctx.Errors) > 0 && status >= http.StatusInternalServerError {
			logger.Error(fmt.Sprintf("%s %s failed: %s", method, ctx.Request.URL.Path, ctx.Errors.String()))
		}
		if ctx.Request.URL.Path == "/health" {
			return
		}
		logger.Info(fmt.Sprintf("%s %s %d %s", method, ctx.Request.URL.Path, status, latency))
	}
}

// CORS applies the configured origin allow-list. A wildcard entry allows any
// origin and echoes it back, which keeps credentials usable.
func CORS(settings *config.ServerSettings) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{APIKeyHeader, "Authorization", "Content-Type", "Accept", "Origin", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}
	if settings.AllowsAllOrigins() {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = settings.CORSAllowedOrigins
	}
	return cors.New(corsConfig)
}

// RateLimit rejects clients exceeding their per-minute budget. Health probes are exempt.
// Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, metrics *telemetry.Metrics, logger logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if limiter == nil || ctx.Request.URL.Path == "/health" {
			ctx.Next()
			return
		}

		allowed, err := limiter.Allow(ctx.Request.Context(), ctx.ClientIP())
		if err != nil {
			logger.Warn("Rate limiter unavailable: ", err)
			ctx.Next()
			return
		}
		if !allowed {
			if metrics != nil {
				metrics.RateLimitedRequests.Inc()
			}
			ctx.Header("Retry-After", retryAfterSeconds)
			abortWithMessage(ctx, http.StatusTooManyRequests, "Too many requests")
			return
		}
		ctx.Next()
	}
}

// APIKey requires the shared gateway key on every request except preflights
func APIKey(apiKey string) gin.HandlerFunc {
	expected := []byte(apiKey)
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodOptions {
			ctx.Next()
			return
		}

		provided := ctx.GetHeader(APIKeyHeader)
		if provided == "" && ctx.Request.URL.Path == "/ws" {
			provided = ctx.Query(APIKeyQueryParam)
		}

		if subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			abortWithMessage(ctx, http.StatusForbidden, "Unauthorized: Invalid API key")
			return
		}
		ctx.Next()
	}
}

// JWT requires a valid bearer token outside the public paths and stores its identity under ClaimsKey
func JWT(authService users.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodOptions || IsPublicPath(ctx.Request.URL.Path) {
			ctx.Next()
			return
		}

		header := ctx.GetHeader("Authorization")
		if header == "" {
			abortWithMessage(ctx, http.StatusUnauthorized, "Missing JWT token")
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			abortWithMessage(ctx, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		identity, err := authService.Authenticate(ctx.Request.Context(), token)
		if err != nil {
			if errors.Is(err, users.ErrExpiredToken) {
				abortWithMessage(ctx, http.StatusUnauthorized, "Token has expired")
				return
			}
			abortWithMessage(ctx, http.StatusUnauthorized, "Invalid JWT token")
			return
		}

		ctx.Set(ClaimsKey, identity)
		ctx.Next()
	}
}

// identityFrom returns the identity stored by JWT
func identityFrom(ctx *gin.Context) (*users.Identity, bool) {
	value, ok := ctx.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*users.Identity)
	return identity, ok && identity != nil
}
