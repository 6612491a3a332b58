package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/modemobile/todo-rewards/internal/api/shared/errors"
	"github.com/modemobile/todo-rewards/internal/auth"
	"github.com/modemobile/todo-rewards/internal/domain"
	"github.com/modemobile/todo-rewards/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_SUBJECT_KEY   contextKey = "auth_subject"
	SESSION_CLAIMS_KEY contextKey = "session_claims"
	REQUEST_ID_KEY     contextKey = "request_id"
)

// AuthResult holds the result of authentication
type AuthResult struct {
	Success bool
	Claims  *auth.Claims
	Error   error
}

// Authenticate validates a "Bearer <session token>" Authorization header
func Authenticate(authHeader string, authService auth.Service) AuthResult {
	result := AuthResult{
		Success: false,
	}

	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	// Parse the authorization header
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	if !strings.EqualFold(parts[0], "bearer") {
		result.Error = errors.New("unsupported authorization type: " + strings.ToLower(parts[0]))
		return result
	}

	claims, err := authService.ValidateSession(strings.TrimSpace(parts[1]))
	if err != nil {
		result.Error = err
		return result
	}

	result.Success = true
	result.Claims = claims
	return result
}

// Auth returns a gin middleware that requires a valid session token
func Auth(authService auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := Authenticate(c.GetHeader("Authorization"), authService)

		if !result.Success {
			logger.Warn("Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.NewErrorResponse(apiErr))
			return
		}

		// Store authentication info in context
		c.Set(SESSION_CLAIMS_KEY, result.Claims)
		c.Set(AUTH_SUBJECT_KEY, result.Claims.Subject)
		logger.Debug("Session authentication successful",
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.String("subject", result.Claims.Subject),
		)

		c.Next()
	}
}

// GuestOnly rejects requests that already carry a valid session
func GuestOnly(authService auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && Authenticate(authHeader, authService).Success {
			c.AbortWithStatusJSON(http.StatusConflict,
				apierrors.NewErrorResponse(apierrors.NewConflictError("Already signed in")))
			return
		}

		c.Next()
	}
}

// GetClaims returns the session claims stored by Auth
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(SESSION_CLAIMS_KEY)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok && claims != nil
}

// GetAccount returns the address of the signed-in account
func GetAccount(c *gin.Context) (domain.Address, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return "", false
	}
	return claims.Address(), true
}
