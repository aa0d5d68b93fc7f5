package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/profile"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/auth"
)

// Context keys set by Authenticate.
const (
	ContextAccountID     = "account_id"
	ContextAccountEmail  = "account_email"
	ContextUpstreamToken = "upstream_token"
)

type AuthMiddleware struct {
	verifier *auth.Verifier
	profiles *profile.Service
}

func NewAuthMiddleware(verifier *auth.Verifier, profiles *profile.Service) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		profiles: profiles,
	}
}

// Authenticate verifies the bearer token and keeps the raw token in
// context so handlers can forward it upstream unchanged. The gateway
// never mints tokens; the external auth provider owns sessions.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid authorization format"})
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextAccountEmail, claims.Email)
		c.Set(ContextUpstreamToken, parts[1])
		c.Next()
	}
}

// RequireCompleteProfile gates the booking flow until the account has
// supplied phone and date-of-birth.
func (m *AuthMiddleware) RequireCompleteProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString(ContextAccountID)
		complete, err := m.profiles.IsComplete(c.Request.Context(), accountID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to check profile"})
			return
		}
		if !complete {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": "complete your profile before booking"})
			return
		}
		c.Next()
	}
}
