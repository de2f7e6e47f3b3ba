package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notes-service/internal/model"
	"notes-service/pkg/jwtutil"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

const identityKey = "identity"

// Auth returns a middleware that validates the bearer credential from the
// Authorization header and stores the reconstructed identity in the context.
// Missing, malformed, tampered and expired credentials all produce the same
// 401 response.
func Auth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing credentials"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing credentials"})
			}

			identity, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing credentials"})
			}

			c.Set(identityKey, identity)
			log.Debug("Request authenticated",
				zap.Uint("user_id", identity.UserID),
				zap.String("tenant_id", identity.TenantID),
				zap.String("role", string(identity.Role)))

			return next(c)
		}
	}
}

// RequireAdmin rejects authenticated callers that do not carry the admin
// role. Must run after Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing credentials"})
		}
		if !identity.IsAdmin() {
			logger.FromEcho(c).Warn("Admin role required",
				zap.Uint("user_id", identity.UserID),
				zap.String("role", string(identity.Role)))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
		}
		return next(c)
	}
}

// IdentityFrom retrieves the authenticated identity stored by Auth.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	identity, ok := c.Get(identityKey).(model.Identity)
	return identity, ok
}
