package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"notes-service/internal/apperr"
	"notes-service/internal/middleware"
	"notes-service/internal/service"
	"notes-service/pkg/logger"
	"notes-service/prometheus"
)

// AuthHandler exposes login, registration and identity lookup
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email  string `json:"email"`
		Secret string `json:"secret"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		return apperr.Validation("invalid request body")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Secret)
	if err != nil {
		if apperr.IsKind(err, apperr.KindAuthentication) {
			log.Warn("Login failed", zap.String("email", req.Email))
			prometheus.RecordAuthError("login_failure")
		}
		return err
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in",
		zap.String("email", result.Identity.Email),
		zap.String("tenant_id", result.Identity.TenantID),
		zap.String("role", string(result.Identity.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"credential": result.Token,
		"identity":   result.Identity,
	})
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		TenantID   string `json:"tenant_id"`
		TenantName string `json:"tenant_name"`
		Email      string `json:"email"`
		Secret     string `json:"secret"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse register request", zap.Error(err))
		return apperr.Validation("invalid request body")
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	result, tenant, err := h.auth.Register(c.Request().Context(), req.TenantID, req.TenantName, req.Email, req.Secret)
	if err != nil {
		return err
	}

	prometheus.IncreaseActiveTokens()
	log.Info("Tenant registered",
		zap.String("tenant_id", tenant.ID),
		zap.String("tenant_name", tenant.Name),
		zap.String("email", result.Identity.Email))

	return c.JSON(http.StatusCreated, echo.Map{
		"credential": result.Token,
		"identity":   result.Identity,
		"tenant":     tenant,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Authentication("invalid or missing credentials")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, tenant, err := h.auth.Me(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":   user,
		"tenant": tenant,
	})
}
