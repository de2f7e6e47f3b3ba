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

// TenantHandler exposes tenant lookup and plan upgrade
type TenantHandler struct {
	tenants *service.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Get handles GET /tenants/:id
func (h *TenantHandler) Get(c echo.Context) error {
	prometheus.RecordTenantOperation("get")

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Authentication("invalid or missing credentials")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	tenant, err := h.tenants.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tenant)
}

// Upgrade handles POST /tenants/:id/upgrade
func (h *TenantHandler) Upgrade(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("upgrade")

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Authentication("invalid or missing credentials")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	tenant, err := h.tenants.Upgrade(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}

	log.Info("Tenant upgraded",
		zap.String("tenant_id", tenant.ID),
		zap.String("plan", string(tenant.Plan)),
		zap.Uint("upgraded_by", identity.UserID))

	return c.JSON(http.StatusOK, tenant)
}
