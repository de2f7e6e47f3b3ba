package service

import (
	"context"

	"notes-service/internal/apperr"
	"notes-service/internal/model"
	"notes-service/internal/repository"
)

// TenantService handles tenant lookups and plan upgrades. Both operations
// are gated on the caller's identity: the role gate runs first, then the
// ownership gate, then the lookup, so a caller probing another tenant's id
// learns nothing about its existence.
type TenantService struct {
	tenants repository.TenantRepository
}

// NewTenantService creates a new TenantService
func NewTenantService(tenants repository.TenantRepository) *TenantService {
	return &TenantService{tenants: tenants}
}

// Get retrieves the caller's own tenant record.
func (s *TenantService) Get(ctx context.Context, identity model.Identity, tenantID string) (*model.Tenant, error) {
	if identity.TenantID != tenantID {
		return nil, apperr.Authorization("access to another tenant is not allowed")
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if tenant == nil {
		return nil, apperr.NotFound("tenant not found")
	}
	return tenant, nil
}

// Upgrade moves the caller's tenant from the free to the pro plan. Admin
// only, own tenant only, and the free→pro transition happens once: a second
// upgrade is refused, never silently accepted.
func (s *TenantService) Upgrade(ctx context.Context, identity model.Identity, tenantID string) (*model.Tenant, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Authorization("admin role required")
	}
	if identity.TenantID != tenantID {
		return nil, apperr.Authorization("access to another tenant is not allowed")
	}

	tenant, err := s.tenants.Upgrade(ctx, tenantID)
	switch err {
	case nil:
		return tenant, nil
	case repository.ErrTenantNotFound:
		return nil, apperr.NotFound("tenant not found")
	case repository.ErrTenantAlreadyPro:
		return nil, apperr.Conflict("tenant is already on the pro plan")
	default:
		return nil, apperr.Internal(err)
	}
}
