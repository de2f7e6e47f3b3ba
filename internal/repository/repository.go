package repository

import (
	"context"
	"errors"

	"notes-service/internal/model"
)

// Outcomes of conditional store operations. Plain lookups signal absence by
// returning a nil record instead.
var (
	// ErrTenantNotFound is returned when a conditional operation targets a
	// tenant that does not exist.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrTenantAlreadyPro is returned when upgrading a tenant that is
	// already on the pro plan.
	ErrTenantAlreadyPro = errors.New("tenant already on pro plan")
	// ErrQuotaExceeded is returned when a note insert would exceed the
	// tenant's plan quota.
	ErrQuotaExceeded = errors.New("note quota exceeded")
	// ErrEmailTaken is returned when creating a user with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrTenantExists is returned when provisioning a tenant id that is
	// already taken.
	ErrTenantExists = errors.New("tenant already exists")
)

// TenantRepository defines the interface for tenant data access
type TenantRepository interface {
	// GetByID retrieves a tenant by ID, or nil when absent
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
	// Upgrade moves the tenant from the free to the pro plan. The transition
	// is atomic: concurrent readers observe either plan, never a partial
	// state, and a tenant already on pro fails with ErrTenantAlreadyPro.
	Upgrade(ctx context.Context, id string) (*model.Tenant, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByEmail retrieves a user by email, or nil when absent
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByID retrieves a user by ID, or nil when absent
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

// ProvisionRepository creates a tenant together with its first user. Used by
// registration only.
type ProvisionRepository interface {
	// CreateTenantWithOwner persists the tenant and its admin user as one
	// unit; neither survives if the other fails.
	CreateTenantWithOwner(ctx context.Context, tenant *model.Tenant, owner *model.User) error
}

// NoteRepository defines the interface for note data access. Every operation
// takes the caller's tenant id as a mandatory filter; a note outside that
// tenant is indistinguishable from one that does not exist.
type NoteRepository interface {
	// Create inserts the note for the given tenant. The quota decision and
	// the insert happen in one per-tenant critical section, so concurrent
	// creates cannot overshoot the limit. Fails with ErrQuotaExceeded or
	// ErrTenantNotFound.
	Create(ctx context.Context, tenantID string, note *model.Note) error
	// ListByTenant retrieves all notes belonging to the tenant
	ListByTenant(ctx context.Context, tenantID string) ([]model.Note, error)
	// GetByID retrieves a note by id within the tenant, or nil when absent
	GetByID(ctx context.Context, tenantID string, id uint) (*model.Note, error)
	// Update persists changed fields of a note within the tenant. Reports
	// whether a matching note existed.
	Update(ctx context.Context, tenantID string, note *model.Note) (bool, error)
	// Delete removes a note by id within the tenant. Reports whether a
	// matching note existed. Ids are never reused.
	Delete(ctx context.Context, tenantID string, id uint) (bool, error)
	// CountByTenant returns the number of notes the tenant currently holds
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
}
