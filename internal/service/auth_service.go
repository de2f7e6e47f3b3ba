package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"notes-service/internal/apperr"
	"notes-service/internal/model"
	"notes-service/internal/repository"
	"notes-service/pkg/jwtutil"
)

// AuthService handles credential issuing and identity lookups
type AuthService struct {
	users            repository.UserRepository
	tenants          repository.TenantRepository
	provisioner      repository.ProvisionRepository
	jwt              *jwtutil.JWTUtil
	defaultNoteLimit int
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users repository.UserRepository,
	tenants repository.TenantRepository,
	provisioner repository.ProvisionRepository,
	jwt *jwtutil.JWTUtil,
	defaultNoteLimit int,
) *AuthService {
	return &AuthService{
		users:            users,
		tenants:          tenants,
		provisioner:      provisioner,
		jwt:              jwt,
		defaultNoteLimit: defaultNoteLimit,
	}
}

// LoginResult carries the issued credential and the identity it embeds
type LoginResult struct {
	Token    string
	Identity model.Identity
}

// Login verifies the secret against the stored hash and issues a signed
// credential. Unknown email and wrong secret produce the same failure, so
// accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, secret string) (*LoginResult, error) {
	if email == "" || secret == "" {
		return nil, apperr.Validation("email and secret are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.Authentication("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(secret)); err != nil {
		return nil, apperr.Authentication("invalid credentials")
	}

	identity := model.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
	}

	token, err := s.jwt.GenerateToken(identity)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResult{Token: token, Identity: identity}, nil
}

// Register provisions a free-plan tenant with the configured default note
// limit and its first user, who gets the admin role. The registrant is logged
// in immediately.
func (s *AuthService) Register(ctx context.Context, tenantID, tenantName, email, secret string) (*LoginResult, *model.Tenant, error) {
	if tenantID == "" || tenantName == "" || email == "" || secret == "" {
		return nil, nil, apperr.Validation("tenant_id, tenant_name, email and secret are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	tenant := &model.Tenant{
		ID:        tenantID,
		Name:      tenantName,
		Plan:      model.PlanFree,
		NoteLimit: s.defaultNoteLimit,
	}
	owner := &model.User{
		Email:    email,
		Password: string(hash),
		Role:     model.RoleAdmin,
	}

	switch err := s.provisioner.CreateTenantWithOwner(ctx, tenant, owner); err {
	case nil:
	case repository.ErrTenantExists:
		return nil, nil, apperr.Conflict("tenant id already taken")
	case repository.ErrEmailTaken:
		return nil, nil, apperr.Conflict("email already registered")
	default:
		return nil, nil, apperr.Internal(err)
	}

	identity := model.Identity{
		UserID:   owner.ID,
		Email:    owner.Email,
		Role:     owner.Role,
		TenantID: tenant.ID,
	}

	token, err := s.jwt.GenerateToken(identity)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	return &LoginResult{Token: token, Identity: identity}, tenant, nil
}

// Me resolves the authenticated identity back to its stored user and tenant
// records.
func (s *AuthService) Me(ctx context.Context, identity model.Identity) (*model.User, *model.Tenant, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if user == nil {
		// valid credential for a user deleted since issuance
		return nil, nil, apperr.NotFound("user not found")
	}

	tenant, err := s.tenants.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if tenant == nil {
		return nil, nil, apperr.NotFound("tenant not found")
	}

	return user, tenant, nil
}
