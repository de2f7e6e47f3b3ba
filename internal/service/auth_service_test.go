package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/apperr"
	"notes-service/internal/model"
)

func authFixture() *AuthService {
	store := testStore()
	return NewAuthService(store.Users(), store.Tenants(), store.Provisioner(), testJWT(), 3)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token embedding the identity", func(t *testing.T) {
		auth := authFixture()
		result, err := auth.Login(ctx, "admin@acme.test", testSecret)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, acmeAdmin(), result.Identity)

		identity, err := testJWT().ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, acmeAdmin(), identity)
	})

	t.Run("wrong secret and unknown email fail identically", func(t *testing.T) {
		auth := authFixture()

		_, errWrong := auth.Login(ctx, "admin@acme.test", "wrong")
		_, errUnknown := auth.Login(ctx, "nobody@acme.test", testSecret)

		for _, err := range []error{errWrong, errUnknown} {
			require.Error(t, err)
			e, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindAuthentication, e.Kind)
			assert.Equal(t, "invalid credentials", e.Message)
		}
	})

	t.Run("missing fields are a validation error", func(t *testing.T) {
		auth := authFixture()
		_, err := auth.Login(ctx, "", testSecret)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		_, err = auth.Login(ctx, "admin@acme.test", "")
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions a free tenant with an admin owner", func(t *testing.T) {
		store := testStore()
		auth := NewAuthService(store.Users(), store.Tenants(), store.Provisioner(), testJWT(), 5)

		result, tenant, err := auth.Register(ctx, "initech", "Initech", "owner@initech.test", "pw")
		require.NoError(t, err)
		assert.Equal(t, model.PlanFree, tenant.Plan)
		assert.Equal(t, 5, tenant.NoteLimit)
		assert.Equal(t, model.RoleAdmin, result.Identity.Role)
		assert.Equal(t, "initech", result.Identity.TenantID)
		assert.NotEmpty(t, result.Token)

		// registrant can log in with the chosen secret
		_, err = auth.Login(ctx, "owner@initech.test", "pw")
		require.NoError(t, err)
	})

	t.Run("taken tenant id or email is a conflict", func(t *testing.T) {
		auth := authFixture()

		_, _, err := auth.Register(ctx, "acme", "Acme Again", "new@acme.test", "pw")
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))

		_, _, err = auth.Register(ctx, "hooli", "Hooli", "admin@acme.test", "pw")
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("missing fields are a validation error", func(t *testing.T) {
		auth := authFixture()
		_, _, err := auth.Register(ctx, "", "Name", "a@b.test", "pw")
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves user and tenant", func(t *testing.T) {
		auth := authFixture()
		user, tenant, err := auth.Me(ctx, acmeAdmin())
		require.NoError(t, err)
		assert.Equal(t, "admin@acme.test", user.Email)
		assert.Equal(t, "acme", tenant.ID)
	})

	t.Run("vanished user is not found", func(t *testing.T) {
		auth := authFixture()
		_, _, err := auth.Me(ctx, model.Identity{UserID: 99, TenantID: "acme"})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}
