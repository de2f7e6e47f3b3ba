package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteQuotaAllowsCreate(t *testing.T) {
	t.Run("bounded quota allows below the limit", func(t *testing.T) {
		quota := BoundedQuota(3)
		assert.True(t, quota.AllowsCreate(0))
		assert.True(t, quota.AllowsCreate(2))
	})

	t.Run("bounded quota denies at and above the limit", func(t *testing.T) {
		quota := BoundedQuota(3)
		assert.False(t, quota.AllowsCreate(3))
		assert.False(t, quota.AllowsCreate(10))
	})

	t.Run("unlimited quota always allows", func(t *testing.T) {
		quota := UnlimitedQuota()
		assert.True(t, quota.Unlimited())
		assert.True(t, quota.AllowsCreate(0))
		assert.True(t, quota.AllowsCreate(1<<30))
	})

	t.Run("zero bound denies the first create", func(t *testing.T) {
		assert.False(t, BoundedQuota(0).AllowsCreate(0))
	})
}

func TestTenantQuota(t *testing.T) {
	t.Run("free tenant is bounded by its note limit", func(t *testing.T) {
		tenant := &Tenant{ID: "acme", Plan: PlanFree, NoteLimit: 3}
		quota := tenant.Quota()
		assert.False(t, quota.Unlimited())
		assert.True(t, quota.AllowsCreate(2))
		assert.False(t, quota.AllowsCreate(3))
	})

	t.Run("pro tenant is unlimited even with a stale note limit", func(t *testing.T) {
		tenant := &Tenant{ID: "acme", Plan: PlanPro, NoteLimit: 3}
		assert.True(t, tenant.Quota().Unlimited())
		assert.True(t, tenant.Quota().AllowsCreate(1000))
	})
}

func TestIdentityIsAdmin(t *testing.T) {
	assert.True(t, Identity{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: RoleMember}.IsAdmin())
}
