package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/model"
)

func seededStore() *MemoryStore {
	store := NewMemoryStore()
	store.Seed(
		[]model.Tenant{
			{ID: "acme", Name: "Acme Corp", Plan: model.PlanFree, NoteLimit: 3},
			{ID: "globex", Name: "Globex", Plan: model.PlanFree, NoteLimit: 3},
		},
		[]model.User{
			{Email: "admin@acme.test", Role: model.RoleAdmin, TenantID: "acme"},
			{Email: "member@globex.test", Role: model.RoleMember, TenantID: "globex"},
		},
	)
	return store
}

func TestMemoryStoreTenantLookup(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	tenant, err := store.Tenants().GetByID(ctx, "acme")
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, "Acme Corp", tenant.Name)

	tenant, err = store.Tenants().GetByID(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, tenant)
}

func TestMemoryStoreUpgrade(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	tenant, err := store.Tenants().Upgrade(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, model.PlanPro, tenant.Plan)

	_, err = store.Tenants().Upgrade(ctx, "acme")
	assert.ErrorIs(t, err, ErrTenantAlreadyPro)

	_, err = store.Tenants().Upgrade(ctx, "unknown")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestMemoryStoreNoteQuota(t *testing.T) {
	store := seededStore()
	ctx := context.Background()
	notes := store.Notes()

	for i := 0; i < 3; i++ {
		err := notes.Create(ctx, "acme", &model.Note{Title: "n", Content: "c"})
		require.NoError(t, err)
	}

	err := notes.Create(ctx, "acme", &model.Note{Title: "n4", Content: "c"})
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// another tenant's count is unaffected
	err = notes.Create(ctx, "globex", &model.Note{Title: "g", Content: "c"})
	require.NoError(t, err)

	err = notes.Create(ctx, "unknown", &model.Note{Title: "n", Content: "c"})
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestMemoryStoreConcurrentCreatesRespectLimit(t *testing.T) {
	store := seededStore()
	ctx := context.Background()
	notes := store.Notes()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = notes.Create(ctx, "acme", &model.Note{Title: "n", Content: "c"})
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, ErrQuotaExceeded)
		}
	}
	assert.Equal(t, 3, created)

	count, err := notes.CountByTenant(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMemoryStoreTenantFilter(t *testing.T) {
	store := seededStore()
	ctx := context.Background()
	notes := store.Notes()

	acmeNote := &model.Note{Title: "acme note", Content: "c"}
	require.NoError(t, notes.Create(ctx, "acme", acmeNote))

	// visible inside its tenant
	got, err := notes.GetByID(ctx, "acme", acmeNote.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// invisible outside it, same as a missing id
	got, err = notes.GetByID(ctx, "globex", acmeNote.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	found, err := notes.Update(ctx, "globex", &model.Note{ID: acmeNote.ID, Title: "stolen"})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = notes.Delete(ctx, "globex", acmeNote.ID)
	require.NoError(t, err)
	assert.False(t, found)

	list, err := notes.ListByTenant(ctx, "globex")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStoreNoteIDsAreNotReused(t *testing.T) {
	store := seededStore()
	ctx := context.Background()
	notes := store.Notes()

	first := &model.Note{Title: "first", Content: "c"}
	require.NoError(t, notes.Create(ctx, "acme", first))

	found, err := notes.Delete(ctx, "acme", first.ID)
	require.NoError(t, err)
	require.True(t, found)

	second := &model.Note{Title: "second", Content: "c"}
	require.NoError(t, notes.Create(ctx, "acme", second))
	assert.Greater(t, second.ID, first.ID)
}

func TestMemoryStoreProvision(t *testing.T) {
	store := seededStore()
	ctx := context.Background()
	prov := store.Provisioner()

	tenant := &model.Tenant{ID: "initech", Name: "Initech", Plan: model.PlanFree, NoteLimit: 3}
	owner := &model.User{Email: "owner@initech.test", Role: model.RoleAdmin}
	require.NoError(t, prov.CreateTenantWithOwner(ctx, tenant, owner))
	assert.NotZero(t, owner.ID)
	assert.Equal(t, "initech", owner.TenantID)

	err := prov.CreateTenantWithOwner(ctx, &model.Tenant{ID: "initech"}, &model.User{Email: "other@initech.test"})
	assert.ErrorIs(t, err, ErrTenantExists)

	err = prov.CreateTenantWithOwner(ctx, &model.Tenant{ID: "hooli"}, &model.User{Email: "owner@initech.test"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	user, err := store.Users().GetByEmail(ctx, "owner@initech.test")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, model.RoleAdmin, user.Role)
}
