package repository

import (
	"context"
	"sync"

	"notes-service/internal/model"
)

// MemoryStore is an in-memory backend for all repository interfaces. It backs
// tests and STORE=memory development runs. One mutex covers every map, so the
// count-check-insert sequence and the plan upgrade are trivially atomic.
// The typed repositories are obtained through Tenants, Users, Provisioner
// and Notes.
type MemoryStore struct {
	mu         sync.RWMutex
	tenants    map[string]model.Tenant
	users      map[uint]model.User
	notes      map[uint]model.Note
	nextUserID uint
	nextNoteID uint
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants:    make(map[string]model.Tenant),
		users:      make(map[uint]model.User),
		notes:      make(map[uint]model.Note),
		nextUserID: 1,
		nextNoteID: 1,
	}
}

// Seed loads pre-provisioned tenants and users, standing in for records
// normally managed out of band. Users without an id get the next one.
func (s *MemoryStore) Seed(tenants []model.Tenant, users []model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tenant := range tenants {
		s.tenants[tenant.ID] = tenant
	}
	for _, user := range users {
		if user.ID == 0 {
			user.ID = s.nextUserID
			s.nextUserID++
		} else if user.ID >= s.nextUserID {
			s.nextUserID = user.ID + 1
		}
		s.users[user.ID] = user
	}
}

// Tenants returns the store's TenantRepository view
func (s *MemoryStore) Tenants() TenantRepository { return memoryTenantRepository{s} }

// Users returns the store's UserRepository view
func (s *MemoryStore) Users() UserRepository { return memoryUserRepository{s} }

// Provisioner returns the store's ProvisionRepository view
func (s *MemoryStore) Provisioner() ProvisionRepository { return memoryUserRepository{s} }

// Notes returns the store's NoteRepository view
func (s *MemoryStore) Notes() NoteRepository { return memoryNoteRepository{s} }

type memoryTenantRepository struct{ s *MemoryStore }

func (r memoryTenantRepository) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tenant, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	return &tenant, nil
}

func (r memoryTenantRepository) Upgrade(ctx context.Context, id string) (*model.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tenant, ok := r.s.tenants[id]
	if !ok {
		return nil, ErrTenantNotFound
	}
	if tenant.Plan == model.PlanPro {
		return nil, ErrTenantAlreadyPro
	}

	tenant.Plan = model.PlanPro
	r.s.tenants[id] = tenant
	return &tenant, nil
}

type memoryUserRepository struct{ s *MemoryStore }

func (r memoryUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r memoryUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r memoryUserRepository) CreateTenantWithOwner(ctx context.Context, tenant *model.Tenant, owner *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tenants[tenant.ID]; ok {
		return ErrTenantExists
	}
	for _, user := range r.s.users {
		if user.Email == owner.Email {
			return ErrEmailTaken
		}
	}

	r.s.tenants[tenant.ID] = *tenant

	owner.ID = r.s.nextUserID
	r.s.nextUserID++
	owner.TenantID = tenant.ID
	r.s.users[owner.ID] = *owner
	return nil
}

type memoryNoteRepository struct{ s *MemoryStore }

func (r memoryNoteRepository) Create(ctx context.Context, tenantID string, note *model.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tenant, ok := r.s.tenants[tenantID]
	if !ok {
		return ErrTenantNotFound
	}

	var count int64
	for _, n := range r.s.notes {
		if n.TenantID == tenantID {
			count++
		}
	}

	if !tenant.Quota().AllowsCreate(count) {
		return ErrQuotaExceeded
	}

	note.ID = r.s.nextNoteID
	r.s.nextNoteID++
	note.TenantID = tenantID
	r.s.notes[note.ID] = *note
	return nil
}

func (r memoryNoteRepository) ListByTenant(ctx context.Context, tenantID string) ([]model.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	notes := make([]model.Note, 0)
	// ids are assigned monotonically, so ascending id is creation order
	for id := uint(1); id < r.s.nextNoteID; id++ {
		if note, ok := r.s.notes[id]; ok && note.TenantID == tenantID {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (r memoryNoteRepository) GetByID(ctx context.Context, tenantID string, id uint) (*model.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	note, ok := r.s.notes[id]
	if !ok || note.TenantID != tenantID {
		return nil, nil
	}
	return &note, nil
}

func (r memoryNoteRepository) Update(ctx context.Context, tenantID string, note *model.Note) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.notes[note.ID]
	if !ok || existing.TenantID != tenantID {
		return false, nil
	}

	existing.Title = note.Title
	existing.Content = note.Content
	existing.UpdatedAt = note.UpdatedAt
	r.s.notes[note.ID] = existing
	return true, nil
}

func (r memoryNoteRepository) Delete(ctx context.Context, tenantID string, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	note, ok := r.s.notes[id]
	if !ok || note.TenantID != tenantID {
		return false, nil
	}

	// ids stay monotonic: the counter never rewinds on delete
	delete(r.s.notes, id)
	return true, nil
}

func (r memoryNoteRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, note := range r.s.notes {
		if note.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}
