package service

import (
	"context"
	"time"

	"notes-service/internal/apperr"
	"notes-service/internal/model"
	"notes-service/internal/repository"
)

// NoteService handles note CRUD. The tenant scope always comes from the
// caller's identity, never from request input: there is no way to name
// another tenant here, so cross-tenant access is impossible by construction.
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// Create inserts a note for the caller's tenant, subject to the tenant's
// plan quota. The quota decision runs atomically with the insert inside the
// repository.
func (s *NoteService) Create(ctx context.Context, identity model.Identity, title, content string) (*model.Note, error) {
	if title == "" || content == "" {
		return nil, apperr.Validation("title and content are required")
	}

	now := time.Now()
	note := &model.Note{
		Title:     title,
		Content:   content,
		CreatedBy: identity.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch err := s.notes.Create(ctx, identity.TenantID, note); err {
	case nil:
		return note, nil
	case repository.ErrQuotaExceeded:
		return nil, apperr.QuotaExceeded("note limit reached, upgrade to the pro plan for unlimited notes")
	case repository.ErrTenantNotFound:
		return nil, apperr.NotFound("tenant not found")
	default:
		return nil, apperr.Internal(err)
	}
}

// List retrieves all notes of the caller's tenant.
func (s *NoteService) List(ctx context.Context, identity model.Identity) ([]model.Note, error) {
	notes, err := s.notes.ListByTenant(ctx, identity.TenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return notes, nil
}

// Get retrieves one note of the caller's tenant. A note belonging to another
// tenant is reported exactly like a note that does not exist.
func (s *NoteService) Get(ctx context.Context, identity model.Identity, id uint) (*model.Note, error) {
	note, err := s.notes.GetByID(ctx, identity.TenantID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if note == nil {
		return nil, apperr.NotFound("note not found")
	}
	return note, nil
}

// Update applies a partial update: only supplied fields overwrite existing
// ones. UpdatedAt is always refreshed.
func (s *NoteService) Update(ctx context.Context, identity model.Identity, id uint, title, content *string) (*model.Note, error) {
	if title == nil && content == nil {
		return nil, apperr.Validation("at least one of title or content is required")
	}

	note, err := s.notes.GetByID(ctx, identity.TenantID, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if note == nil {
		return nil, apperr.NotFound("note not found")
	}

	if title != nil {
		note.Title = *title
	}
	if content != nil {
		note.Content = *content
	}
	note.UpdatedAt = time.Now()

	found, err := s.notes.Update(ctx, identity.TenantID, note)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !found {
		return nil, apperr.NotFound("note not found")
	}
	return note, nil
}

// Delete removes one note of the caller's tenant.
func (s *NoteService) Delete(ctx context.Context, identity model.Identity, id uint) error {
	found, err := s.notes.Delete(ctx, identity.TenantID, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !found {
		return apperr.NotFound("note not found")
	}
	return nil
}
