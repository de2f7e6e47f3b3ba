package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"notes-service/internal/model"
)

// postgresNoteRepository implements NoteRepository using GORM
type postgresNoteRepository struct {
	db *gorm.DB
}

// NewPostgresNoteRepository creates a new PostgreSQL-backed NoteRepository
func NewPostgresNoteRepository(db *gorm.DB) NoteRepository {
	return &postgresNoteRepository{db: db}
}

func (r *postgresNoteRepository) Create(ctx context.Context, tenantID string, note *model.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the tenant row for the duration of the count + insert so two
		// concurrent creates under the same tenant serialize here. The quota
		// is read from the locked row, which also keeps an in-flight upgrade
		// from being half-observed.
		var tenant model.Tenant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Take(&tenant, "id = ?", tenantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTenantNotFound
		}
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Note{}).Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
			return err
		}

		if !tenant.Quota().AllowsCreate(count) {
			return ErrQuotaExceeded
		}

		note.TenantID = tenantID
		return tx.Create(note).Error
	})
}

func (r *postgresNoteRepository) ListByTenant(ctx context.Context, tenantID string) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *postgresNoteRepository) GetByID(ctx context.Context, tenantID string, id uint) (*model.Note, error) {
	var note model.Note
	err := r.db.WithContext(ctx).Take(&note, "id = ? AND tenant_id = ?", id, tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *postgresNoteRepository) Update(ctx context.Context, tenantID string, note *model.Note) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND tenant_id = ?", note.ID, tenantID).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *postgresNoteRepository) Delete(ctx context.Context, tenantID string, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&model.Note{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *postgresNoteRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
