package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"notes-service/internal/model"
)

// postgresTenantRepository implements TenantRepository using GORM
type postgresTenantRepository struct {
	db *gorm.DB
}

// NewPostgresTenantRepository creates a new PostgreSQL-backed TenantRepository
func NewPostgresTenantRepository(db *gorm.DB) TenantRepository {
	return &postgresTenantRepository{db: db}
}

func (r *postgresTenantRepository) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).Take(&tenant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *postgresTenantRepository) Upgrade(ctx context.Context, id string) (*model.Tenant, error) {
	// Single conditional UPDATE: concurrent readers see the old or new plan,
	// never anything in between, and a second upgrade matches zero rows.
	result := r.db.WithContext(ctx).
		Model(&model.Tenant{}).
		Where("id = ? AND plan = ?", id, model.PlanFree).
		Update("plan", model.PlanPro)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		tenant, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, ErrTenantNotFound
		}
		return nil, ErrTenantAlreadyPro
	}

	return r.GetByID(ctx, id)
}
