package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"notes-service/internal/model"
)

// PostgresUserRepository implements UserRepository and ProvisionRepository
// using GORM
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgreSQL-backed UserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Take(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Take(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) CreateTenantWithOwner(ctx context.Context, tenant *model.Tenant, owner *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Tenant{}).Where("id = ?", tenant.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrTenantExists
		}

		if err := tx.Model(&model.User{}).Where("email = ?", owner.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		owner.TenantID = tenant.ID
		return tx.Create(owner).Error
	})
}
