package repository

import (
	"context"
	"errors"
	"time"

	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"
	crud_errors "github.com/utkarshshahi0/crud-assesment/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	res := r.db.WithContext(ctx).Create(a)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (r *PostgresApplicationRepository) GetAll(ctx context.Context) ([]application.Application, error) {
	var apps []application.Application
	if err := r.db.WithContext(ctx).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	var a application.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return application.Application{}, crud_errors.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) Update(ctx context.Context, a application.Application) error {
	a.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Save(&a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return crud_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&application.Application{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return crud_errors.ErrNotFound
	}
	return nil
}
