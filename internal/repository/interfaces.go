package repository

import (
	"context"

	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *application.Application) error
	GetAll(ctx context.Context) ([]application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	Update(ctx context.Context, a application.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
}
