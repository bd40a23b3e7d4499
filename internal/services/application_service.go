package services

import (
	"context"
	"fmt"
	"time"

	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"
	"github.com/utkarshshahi0/crud-assesment/internal/repository"
	crud_errors "github.com/utkarshshahi0/crud-assesment/pkg/errors"

	"github.com/google/uuid"
)

type ApplicationService struct {
	repo repository.ApplicationRepository
}

func NewApplicationService(repo repository.ApplicationRepository) *ApplicationService {
	return &ApplicationService{repo: repo}
}

type SubmitInput struct {
	Name              string
	Mobile            string
	Email             string
	Gender            string
	ApplicationAmount float64
	ProfilePicture    string
	MarkSheet         string
}

func (s *ApplicationService) Submit(ctx context.Context, in SubmitInput) (application.Application, error) {
	if err := validateSubmit(in); err != nil {
		return application.Application{}, err
	}

	now := time.Now()
	a := application.Application{
		ID:                uuid.New(),
		Name:              in.Name,
		Mobile:            in.Mobile,
		Email:             in.Email,
		Gender:            in.Gender,
		ApplicationAmount: in.ApplicationAmount,
		ProfilePicture:    in.ProfilePicture,
		MarkSheet:         in.MarkSheet,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, &a); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (s *ApplicationService) List(ctx context.Context) ([]application.Application, error) {
	return s.repo.GetAll(ctx)
}

func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

// Modify merges the supplied fields into the stored record. A zero-valued
// field is treated as "not supplied" and keeps the stored value, so an
// explicit empty string or zero amount is silently ignored. File fields are
// never touched here.
func (s *ApplicationService) Modify(ctx context.Context, id uuid.UUID, fields application.UpdateFields) (application.Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	if fields.Name != "" {
		a.Name = fields.Name
	}
	if fields.Mobile != "" {
		a.Mobile = fields.Mobile
	}
	if fields.Email != "" {
		a.Email = fields.Email
	}
	if fields.Gender != "" {
		a.Gender = fields.Gender
	}
	if fields.ApplicationAmount != 0 {
		a.ApplicationAmount = fields.ApplicationAmount
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (s *ApplicationService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateSubmit(in SubmitInput) error {
	required := map[string]string{
		"name":           in.Name,
		"mobile":         in.Mobile,
		"email":          in.Email,
		"gender":         in.Gender,
		"profilePicture": in.ProfilePicture,
		"markSheet":      in.MarkSheet,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s is required", crud_errors.ErrInvalidInput, field)
		}
	}
	if in.ApplicationAmount < 0 {
		return fmt.Errorf("%w: applicationAmount must not be negative", crud_errors.ErrInvalidInput)
	}
	return nil
}
