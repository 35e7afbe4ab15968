package service

import (
	"context"
	"errors"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/repository"
)

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrNotOwner           = errors.New("resource does not belong to user")
)

type MedicationService interface {
	Create(ctx context.Context, userID uint64, name, dosage string, description *string) (*models.Medication, error)
	Get(ctx context.Context, medicationID, userID uint64) (*models.Medication, error)
	List(ctx context.Context, userID uint64) ([]*models.Medication, error)
	Update(ctx context.Context, medicationID, userID uint64, req *models.UpdateMedicationRequest) (*models.Medication, error)
	Delete(ctx context.Context, medicationID, userID uint64) error
}

type medicationService struct {
	repo repository.MedicationRepositoryInterface
}

func NewMedicationService(repo repository.MedicationRepositoryInterface) MedicationService {
	return &medicationService{repo: repo}
}

func (s *medicationService) Create(ctx context.Context, userID uint64, name, dosage string, description *string) (*models.Medication, error) {
	medication := &models.Medication{
		UserID:      userID,
		Name:        name,
		Dosage:      dosage,
		Description: description,
		Active:      true,
	}
	id, err := s.repo.Create(ctx, medication)
	if err != nil {
		return nil, err
	}
	medication.ID = id
	return medication, nil
}

func (s *medicationService) Get(ctx context.Context, medicationID, userID uint64) (*models.Medication, error) {
	return s.getOwned(ctx, medicationID, userID)
}

func (s *medicationService) List(ctx context.Context, userID uint64) ([]*models.Medication, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *medicationService) Update(ctx context.Context, medicationID, userID uint64, req *models.UpdateMedicationRequest) (*models.Medication, error) {
	medication, err := s.getOwned(ctx, medicationID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		medication.Name = *req.Name
	}
	if req.Dosage != nil {
		medication.Dosage = *req.Dosage
	}
	if req.Description != nil {
		medication.Description = req.Description
	}
	if req.Active != nil {
		medication.Active = *req.Active
	}

	if err := s.repo.Update(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *medicationService) Delete(ctx context.Context, medicationID, userID uint64) error {
	if _, err := s.getOwned(ctx, medicationID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, medicationID)
}

func (s *medicationService) getOwned(ctx context.Context, medicationID, userID uint64) (*models.Medication, error) {
	medication, err := s.repo.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}
	if medication.UserID != userID {
		return nil, ErrNotOwner
	}
	return medication, nil
}
