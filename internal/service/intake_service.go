package service

import (
	"context"
	"time"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/repository"
)

type IntakeService interface {
	Record(ctx context.Context, userID, medicationID uint64, reminderID *uint64, status models.IntakeStatus, notes *string) (*models.Intake, error)
	AddNotes(ctx context.Context, intakeID uint64, notes string) error
	List(ctx context.Context, userID uint64, limit int32) ([]*models.Intake, error)
}

type intakeService struct {
	repo           repository.IntakeRepositoryInterface
	medicationRepo repository.MedicationRepositoryInterface
}

func NewIntakeService(
	repo repository.IntakeRepositoryInterface,
	medicationRepo repository.MedicationRepositoryInterface,
) IntakeService {
	return &intakeService{
		repo:           repo,
		medicationRepo: medicationRepo,
	}
}

func (s *intakeService) Record(ctx context.Context, userID, medicationID uint64, reminderID *uint64, status models.IntakeStatus, notes *string) (*models.Intake, error) {
	medication, err := s.medicationRepo.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}
	if medication.UserID != userID {
		return nil, ErrNotOwner
	}

	intake := &models.Intake{
		UserID:       userID,
		MedicationID: medicationID,
		ReminderID:   reminderID,
		Status:       status,
		Notes:        notes,
		TakenAt:      time.Now().UTC(),
	}
	id, err := s.repo.Create(ctx, intake)
	if err != nil {
		return nil, err
	}
	intake.ID = id
	return intake, nil
}

func (s *intakeService) AddNotes(ctx context.Context, intakeID uint64, notes string) error {
	return s.repo.UpdateNotes(ctx, intakeID, notes)
}

func (s *intakeService) List(ctx context.Context, userID uint64, limit int32) ([]*models.Intake, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}
