package service

import (
	"context"
	"errors"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/repository"
	"medtrack/reminder-service/pkg/helpers"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidTimeOfDay = errors.New("time must be in HH:MM format")
)

type ReminderService interface {
	Create(ctx context.Context, userID, medicationID uint64, timeOfDay string) (*models.Reminder, error)
	Get(ctx context.Context, reminderID, userID uint64) (*models.Reminder, error)
	List(ctx context.Context, userID uint64) ([]*models.Reminder, error)
	Update(ctx context.Context, reminderID, userID uint64, req *models.UpdateReminderRequest) (*models.Reminder, error)
	Delete(ctx context.Context, reminderID, userID uint64) error
}

type reminderService struct {
	repo           repository.ReminderRepositoryInterface
	medicationRepo repository.MedicationRepositoryInterface
	userRepo       repository.UserRepositoryInterface
}

func NewReminderService(
	repo repository.ReminderRepositoryInterface,
	medicationRepo repository.MedicationRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) ReminderService {
	return &reminderService{
		repo:           repo,
		medicationRepo: medicationRepo,
		userRepo:       userRepo,
	}
}

// Create validates ownership of the medication and the time-of-day token
// before persisting. The target chat is the user's linked chat identity;
// a reminder created before the user links a chat gets chat_id 0 and is
// skipped by the scheduler until the user talks to the bot.
func (s *reminderService) Create(ctx context.Context, userID, medicationID uint64, timeOfDay string) (*models.Reminder, error) {
	if _, _, ok := helpers.ParseTimeOfDay(timeOfDay); !ok {
		return nil, ErrInvalidTimeOfDay
	}

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

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var chatID int64
	if user.ChatID != nil {
		chatID = *user.ChatID
	}

	reminder := &models.Reminder{
		UserID:       userID,
		MedicationID: medicationID,
		ChatID:       chatID,
		TimeOfDay:    timeOfDay,
		Active:       true,
	}
	id, err := s.repo.Create(ctx, reminder)
	if err != nil {
		return nil, err
	}
	reminder.ID = id
	return reminder, nil
}

func (s *reminderService) Get(ctx context.Context, reminderID, userID uint64) (*models.Reminder, error) {
	return s.getOwned(ctx, reminderID, userID)
}

func (s *reminderService) List(ctx context.Context, userID uint64) ([]*models.Reminder, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *reminderService) Update(ctx context.Context, reminderID, userID uint64, req *models.UpdateReminderRequest) (*models.Reminder, error) {
	reminder, err := s.getOwned(ctx, reminderID, userID)
	if err != nil {
		return nil, err
	}

	if req.TimeOfDay != nil {
		if _, _, ok := helpers.ParseTimeOfDay(*req.TimeOfDay); !ok {
			return nil, ErrInvalidTimeOfDay
		}
		reminder.TimeOfDay = *req.TimeOfDay
	}
	if req.Active != nil {
		reminder.Active = *req.Active
	}

	if err := s.repo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) Delete(ctx context.Context, reminderID, userID uint64) error {
	if _, err := s.getOwned(ctx, reminderID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, reminderID)
}

func (s *reminderService) getOwned(ctx context.Context, reminderID, userID uint64) (*models.Reminder, error) {
	reminder, err := s.repo.GetByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		return nil, ErrReminderNotFound
	}
	if reminder.UserID != userID {
		return nil, ErrNotOwner
	}
	return reminder, nil
}
