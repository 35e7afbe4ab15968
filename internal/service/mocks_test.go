package service

import (
	"context"
	"errors"
	"time"

	"medtrack/reminder-service/internal/models"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user *models.User) (uint64, error)
	getByIDFunc        func(ctx context.Context, id uint64) (*models.User, error)
	getByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	getByChatIDFunc    func(ctx context.Context, chatID int64) (*models.User, error)
	setChatIDFunc      func(ctx context.Context, userID uint64, chatID int64) error
	clearChatIDFunc    func(ctx context.Context, chatID int64) error
	updateTimezoneFunc func(ctx context.Context, userID uint64, timezone string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) (uint64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return 0, errors.New("not implemented")
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	if m.getByChatIDFunc != nil {
		return m.getByChatIDFunc(ctx, chatID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) SetChatID(ctx context.Context, userID uint64, chatID int64) error {
	if m.setChatIDFunc != nil {
		return m.setChatIDFunc(ctx, userID, chatID)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepo) ClearChatID(ctx context.Context, chatID int64) error {
	if m.clearChatIDFunc != nil {
		return m.clearChatIDFunc(ctx, chatID)
	}
	return nil
}

func (m *mockUserRepo) UpdateTimezone(ctx context.Context, userID uint64, timezone string) error {
	if m.updateTimezoneFunc != nil {
		return m.updateTimezoneFunc(ctx, userID, timezone)
	}
	return errors.New("not implemented")
}

type mockTokenRepo struct {
	createPairFunc     func(ctx context.Context, userID uint64) (string, string, error)
	validateAccessFunc func(ctx context.Context, token string) (uint64, error)
	consumeRefreshFunc func(ctx context.Context, token string) (uint64, error)
	revokeAccessFunc   func(ctx context.Context, token string) error
}

func (m *mockTokenRepo) CreatePair(ctx context.Context, userID uint64) (string, string, error) {
	if m.createPairFunc != nil {
		return m.createPairFunc(ctx, userID)
	}
	return "access-token", "refresh-token", nil
}

func (m *mockTokenRepo) ValidateAccess(ctx context.Context, token string) (uint64, error) {
	if m.validateAccessFunc != nil {
		return m.validateAccessFunc(ctx, token)
	}
	return 0, errors.New("not implemented")
}

func (m *mockTokenRepo) ConsumeRefresh(ctx context.Context, token string) (uint64, error) {
	if m.consumeRefreshFunc != nil {
		return m.consumeRefreshFunc(ctx, token)
	}
	return 0, errors.New("not implemented")
}

func (m *mockTokenRepo) RevokeAccess(ctx context.Context, token string) error {
	if m.revokeAccessFunc != nil {
		return m.revokeAccessFunc(ctx, token)
	}
	return errors.New("not implemented")
}

type mockMedicationRepo struct {
	createFunc     func(ctx context.Context, medication *models.Medication) (uint64, error)
	getByIDFunc    func(ctx context.Context, id uint64) (*models.Medication, error)
	listByUserFunc func(ctx context.Context, userID uint64) ([]*models.Medication, error)
	updateFunc     func(ctx context.Context, medication *models.Medication) error
	deleteFunc     func(ctx context.Context, id uint64) error
}

func (m *mockMedicationRepo) Create(ctx context.Context, medication *models.Medication) (uint64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, medication)
	}
	return 0, errors.New("not implemented")
}

func (m *mockMedicationRepo) GetByID(ctx context.Context, id uint64) (*models.Medication, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockMedicationRepo) ListByUser(ctx context.Context, userID uint64) ([]*models.Medication, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockMedicationRepo) Update(ctx context.Context, medication *models.Medication) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, medication)
	}
	return errors.New("not implemented")
}

func (m *mockMedicationRepo) Delete(ctx context.Context, id uint64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockReminderRepo struct {
	createFunc         func(ctx context.Context, reminder *models.Reminder) (uint64, error)
	getByIDFunc        func(ctx context.Context, id uint64) (*models.Reminder, error)
	listByUserFunc     func(ctx context.Context, userID uint64) ([]*models.Reminder, error)
	listActiveFunc     func(ctx context.Context) ([]*models.ActiveReminder, error)
	updateFunc         func(ctx context.Context, reminder *models.Reminder) error
	updateLastSentFunc func(ctx context.Context, id uint64, sentAt time.Time) error
	deleteFunc         func(ctx context.Context, id uint64) error
}

func (m *mockReminderRepo) Create(ctx context.Context, reminder *models.Reminder) (uint64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, reminder)
	}
	return 0, errors.New("not implemented")
}

func (m *mockReminderRepo) GetByID(ctx context.Context, id uint64) (*models.Reminder, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReminderRepo) ListByUser(ctx context.Context, userID uint64) ([]*models.Reminder, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReminderRepo) ListActive(ctx context.Context) ([]*models.ActiveReminder, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReminderRepo) Update(ctx context.Context, reminder *models.Reminder) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, reminder)
	}
	return errors.New("not implemented")
}

func (m *mockReminderRepo) UpdateLastSent(ctx context.Context, id uint64, sentAt time.Time) error {
	if m.updateLastSentFunc != nil {
		return m.updateLastSentFunc(ctx, id, sentAt)
	}
	return errors.New("not implemented")
}

func (m *mockReminderRepo) Delete(ctx context.Context, id uint64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockIntakeRepo struct {
	createFunc      func(ctx context.Context, intake *models.Intake) (uint64, error)
	updateNotesFunc func(ctx context.Context, id uint64, notes string) error
	listByUserFunc  func(ctx context.Context, userID uint64, limit int32) ([]*models.Intake, error)
}

func (m *mockIntakeRepo) Create(ctx context.Context, intake *models.Intake) (uint64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, intake)
	}
	return 0, errors.New("not implemented")
}

func (m *mockIntakeRepo) UpdateNotes(ctx context.Context, id uint64, notes string) error {
	if m.updateNotesFunc != nil {
		return m.updateNotesFunc(ctx, id, notes)
	}
	return errors.New("not implemented")
}

func (m *mockIntakeRepo) ListByUser(ctx context.Context, userID uint64, limit int32) ([]*models.Intake, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, limit)
	}
	return nil, errors.New("not implemented")
}
