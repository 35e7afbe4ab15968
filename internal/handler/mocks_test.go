package handler

import (
	"context"
	"errors"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/pkg/logger"
	"medtrack/reminder-service/pkg/metrics"
)

// Prometheus collectors register globally, so the package shares one instance
var (
	testMetrics = metrics.NewMetrics("handler_test")
	testLogger  = logger.NewLogger("test")
)

type mockAuthService struct {
	registerFunc         func(ctx context.Context, name, email, password, timezone string) (*models.User, error)
	loginFunc            func(ctx context.Context, email, password string) (*models.TokenResponse, error)
	refreshFunc          func(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	logoutFunc           func(ctx context.Context, accessToken string) error
	validateTokenFunc    func(ctx context.Context, accessToken string) (*models.User, error)
	updateTimezoneFunc   func(ctx context.Context, userID uint64, timezone string) error
	authenticateChatFunc func(ctx context.Context, email, password string, chatID int64) (*models.User, error)
	registerChatFunc     func(ctx context.Context, name, email, password string, chatID int64) (*models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password, timezone string) (*models.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, name, email, password, timezone)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, refreshToken)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Logout(ctx context.Context, accessToken string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, accessToken)
	}
	return errors.New("not implemented")
}

func (m *mockAuthService) ValidateToken(ctx context.Context, accessToken string) (*models.User, error) {
	if m.validateTokenFunc != nil {
		return m.validateTokenFunc(ctx, accessToken)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) UpdateTimezone(ctx context.Context, userID uint64, timezone string) error {
	if m.updateTimezoneFunc != nil {
		return m.updateTimezoneFunc(ctx, userID, timezone)
	}
	return errors.New("not implemented")
}

func (m *mockAuthService) AuthenticateChat(ctx context.Context, email, password string, chatID int64) (*models.User, error) {
	if m.authenticateChatFunc != nil {
		return m.authenticateChatFunc(ctx, email, password, chatID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) RegisterChat(ctx context.Context, name, email, password string, chatID int64) (*models.User, error) {
	if m.registerChatFunc != nil {
		return m.registerChatFunc(ctx, name, email, password, chatID)
	}
	return nil, errors.New("not implemented")
}

type mockMedicationService struct {
	createFunc func(ctx context.Context, userID uint64, name, dosage string, description *string) (*models.Medication, error)
	getFunc    func(ctx context.Context, medicationID, userID uint64) (*models.Medication, error)
	listFunc   func(ctx context.Context, userID uint64) ([]*models.Medication, error)
	updateFunc func(ctx context.Context, medicationID, userID uint64, req *models.UpdateMedicationRequest) (*models.Medication, error)
	deleteFunc func(ctx context.Context, medicationID, userID uint64) error
}

func (m *mockMedicationService) Create(ctx context.Context, userID uint64, name, dosage string, description *string) (*models.Medication, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, name, dosage, description)
	}
	return nil, errors.New("not implemented")
}

func (m *mockMedicationService) Get(ctx context.Context, medicationID, userID uint64) (*models.Medication, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, medicationID, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockMedicationService) List(ctx context.Context, userID uint64) ([]*models.Medication, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockMedicationService) Update(ctx context.Context, medicationID, userID uint64, req *models.UpdateMedicationRequest) (*models.Medication, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, medicationID, userID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockMedicationService) Delete(ctx context.Context, medicationID, userID uint64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, medicationID, userID)
	}
	return errors.New("not implemented")
}

type mockReminderService struct {
	createFunc func(ctx context.Context, userID, medicationID uint64, timeOfDay string) (*models.Reminder, error)
	getFunc    func(ctx context.Context, reminderID, userID uint64) (*models.Reminder, error)
	listFunc   func(ctx context.Context, userID uint64) ([]*models.Reminder, error)
	updateFunc func(ctx context.Context, reminderID, userID uint64, req *models.UpdateReminderRequest) (*models.Reminder, error)
	deleteFunc func(ctx context.Context, reminderID, userID uint64) error
}

func (m *mockReminderService) Create(ctx context.Context, userID, medicationID uint64, timeOfDay string) (*models.Reminder, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, medicationID, timeOfDay)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReminderService) Get(ctx context.Context, reminderID, userID uint64) (*models.Reminder, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, reminderID, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReminderService) List(ctx context.Context, userID uint64) ([]*models.Reminder, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReminderService) Update(ctx context.Context, reminderID, userID uint64, req *models.UpdateReminderRequest) (*models.Reminder, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, reminderID, userID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReminderService) Delete(ctx context.Context, reminderID, userID uint64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, reminderID, userID)
	}
	return errors.New("not implemented")
}

type mockIntakeService struct {
	recordFunc   func(ctx context.Context, userID, medicationID uint64, reminderID *uint64, status models.IntakeStatus, notes *string) (*models.Intake, error)
	addNotesFunc func(ctx context.Context, intakeID uint64, notes string) error
	listFunc     func(ctx context.Context, userID uint64, limit int32) ([]*models.Intake, error)
}

func (m *mockIntakeService) Record(ctx context.Context, userID, medicationID uint64, reminderID *uint64, status models.IntakeStatus, notes *string) (*models.Intake, error) {
	if m.recordFunc != nil {
		return m.recordFunc(ctx, userID, medicationID, reminderID, status, notes)
	}
	return nil, errors.New("not implemented")
}

func (m *mockIntakeService) AddNotes(ctx context.Context, intakeID uint64, notes string) error {
	if m.addNotesFunc != nil {
		return m.addNotesFunc(ctx, intakeID, notes)
	}
	return errors.New("not implemented")
}

func (m *mockIntakeService) List(ctx context.Context, userID uint64, limit int32) ([]*models.Intake, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, limit)
	}
	return nil, errors.New("not implemented")
}
