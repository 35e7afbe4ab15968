package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/telegram"
	"medtrack/reminder-service/pkg/logger"
	"medtrack/reminder-service/pkg/metrics"
)

// Prometheus collectors register globally, so the package shares one instance
var (
	testMetrics = metrics.NewMetrics("bot_test")
	testLogger  = logger.NewLogger("test")
)

// fakeNotifier records outbound calls for assertions
type fakeNotifier struct {
	mu sync.Mutex

	sent    []sentMessage
	edits   []editedMessage
	answers []string

	sendErr       error
	editErr       error
	nextMessageID int64
}

type sentMessage struct {
	ChatID   int64
	Text     string
	Keyboard [][]telegram.Button
}

type editedMessage struct {
	ChatID    int64
	MessageID int64
	Text      string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{nextMessageID: 100}
}

func (f *fakeNotifier) SendMessage(_ context.Context, chatID int64, text string, keyboard [][]telegram.Button) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextMessageID++
	f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: text, Keyboard: keyboard})
	return f.nextMessageID, nil
}

func (f *fakeNotifier) EditMessageText(_ context.Context, chatID, messageID int64, text string, _ [][]telegram.Button) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, editedMessage{ChatID: chatID, MessageID: messageID, Text: text})
	return nil
}

func (f *fakeNotifier) AnswerCallbackQuery(_ context.Context, _, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, text)
	return nil
}

func (f *fakeNotifier) sentMessages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func (f *fakeNotifier) lastSent() sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sentMessage{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeNotifier) lastAnswer() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.answers) == 0 {
		return ""
	}
	return f.answers[len(f.answers)-1]
}

// mockReminderRepo implements the reminder repository with function fields
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
	return nil
}

func (m *mockReminderRepo) Delete(ctx context.Context, id uint64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

// mockUserRepo implements the user repository with function fields
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
	return nil, nil
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

// mockAuthService implements the auth service with function fields
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

// mockMedicationService implements the medication service with function fields
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

// mockReminderService implements the reminder service with function fields
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

// mockIntakeService implements the intake service with function fields
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
