package bot

import (
	"context"
	"strings"

	"medtrack/reminder-service/internal/repository"
	"medtrack/reminder-service/internal/service"
	"medtrack/reminder-service/internal/telegram"
	"medtrack/reminder-service/pkg/logger"
	"medtrack/reminder-service/pkg/metrics"
)

// Control tokens recognized in every dialog state
const (
	tokenCancel = "/cancel"
	tokenSkip   = "/skip"
)

// skipSentinel marks an optional field the user chose to leave empty
const skipSentinel = "-"

// Engine interprets inbound updates against per-chat session state and
// dispatches the resulting transitions to the application services.
type Engine struct {
	sessions    *SessionStore
	pending     *PendingTracker
	notifier    Notifier
	userRepo    repository.UserRepositoryInterface
	auth        service.AuthService
	medications service.MedicationService
	reminders   service.ReminderService
	intakes     service.IntakeService
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// NewEngine creates a conversation engine
func NewEngine(
	sessions *SessionStore,
	pending *PendingTracker,
	notifier Notifier,
	userRepo repository.UserRepositoryInterface,
	auth service.AuthService,
	medications service.MedicationService,
	reminders service.ReminderService,
	intakes service.IntakeService,
	log *logger.Logger,
	m *metrics.Metrics,
) *Engine {
	return &Engine{
		sessions:    sessions,
		pending:     pending,
		notifier:    notifier,
		userRepo:    userRepo,
		auth:        auth,
		medications: medications,
		reminders:   reminders,
		intakes:     intakes,
		log:         log,
		metrics:     m,
	}
}

// HandleUpdate is the inbound entry point, one call per received update.
// It never panics the handling task: malformed input is logged and dropped.
func (e *Engine) HandleUpdate(ctx context.Context, update telegram.Update) {
	defer func() {
		if r := recover(); r != nil {
			e.log.WithField("panic", r).Error("recovered while handling update")
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		e.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		e.handleText(ctx, update.Message.Chat.ID, update.Message.Text)
	}
}

// handleText interprets a free-text message solely according to the chat's
// current dialog state.
func (e *Engine) handleText(ctx context.Context, chatID int64, text string) {
	session := e.sessionFor(ctx, chatID)
	input := strings.TrimSpace(text)

	// Cancel wins over state-specific parsing in every state.
	if strings.EqualFold(input, tokenCancel) {
		e.sessions.ResetState(chatID)
		e.reply(ctx, chatID, "Cancelled.")
		return
	}

	switch session.State {
	case StateIdle:
		e.handleCommand(ctx, session, input)
	case StateAwaitingEmail:
		e.handleLoginEmail(ctx, session, input)
	case StateAwaitingPassword:
		e.handleLoginPassword(ctx, session, input)
	case StateAwaitingRegisterName:
		e.handleRegisterName(ctx, session, input)
	case StateAwaitingRegisterEmail:
		e.handleRegisterEmail(ctx, session, input)
	case StateAwaitingRegisterPassword:
		e.handleRegisterPassword(ctx, session, input)
	case StateAwaitingMedicationName:
		e.handleMedicationName(ctx, session, input)
	case StateAwaitingMedicationDosage:
		e.handleMedicationDosage(ctx, session, input)
	case StateAwaitingMedicationDescription:
		e.handleMedicationDescription(ctx, session, input)
	case StateAwaitingReminderTime:
		e.handleReminderTime(ctx, session, input)
	case StateAwaitingIntakeNotes:
		e.handleIntakeNotes(ctx, session, input)
	default:
		e.log.WithChatID(chatID).WithField("state", session.State).Error("unknown dialog state")
		e.sessions.ResetState(chatID)
	}
}

// handleCommand routes Idle-state input by command token
func (e *Engine) handleCommand(ctx context.Context, session *Session, input string) {
	switch strings.ToLower(input) {
	case "/start", "/help":
		e.sendWelcome(ctx, session)
	case "/login":
		e.startLoginFlow(ctx, session.ChatID, "")
	case "/register":
		e.startRegisterFlow(ctx, session)
	case "/addmed", "add medication":
		if !e.requireAuth(ctx, session) {
			return
		}
		e.startMedicationFlow(ctx, session)
	case "/addreminder", "add reminder":
		if !e.requireAuth(ctx, session) {
			return
		}
		e.startReminderFlow(ctx, session)
	case "/meds":
		if !e.requireAuth(ctx, session) {
			return
		}
		e.sendMedicationList(ctx, session)
	case "/reminders":
		if !e.requireAuth(ctx, session) {
			return
		}
		e.sendReminderList(ctx, session)
	case "/history":
		if !e.requireAuth(ctx, session) {
			return
		}
		e.sendIntakeHistory(ctx, session)
	case "/logout":
		// The stored chat link must go too, or the next message would
		// silently re-authenticate the chat from it.
		if err := e.userRepo.ClearChatID(ctx, session.ChatID); err != nil {
			e.log.WithChatID(session.ChatID).WithError(err).Error("failed to unlink chat")
			e.reply(ctx, session.ChatID, "Couldn't log you out, please try again.")
			return
		}
		e.sessions.Logout(session.ChatID)
		e.reply(ctx, session.ChatID, "You have been logged out.")
	default:
		e.reply(ctx, session.ChatID, "I didn't understand that. Send /help to see what I can do.")
	}
}

// sessionFor loads the chat's session, restoring the account link from the
// database when a previously linked chat comes back after a restart.
func (e *Engine) sessionFor(ctx context.Context, chatID int64) *Session {
	session := e.sessions.GetOrCreate(chatID)
	if session.Authenticated() {
		return session
	}

	user, err := e.userRepo.GetByChatID(ctx, chatID)
	if err != nil {
		e.log.WithChatID(chatID).WithError(err).Error("failed to restore session link")
		return session
	}
	if user != nil {
		e.sessions.Authenticate(chatID, user.ID)
		return e.sessions.GetOrCreate(chatID)
	}
	return session
}

// requireAuth gates an action on an authenticated session. When the chat is
// not authenticated it short-circuits into the login flow and reports false.
func (e *Engine) requireAuth(ctx context.Context, session *Session) bool {
	if session.Authenticated() {
		return true
	}
	e.startLoginFlow(ctx, session.ChatID, "You need to log in first.")
	return false
}

func (e *Engine) sendWelcome(ctx context.Context, session *Session) {
	if session.Authenticated() {
		e.replyWithKeyboard(ctx, session.ChatID,
			"What would you like to do?", menuKeyboard())
		return
	}
	e.replyWithKeyboard(ctx, session.ChatID,
		"Hi! I help you keep track of your medications and remind you when it's time to take them.",
		authKeyboard())
}

func (e *Engine) reply(ctx context.Context, chatID int64, text string) {
	if _, err := e.notifier.SendMessage(ctx, chatID, text, nil); err != nil {
		e.log.WithChatID(chatID).WithError(err).Error("failed to send reply")
	}
}

func (e *Engine) replyWithKeyboard(ctx context.Context, chatID int64, text string, keyboard [][]telegram.Button) {
	if _, err := e.notifier.SendMessage(ctx, chatID, text, keyboard); err != nil {
		e.log.WithChatID(chatID).WithError(err).Error("failed to send reply")
	}
}
