package bot

import (
	"context"
	"time"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/repository"
	"medtrack/reminder-service/pkg/logger"
	"medtrack/reminder-service/pkg/metrics"
)

// SchedulerConfig holds the scheduler's timing knobs
type SchedulerConfig struct {
	TickInterval    time.Duration // delivery evaluation cadence
	SweepInterval   time.Duration // resend sweep cadence
	ResendInterval  time.Duration // minimum age before a pending entry is re-notified
	SessionTTL      time.Duration // inactivity threshold for unauthenticated sessions
	NotifierTimeout time.Duration // per-reminder deadline on notifier calls
}

// DefaultSchedulerConfig returns the production cadence: one-minute ticks,
// hourly sweeps.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TickInterval:    time.Minute,
		SweepInterval:   time.Hour,
		ResendInterval:  time.Hour,
		SessionTTL:      24 * time.Hour,
		NotifierTimeout: 10 * time.Second,
	}
}

// Scheduler drives reminder delivery: a perpetual tick loop that evaluates
// every active reminder against the user's local wall clock, and an
// independent sweep loop that re-notifies unacknowledged reminders and
// garbage-collects idle sessions. The two loops share state only through
// the pending tracker and session store.
type Scheduler struct {
	reminderRepo repository.ReminderRepositoryInterface
	notifier     Notifier
	pending      *PendingTracker
	sessions     *SessionStore
	log          *logger.Logger
	metrics      *metrics.Metrics
	cfg          SchedulerConfig

	now func() time.Time // injectable clock for tests
}

// NewScheduler creates a scheduler
func NewScheduler(
	reminderRepo repository.ReminderRepositoryInterface,
	notifier Notifier,
	pending *PendingTracker,
	sessions *SessionStore,
	log *logger.Logger,
	m *metrics.Metrics,
	cfg SchedulerConfig,
) *Scheduler {
	return &Scheduler{
		reminderRepo: reminderRepo,
		notifier:     notifier,
		pending:      pending,
		sessions:     sessions,
		log:          log,
		metrics:      m,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Run executes the delivery tick loop until the context is cancelled.
// Cancellation is only observed between ticks; an in-flight tick completes.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	s.log.Info("reminder scheduler started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// RunSweep executes the resend/session sweep loop until the context is
// cancelled.
func (s *Scheduler) RunSweep(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	s.log.Info("resend sweep started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("resend sweep stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Tick runs one delivery evaluation pass. Exported so tests can trigger
// passes directly without waiting on the ticker.
func (s *Scheduler) Tick(ctx context.Context) {
	s.metrics.SchedulerTicks.Inc()

	reminders, err := s.reminderRepo.ListActive(ctx)
	if err != nil {
		// Fail safe: skip the whole pass rather than act on partial state.
		s.log.WithError(err).Error("failed to load active reminders, skipping tick")
		return
	}

	now := s.now()
	for _, reminder := range reminders {
		s.deliver(ctx, reminder, now)
	}

	s.metrics.PendingEntries.Set(float64(s.pending.Count()))
	s.metrics.ActiveSessions.Set(float64(s.sessions.Count()))
}

// deliver evaluates a single reminder and sends it when due. Failures are
// logged and isolated; they never abort the tick for other reminders.
func (s *Scheduler) deliver(ctx context.Context, reminder *models.ActiveReminder, now time.Time) {
	if reminder.ChatID == 0 {
		// Owner has not linked a chat yet, nothing to deliver to.
		return
	}

	loc, err := time.LoadLocation(reminder.Timezone)
	if err != nil {
		// Zones are validated at configuration time, so this is a
		// misconfiguration, not a transient failure.
		s.log.WithReminderID(reminder.ID).WithError(err).Error("invalid user timezone")
		return
	}

	// At most one send per reminder per local calendar day. The day is
	// derived from the current read of the user's zone.
	if reminder.LastSentAt != nil && SameLocalDay(*reminder.LastSentAt, now, loc) {
		return
	}

	if !MatchesTimeOfDay(reminder.TimeOfDay, loc, now, DefaultTolerance) {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.NotifierTimeout)
	defer cancel()

	text := reminderText(reminder.MedicationName, reminder.Dosage)
	messageID, err := s.notifier.SendMessage(callCtx, reminder.ChatID, text, reminderKeyboard(reminder.ID))
	if err != nil {
		s.metrics.ReminderSendFails.Inc()
		s.log.WithReminderID(reminder.ID).WithError(err).Error("failed to send reminder")
		return
	}

	if err := s.reminderRepo.UpdateLastSent(ctx, reminder.ID, now); err != nil {
		// The notification is out; record the pending entry anyway so an
		// acknowledgment still lands. Worst case is a duplicate send next
		// tick, which the tracker upsert absorbs.
		s.log.WithReminderID(reminder.ID).WithError(err).Error("failed to record send date")
	}

	s.pending.Upsert(&PendingAcknowledgment{
		ReminderID:     reminder.ID,
		ChatID:         reminder.ChatID,
		UserID:         reminder.UserID,
		MedicationID:   reminder.MedicationID,
		MedicationName: reminder.MedicationName,
		Dosage:         reminder.Dosage,
		FirstSentAt:    now,
		LastSentAt:     now,
		MessageID:      messageID,
	})

	s.metrics.RemindersSent.Inc()
	s.log.WithReminderID(reminder.ID).WithChatID(reminder.ChatID).Info("reminder sent")
}

// Sweep re-notifies every pending entry older than the resend interval and
// evicts inactive unauthenticated sessions. Exported for tests.
func (s *Scheduler) Sweep(ctx context.Context) {
	now := s.now()

	for _, entry := range s.pending.ListDueForResend(now, s.cfg.ResendInterval) {
		s.resend(ctx, entry, now)
	}

	if removed := s.sessions.SweepInactive(now, s.cfg.SessionTTL); removed > 0 {
		s.log.WithField("removed", removed).Info("swept inactive sessions")
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.Count()))
}

func (s *Scheduler) resend(ctx context.Context, entry PendingAcknowledgment, now time.Time) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.NotifierTimeout)
	defer cancel()

	text := reminderRepeatText(entry.MedicationName, entry.Dosage)
	keyboard := reminderKeyboard(entry.ReminderID)

	// Edit the original message instead of spamming a new one; fall back
	// to a fresh send when the original can no longer be edited.
	err := s.notifier.EditMessageText(callCtx, entry.ChatID, entry.MessageID, text, keyboard)
	var newMessageID int64
	if err != nil {
		newMessageID, err = s.notifier.SendMessage(callCtx, entry.ChatID, text, keyboard)
		if err != nil {
			s.metrics.ReminderSendFails.Inc()
			s.log.WithReminderID(entry.ReminderID).WithError(err).Error("failed to resend reminder")
			return
		}
	}

	s.pending.UpdateLastSent(entry.ReminderID, now, newMessageID)
	s.metrics.RemindersResent.Inc()
	s.log.WithReminderID(entry.ReminderID).Info("reminder resent")
}
