package bot

import (
	"context"
	"strconv"
	"strings"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/telegram"
)

// handleCallback dispatches a button press. Callbacks are interpreted by
// their action token, independent of the chat's dialog state, so a stale
// reminder button still works days later.
func (e *Engine) handleCallback(ctx context.Context, query *telegram.CallbackQuery) {
	if query.Message == nil {
		e.log.WithField("callback_id", query.ID).Error("callback without originating message")
		return
	}
	chatID := query.Message.Chat.ID
	session := e.sessionFor(ctx, chatID)

	action, arg := splitCallbackData(query.Data)
	switch action {
	case actionAckTaken:
		e.handleAcknowledgment(ctx, query, arg, models.IntakeTaken)
	case actionAckSkip:
		e.handleAcknowledgment(ctx, query, arg, models.IntakeSkipped)
	case actionPickMed:
		e.handleMedicationPicked(ctx, query, session, arg)
	case actionAddMed:
		e.answerCallback(ctx, query.ID, "")
		if !e.requireAuth(ctx, session) {
			return
		}
		e.startMedicationFlow(ctx, session)
	case actionAddRem:
		e.answerCallback(ctx, query.ID, "")
		if !e.requireAuth(ctx, session) {
			return
		}
		e.startReminderFlow(ctx, session)
	case actionListMeds:
		e.answerCallback(ctx, query.ID, "")
		if !e.requireAuth(ctx, session) {
			return
		}
		e.sendMedicationList(ctx, session)
	case actionListRems:
		e.answerCallback(ctx, query.ID, "")
		if !e.requireAuth(ctx, session) {
			return
		}
		e.sendReminderList(ctx, session)
	case actionLogin:
		e.answerCallback(ctx, query.ID, "")
		e.startLoginFlow(ctx, chatID, "")
	case actionRegister:
		e.answerCallback(ctx, query.ID, "")
		e.startRegisterFlow(ctx, session)
	case actionCancelFlow:
		e.answerCallback(ctx, query.ID, "Cancelled")
		e.sessions.ResetState(chatID)
	default:
		e.log.WithChatID(chatID).WithField("data", query.Data).Error("unknown callback action")
		e.answerCallback(ctx, query.ID, "")
	}
}

// handleAcknowledgment resolves a Taken/Skip button press. Removing the
// pending entry first makes the acknowledgment idempotent: the second press
// of a double click finds nothing and records nothing.
func (e *Engine) handleAcknowledgment(ctx context.Context, query *telegram.CallbackQuery, arg string, status models.IntakeStatus) {
	chatID := query.Message.Chat.ID

	reminderID, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		e.log.WithChatID(chatID).WithField("data", query.Data).Error("malformed acknowledgment payload")
		e.answerCallback(ctx, query.ID, "")
		return
	}

	entry, existed := e.pending.Remove(reminderID)
	if !existed {
		e.answerCallback(ctx, query.ID, "Already acknowledged")
		return
	}

	// Record against the snapshot captured at send time, not the current
	// session: the reminder belongs to whoever it was sent to.
	rid := reminderID
	intake, err := e.intakes.Record(ctx, entry.UserID, entry.MedicationID, &rid, status, nil)
	if err != nil {
		e.log.WithChatID(chatID).WithReminderID(reminderID).WithError(err).Error("failed to record intake")
		// Put the entry back so the user can retry instead of losing the ack.
		e.pending.Upsert(entry)
		e.answerCallback(ctx, query.ID, "Couldn't save that, please try again")
		return
	}
	e.metrics.Acknowledgments.WithLabelValues(string(status)).Inc()

	if status == models.IntakeTaken {
		e.answerCallback(ctx, query.ID, "Recorded")
		e.editAcknowledged(ctx, entry, "✅ Taken: "+entry.MedicationName)
		e.sessions.SetState(chatID, StateAwaitingIntakeNotes)
		e.sessions.SetValue(chatID, keyIntakeID, strconv.FormatUint(intake.ID, 10))
		e.reply(ctx, chatID, "Any notes about this intake? Send /skip if not.")
		return
	}

	e.answerCallback(ctx, query.ID, "Skipped")
	e.editAcknowledged(ctx, entry, "⏭ Skipped: "+entry.MedicationName)
}

// handleMedicationPicked is the selection step of the add-reminder flow
func (e *Engine) handleMedicationPicked(ctx context.Context, query *telegram.CallbackQuery, session *Session, arg string) {
	e.answerCallback(ctx, query.ID, "")
	if !e.requireAuth(ctx, session) {
		return
	}
	if _, err := strconv.ParseUint(arg, 10, 64); err != nil {
		e.log.WithChatID(session.ChatID).WithField("data", query.Data).Error("malformed medication selection")
		return
	}

	e.sessions.SetValue(session.ChatID, keyReminderMedID, arg)
	e.sessions.SetState(session.ChatID, StateAwaitingReminderTime)
	e.reply(ctx, session.ChatID, "At what time? Send it as HH:MM, e.g. 08:00.")
}

// editAcknowledged rewrites the reminder message so its buttons disappear
// once the reminder is resolved. Edit failures are cosmetic.
func (e *Engine) editAcknowledged(ctx context.Context, entry *PendingAcknowledgment, text string) {
	if err := e.notifier.EditMessageText(ctx, entry.ChatID, entry.MessageID, text, nil); err != nil {
		e.log.WithChatID(entry.ChatID).WithError(err).Warn("failed to edit acknowledged reminder")
	}
}

func (e *Engine) answerCallback(ctx context.Context, callbackID, text string) {
	if err := e.notifier.AnswerCallbackQuery(ctx, callbackID, text); err != nil {
		e.log.WithField("callback_id", callbackID).WithError(err).Warn("failed to answer callback")
	}
}

func splitCallbackData(data string) (action, arg string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
