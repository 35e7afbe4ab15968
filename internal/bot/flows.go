package bot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"medtrack/reminder-service/internal/models"
	"medtrack/reminder-service/internal/service"
	"medtrack/reminder-service/internal/telegram"
	"medtrack/reminder-service/pkg/helpers"
)

// Scratch keys used by the multi-step flows
const (
	keyLoginEmail    = "login_email"
	keyRegisterName  = "register_name"
	keyRegisterEmail = "register_email"
	keyMedName       = "medication_name"
	keyMedDosage     = "medication_dosage"
	keyReminderMedID = "reminder_medication_id"
	keyIntakeID      = "intake_id"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minPasswordLen = 8
	maxNameLen     = 100
	maxMedNameLen  = 150
	maxDosageLen   = 100
	maxNotesLen    = 1000
)

// --- login flow -------------------------------------------------------------

func (e *Engine) startLoginFlow(ctx context.Context, chatID int64, prefix string) {
	e.sessions.ResetState(chatID)
	e.sessions.SetState(chatID, StateAwaitingEmail)
	text := "Please enter your email address."
	if prefix != "" {
		text = prefix + " " + text
	}
	e.reply(ctx, chatID, text)
}

func (e *Engine) handleLoginEmail(ctx context.Context, session *Session, input string) {
	if !emailRegex.MatchString(input) {
		e.reply(ctx, session.ChatID, "That doesn't look like an email address. Please enter your email.")
		return
	}
	e.sessions.SetValue(session.ChatID, keyLoginEmail, strings.ToLower(input))
	e.sessions.SetState(session.ChatID, StateAwaitingPassword)
	e.reply(ctx, session.ChatID, "Now enter your password.")
}

func (e *Engine) handleLoginPassword(ctx context.Context, session *Session, input string) {
	email, ok := e.sessions.GetValue(session.ChatID, keyLoginEmail)
	if !ok {
		// Stale message after a session reset: restart the flow.
		e.startLoginFlow(ctx, session.ChatID, "Let's start over.")
		return
	}

	user, err := e.auth.AuthenticateChat(ctx, email, input, session.ChatID)
	e.sessions.ResetState(session.ChatID)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			e.reply(ctx, session.ChatID, "Wrong email or password. Send /login to try again.")
			return
		}
		e.log.WithChatID(session.ChatID).WithError(err).Error("chat login failed")
		e.reply(ctx, session.ChatID, "Something went wrong, please try again later.")
		return
	}

	e.sessions.Authenticate(session.ChatID, user.ID)
	e.replyWithKeyboard(ctx, session.ChatID,
		fmt.Sprintf("Welcome back, %s!", user.Name), menuKeyboard())
}

// --- registration flow ------------------------------------------------------

func (e *Engine) startRegisterFlow(ctx context.Context, session *Session) {
	e.sessions.ResetState(session.ChatID)
	e.sessions.SetState(session.ChatID, StateAwaitingRegisterName)
	e.reply(ctx, session.ChatID, "Let's create your account. What's your name?")
}

func (e *Engine) handleRegisterName(ctx context.Context, session *Session, input string) {
	if len(input) < 2 || len(input) > maxNameLen {
		e.reply(ctx, session.ChatID, "Please enter a name between 2 and 100 characters.")
		return
	}
	e.sessions.SetValue(session.ChatID, keyRegisterName, input)
	e.sessions.SetState(session.ChatID, StateAwaitingRegisterEmail)
	e.reply(ctx, session.ChatID, "What's your email address?")
}

func (e *Engine) handleRegisterEmail(ctx context.Context, session *Session, input string) {
	if !emailRegex.MatchString(input) {
		e.reply(ctx, session.ChatID, "That doesn't look like an email address. Please enter your email.")
		return
	}
	e.sessions.SetValue(session.ChatID, keyRegisterEmail, strings.ToLower(input))
	e.sessions.SetState(session.ChatID, StateAwaitingRegisterPassword)
	e.reply(ctx, session.ChatID, "Choose a password (at least 8 characters).")
}

func (e *Engine) handleRegisterPassword(ctx context.Context, session *Session, input string) {
	if len(input) < minPasswordLen {
		e.reply(ctx, session.ChatID, "Password must be at least 8 characters. Try another one.")
		return
	}

	name, okName := e.sessions.GetValue(session.ChatID, keyRegisterName)
	email, okEmail := e.sessions.GetValue(session.ChatID, keyRegisterEmail)
	if !okName || !okEmail {
		e.startRegisterFlow(ctx, session)
		return
	}

	user, err := e.auth.RegisterChat(ctx, name, email, input, session.ChatID)
	e.sessions.ResetState(session.ChatID)
	if err != nil {
		if err == service.ErrEmailTaken {
			e.reply(ctx, session.ChatID, "That email is already registered. Send /login to sign in.")
			return
		}
		e.log.WithChatID(session.ChatID).WithError(err).Error("chat registration failed")
		e.reply(ctx, session.ChatID, "Something went wrong, please try again later.")
		return
	}

	e.sessions.Authenticate(session.ChatID, user.ID)
	e.replyWithKeyboard(ctx, session.ChatID,
		fmt.Sprintf("Account created. Welcome, %s!", user.Name), menuKeyboard())
}

// --- add-medication flow ----------------------------------------------------

func (e *Engine) startMedicationFlow(ctx context.Context, session *Session) {
	e.sessions.ResetState(session.ChatID)
	e.sessions.SetState(session.ChatID, StateAwaitingMedicationName)
	e.reply(ctx, session.ChatID, "What's the medication called?")
}

func (e *Engine) handleMedicationName(ctx context.Context, session *Session, input string) {
	if input == "" || len(input) > maxMedNameLen {
		e.reply(ctx, session.ChatID, "Please enter a medication name up to 150 characters.")
		return
	}
	e.sessions.SetValue(session.ChatID, keyMedName, input)
	e.sessions.SetState(session.ChatID, StateAwaitingMedicationDosage)
	e.reply(ctx, session.ChatID, "What's the dosage? (e.g. \"200mg\", \"2 pills\")")
}

func (e *Engine) handleMedicationDosage(ctx context.Context, session *Session, input string) {
	if input == "" || len(input) > maxDosageLen {
		e.reply(ctx, session.ChatID, "Please enter a dosage up to 100 characters.")
		return
	}
	e.sessions.SetValue(session.ChatID, keyMedDosage, input)
	e.sessions.SetState(session.ChatID, StateAwaitingMedicationDescription)
	e.reply(ctx, session.ChatID, "Any description or instructions? Send /skip to leave it empty.")
}

func (e *Engine) handleMedicationDescription(ctx context.Context, session *Session, input string) {
	if strings.EqualFold(input, tokenSkip) {
		input = skipSentinel
	}
	if input == "" || len(input) > maxNotesLen {
		e.reply(ctx, session.ChatID, "Please keep the description under 1000 characters, or send /skip.")
		return
	}

	name, okName := e.sessions.GetValue(session.ChatID, keyMedName)
	dosage, okDosage := e.sessions.GetValue(session.ChatID, keyMedDosage)
	if !okName || !okDosage {
		e.startMedicationFlow(ctx, session)
		return
	}

	userID := session.UserID
	e.sessions.ResetState(session.ChatID)
	if userID == nil {
		e.startLoginFlow(ctx, session.ChatID, "Your session expired.")
		return
	}

	var description *string
	if input != skipSentinel {
		description = &input
	}

	medication, err := e.medications.Create(ctx, *userID, name, dosage, description)
	if err != nil {
		e.log.WithChatID(session.ChatID).WithError(err).Error("failed to create medication")
		e.reply(ctx, session.ChatID, "Couldn't save the medication, please try again later.")
		return
	}

	e.reply(ctx, session.ChatID,
		fmt.Sprintf("Saved %s (%s). Send /addreminder to schedule it.", medication.Name, medication.Dosage))
}

// --- add-reminder flow ------------------------------------------------------

// startReminderFlow shows the medication picker; the selection itself
// arrives as a button callback, not free text.
func (e *Engine) startReminderFlow(ctx context.Context, session *Session) {
	medications, err := e.medications.List(ctx, *session.UserID)
	if err != nil {
		e.log.WithChatID(session.ChatID).WithError(err).Error("failed to list medications")
		e.reply(ctx, session.ChatID, "Couldn't load your medications, please try again later.")
		return
	}
	if len(medications) == 0 {
		e.reply(ctx, session.ChatID, "You have no medications yet. Send /addmed to add one first.")
		return
	}

	var keyboard [][]telegram.Button
	for _, m := range medications {
		if !m.Active {
			continue
		}
		keyboard = append(keyboard, []telegram.Button{{
			Text: fmt.Sprintf("%s (%s)", m.Name, m.Dosage),
			Data: callbackData(actionPickMed, m.ID),
		}})
	}
	e.replyWithKeyboard(ctx, session.ChatID, "Which medication is this reminder for?", keyboard)
}

func (e *Engine) handleReminderTime(ctx context.Context, session *Session, input string) {
	if _, _, ok := helpers.ParseTimeOfDay(input); !ok {
		e.reply(ctx, session.ChatID, "Please send a time like 08:00 or 21:30.")
		return
	}

	medIDRaw, ok := e.sessions.GetValue(session.ChatID, keyReminderMedID)
	if !ok {
		// Selection lost (session reset mid-flight): restart at the picker.
		e.sessions.ResetState(session.ChatID)
		e.startReminderFlow(ctx, session)
		return
	}
	medicationID, err := strconv.ParseUint(medIDRaw, 10, 64)
	if err != nil {
		e.log.WithChatID(session.ChatID).WithError(err).Error("corrupt medication id in scratch data")
		e.sessions.ResetState(session.ChatID)
		return
	}

	userID := session.UserID
	e.sessions.ResetState(session.ChatID)
	if userID == nil {
		e.startLoginFlow(ctx, session.ChatID, "Your session expired.")
		return
	}

	reminder, err := e.reminders.Create(ctx, *userID, medicationID, input)
	if err != nil {
		switch err {
		case service.ErrMedicationNotFound, service.ErrNotOwner:
			e.reply(ctx, session.ChatID, "That medication doesn't exist anymore.")
		case service.ErrInvalidTimeOfDay:
			e.reply(ctx, session.ChatID, "Please send a time like 08:00 or 21:30.")
		default:
			e.log.WithChatID(session.ChatID).WithError(err).Error("failed to create reminder")
			e.reply(ctx, session.ChatID, "Couldn't save the reminder, please try again later.")
		}
		return
	}

	e.reply(ctx, session.ChatID,
		fmt.Sprintf("Done! I'll remind you every day at %s.", reminder.TimeOfDay))
}

// --- intake notes -----------------------------------------------------------

func (e *Engine) handleIntakeNotes(ctx context.Context, session *Session, input string) {
	intakeIDRaw, ok := e.sessions.GetValue(session.ChatID, keyIntakeID)
	e.sessions.ResetState(session.ChatID)
	if !ok {
		e.reply(ctx, session.ChatID, "Nothing to attach notes to anymore.")
		return
	}

	if strings.EqualFold(input, tokenSkip) {
		e.reply(ctx, session.ChatID, "Okay, no notes.")
		return
	}
	if input == "" || len(input) > maxNotesLen {
		// Re-enter the state so the user can retry within bounds.
		e.sessions.SetState(session.ChatID, StateAwaitingIntakeNotes)
		e.sessions.SetValue(session.ChatID, keyIntakeID, intakeIDRaw)
		e.reply(ctx, session.ChatID, "Please keep notes under 1000 characters, or send /skip.")
		return
	}

	intakeID, err := strconv.ParseUint(intakeIDRaw, 10, 64)
	if err != nil {
		e.log.WithChatID(session.ChatID).WithError(err).Error("corrupt intake id in scratch data")
		return
	}

	if err := e.intakes.AddNotes(ctx, intakeID, input); err != nil {
		e.log.WithChatID(session.ChatID).WithError(err).Error("failed to save intake notes")
		e.reply(ctx, session.ChatID, "Couldn't save the notes, sorry.")
		return
	}
	e.reply(ctx, session.ChatID, "Notes saved.")
}

// --- read-only lists --------------------------------------------------------

func (e *Engine) sendMedicationList(ctx context.Context, session *Session) {
	medications, err := e.medications.List(ctx, *session.UserID)
	if err != nil {
		e.log.WithChatID(session.ChatID).WithError(err).Error("failed to list medications")
		e.reply(ctx, session.ChatID, "Couldn't load your medications, please try again later.")
		return
	}
	if len(medications) == 0 {
		e.reply(ctx, session.ChatID, "You have no medications yet. Send /addmed to add one.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Your medications:\n")
	for _, m := range medications {
		sb.WriteString(fmt.Sprintf("• %s — %s", m.Name, m.Dosage))
		if !m.Active {
			sb.WriteString(" (inactive)")
		}
		sb.WriteString("\n")
	}
	e.reply(ctx, session.ChatID, sb.String())
}

func (e *Engine) sendReminderList(ctx context.Context, session *Session) {
	reminders, err := e.reminders.List(ctx, *session.UserID)
	if err != nil {
		e.log.WithChatID(session.ChatID).WithError(err).Error("failed to list reminders")
		e.reply(ctx, session.ChatID, "Couldn't load your reminders, please try again later.")
		return
	}
	if len(reminders) == 0 {
		e.reply(ctx, session.ChatID, "You have no reminders yet. Send /addreminder to create one.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Your reminders:\n")
	for _, r := range reminders {
		sb.WriteString(fmt.Sprintf("• #%d daily at %s", r.ID, r.TimeOfDay))
		if !r.Active {
			sb.WriteString(" (paused)")
		}
		sb.WriteString("\n")
	}
	e.reply(ctx, session.ChatID, sb.String())
}

func (e *Engine) sendIntakeHistory(ctx context.Context, session *Session) {
	intakes, err := e.intakes.List(ctx, *session.UserID, 10)
	if err != nil {
		e.log.WithChatID(session.ChatID).WithError(err).Error("failed to list intakes")
		e.reply(ctx, session.ChatID, "Couldn't load your history, please try again later.")
		return
	}
	if len(intakes) == 0 {
		e.reply(ctx, session.ChatID, "No intakes recorded yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Recent intakes:\n")
	for _, in := range intakes {
		mark := "✅"
		if in.Status == models.IntakeSkipped {
			mark = "⏭"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, in.TakenAt.Format("2006-01-02 15:04")))
	}
	e.reply(ctx, session.ChatID, sb.String())
}
