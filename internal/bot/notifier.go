package bot

import (
	"context"
	"fmt"

	"medtrack/reminder-service/internal/telegram"
)

// Notifier is the outbound message channel. *telegram.Client satisfies it;
// tests substitute a fake.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard [][]telegram.Button) (int64, error)
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, keyboard [][]telegram.Button) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}

// Callback data uses "action:argument" tokens so button presses can be
// dispatched by a fixed action-name lookup, independent of dialog state.
const (
	actionAckTaken   = "ack_taken"
	actionAckSkip    = "ack_skip"
	actionPickMed    = "pick_med"
	actionAddMed     = "add_med"
	actionAddRem     = "add_rem"
	actionListMeds   = "list_meds"
	actionListRems   = "list_rems"
	actionLogin      = "login"
	actionRegister   = "register"
	actionCancelFlow = "cancel"
)

func callbackData(action string, arg uint64) string {
	return fmt.Sprintf("%s:%d", action, arg)
}

// reminderKeyboard builds the acknowledge/skip affordance attached to every
// reminder notification.
func reminderKeyboard(reminderID uint64) [][]telegram.Button {
	return [][]telegram.Button{{
		{Text: "✅ Taken", Data: callbackData(actionAckTaken, reminderID)},
		{Text: "⏭ Skip", Data: callbackData(actionAckSkip, reminderID)},
	}}
}

// menuKeyboard is the main menu shown on /start for authenticated chats
func menuKeyboard() [][]telegram.Button {
	return [][]telegram.Button{
		{
			{Text: "💊 Add medication", Data: actionAddMed},
			{Text: "⏰ Add reminder", Data: actionAddRem},
		},
		{
			{Text: "📋 My medications", Data: actionListMeds},
			{Text: "🗓 My reminders", Data: actionListRems},
		},
	}
}

// authKeyboard is the entry menu shown to unauthenticated chats
func authKeyboard() [][]telegram.Button {
	return [][]telegram.Button{{
		{Text: "🔑 Log in", Data: actionLogin},
		{Text: "🆕 Register", Data: actionRegister},
	}}
}

func reminderText(medicationName, dosage string) string {
	return fmt.Sprintf("💊 Time to take %s (%s)", medicationName, dosage)
}

func reminderRepeatText(medicationName, dosage string) string {
	return fmt.Sprintf("⏰ Still waiting: take %s (%s)", medicationName, dosage)
}
