package models

import "time"

// Reminder represents a (medication, time-of-day, chat) notification rule.
// TimeOfDay is a wall-clock "HH:MM" token with no date and no zone; it is
// interpreted in the owning user's configured time zone. LastSentAt is stored
// in UTC; its date converted to the user's zone is the per-day dedup key.
type Reminder struct {
	ID           uint64     `db:"id" json:"id"`
	UserID       uint64     `db:"user_id" json:"user_id"`
	MedicationID uint64     `db:"medication_id" json:"medication_id"`
	ChatID       int64      `db:"chat_id" json:"chat_id"`
	TimeOfDay    string     `db:"time_of_day" json:"time_of_day"`
	Active       bool       `db:"active" json:"active"`
	LastSentAt   *time.Time `db:"last_sent_at" json:"last_sent_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ActiveReminder is the scheduler's read model: a reminder joined with the
// owner's time zone and the medication display fields used in notifications.
type ActiveReminder struct {
	Reminder
	Timezone       string `db:"timezone"`
	MedicationName string `db:"medication_name"`
	Dosage         string `db:"dosage"`
}
