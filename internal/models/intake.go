package models

import "time"

// IntakeStatus describes how the user responded to a reminder
type IntakeStatus string

const (
	IntakeTaken   IntakeStatus = "taken"
	IntakeSkipped IntakeStatus = "skipped"
)

// Intake records a single medication intake event
type Intake struct {
	ID           uint64       `db:"id" json:"id"`
	UserID       uint64       `db:"user_id" json:"user_id"`
	MedicationID uint64       `db:"medication_id" json:"medication_id"`
	ReminderID   *uint64      `db:"reminder_id" json:"reminder_id,omitempty"`
	Status       IntakeStatus `db:"status" json:"status"`
	Notes        *string      `db:"notes" json:"notes,omitempty"`
	TakenAt      time.Time    `db:"taken_at" json:"taken_at"`
}
