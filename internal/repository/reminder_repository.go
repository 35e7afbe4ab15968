package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"medtrack/reminder-service/internal/models"
)

// ReminderRepositoryInterface defines the interface for reminder repository operations
type ReminderRepositoryInterface interface {
	Create(ctx context.Context, reminder *models.Reminder) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*models.Reminder, error)
	ListByUser(ctx context.Context, userID uint64) ([]*models.Reminder, error)
	ListActive(ctx context.Context) ([]*models.ActiveReminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	UpdateLastSent(ctx context.Context, id uint64, sentAt time.Time) error
	Delete(ctx context.Context, id uint64) error
}

type ReminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(db *sql.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = "id, user_id, medication_id, chat_id, time_of_day, active, last_sent_at, created_at, updated_at"

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) (uint64, error) {
	query := `
		INSERT INTO reminders (user_id, medication_id, chat_id, time_of_day, active)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		reminder.UserID,
		reminder.MedicationID,
		reminder.ChatID,
		reminder.TimeOfDay,
		reminder.Active,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create reminder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get reminder id: %w", err)
	}
	return uint64(id), nil
}

func (r *ReminderRepository) GetByID(ctx context.Context, id uint64) (*models.Reminder, error) {
	query := "SELECT " + reminderColumns + " FROM reminders WHERE id = ?"
	reminder := &models.Reminder{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.MedicationID,
		&reminder.ChatID,
		&reminder.TimeOfDay,
		&reminder.Active,
		&reminder.LastSentAt,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return reminder, nil
}

func (r *ReminderRepository) ListByUser(ctx context.Context, userID uint64) ([]*models.Reminder, error) {
	query := "SELECT " + reminderColumns + " FROM reminders WHERE user_id = ? ORDER BY time_of_day"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.MedicationID,
			&reminder.ChatID,
			&reminder.TimeOfDay,
			&reminder.Active,
			&reminder.LastSentAt,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// ListActive returns every active reminder joined with the owner's time zone
// and the medication display fields. This is the scheduler's per-tick read.
func (r *ReminderRepository) ListActive(ctx context.Context) ([]*models.ActiveReminder, error) {
	query := `
		SELECT r.id, r.user_id, r.medication_id, r.chat_id, r.time_of_day, r.active,
			   r.last_sent_at, r.created_at, r.updated_at,
			   u.timezone, m.name, m.dosage
		FROM reminders r
		INNER JOIN users u ON u.id = r.user_id
		INNER JOIN medications m ON m.id = r.medication_id
		WHERE r.active = 1 AND m.active = 1
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*models.ActiveReminder
	for rows.Next() {
		reminder := &models.ActiveReminder{}
		if err := rows.Scan(
			&reminder.ID,
			&reminder.UserID,
			&reminder.MedicationID,
			&reminder.ChatID,
			&reminder.TimeOfDay,
			&reminder.Active,
			&reminder.LastSentAt,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
			&reminder.Timezone,
			&reminder.MedicationName,
			&reminder.Dosage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan active reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	query := `
		UPDATE reminders
		SET time_of_day = ?, active = ?
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, query,
		reminder.TimeOfDay,
		reminder.Active,
		reminder.ID,
	); err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return nil
}

// UpdateLastSent records a successful send. The timestamp is stored in UTC;
// the per-day dedup key is derived from it at read time.
func (r *ReminderRepository) UpdateLastSent(ctx context.Context, id uint64, sentAt time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE reminders SET last_sent_at = ? WHERE id = ?",
		sentAt.UTC(), id,
	); err != nil {
		return fmt.Errorf("failed to update last sent: %w", err)
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}
