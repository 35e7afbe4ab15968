package repository

import (
	"context"
	"database/sql"
	"fmt"

	"medtrack/reminder-service/internal/models"
)

// IntakeRepositoryInterface defines the interface for intake repository operations
type IntakeRepositoryInterface interface {
	Create(ctx context.Context, intake *models.Intake) (uint64, error)
	UpdateNotes(ctx context.Context, id uint64, notes string) error
	ListByUser(ctx context.Context, userID uint64, limit int32) ([]*models.Intake, error)
}

type IntakeRepository struct {
	db *sql.DB
}

func NewIntakeRepository(db *sql.DB) *IntakeRepository {
	return &IntakeRepository{db: db}
}

func (r *IntakeRepository) Create(ctx context.Context, intake *models.Intake) (uint64, error) {
	query := `
		INSERT INTO intakes (user_id, medication_id, reminder_id, status, notes, taken_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		intake.UserID,
		intake.MedicationID,
		intake.ReminderID,
		intake.Status,
		intake.Notes,
		intake.TakenAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create intake: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get intake id: %w", err)
	}
	return uint64(id), nil
}

func (r *IntakeRepository) UpdateNotes(ctx context.Context, id uint64, notes string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE intakes SET notes = ? WHERE id = ?", notes, id); err != nil {
		return fmt.Errorf("failed to update intake notes: %w", err)
	}
	return nil
}

func (r *IntakeRepository) ListByUser(ctx context.Context, userID uint64, limit int32) ([]*models.Intake, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, user_id, medication_id, reminder_id, status, notes, taken_at
		FROM intakes
		WHERE user_id = ?
		ORDER BY taken_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list intakes: %w", err)
	}
	defer rows.Close()

	var intakes []*models.Intake
	for rows.Next() {
		intake := &models.Intake{}
		if err := rows.Scan(
			&intake.ID,
			&intake.UserID,
			&intake.MedicationID,
			&intake.ReminderID,
			&intake.Status,
			&intake.Notes,
			&intake.TakenAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan intake: %w", err)
		}
		intakes = append(intakes, intake)
	}
	return intakes, rows.Err()
}
