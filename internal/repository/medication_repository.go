package repository

import (
	"context"
	"database/sql"
	"fmt"

	"medtrack/reminder-service/internal/models"
)

// MedicationRepositoryInterface defines the interface for medication repository operations
type MedicationRepositoryInterface interface {
	Create(ctx context.Context, medication *models.Medication) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*models.Medication, error)
	ListByUser(ctx context.Context, userID uint64) ([]*models.Medication, error)
	Update(ctx context.Context, medication *models.Medication) error
	Delete(ctx context.Context, id uint64) error
}

type MedicationRepository struct {
	db *sql.DB
}

func NewMedicationRepository(db *sql.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

const medicationColumns = "id, user_id, name, dosage, description, active, created_at, updated_at"

func (r *MedicationRepository) Create(ctx context.Context, medication *models.Medication) (uint64, error) {
	query := `
		INSERT INTO medications (user_id, name, dosage, description, active)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		medication.UserID,
		medication.Name,
		medication.Dosage,
		medication.Description,
		medication.Active,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create medication: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get medication id: %w", err)
	}
	return uint64(id), nil
}

func (r *MedicationRepository) GetByID(ctx context.Context, id uint64) (*models.Medication, error) {
	query := "SELECT " + medicationColumns + " FROM medications WHERE id = ?"
	medication := &models.Medication{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&medication.ID,
		&medication.UserID,
		&medication.Name,
		&medication.Dosage,
		&medication.Description,
		&medication.Active,
		&medication.CreatedAt,
		&medication.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return medication, nil
}

func (r *MedicationRepository) ListByUser(ctx context.Context, userID uint64) ([]*models.Medication, error) {
	query := "SELECT " + medicationColumns + " FROM medications WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	defer rows.Close()

	var medications []*models.Medication
	for rows.Next() {
		medication := &models.Medication{}
		if err := rows.Scan(
			&medication.ID,
			&medication.UserID,
			&medication.Name,
			&medication.Dosage,
			&medication.Description,
			&medication.Active,
			&medication.CreatedAt,
			&medication.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		medications = append(medications, medication)
	}
	return medications, rows.Err()
}

func (r *MedicationRepository) Update(ctx context.Context, medication *models.Medication) error {
	query := `
		UPDATE medications
		SET name = ?, dosage = ?, description = ?, active = ?
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, query,
		medication.Name,
		medication.Dosage,
		medication.Description,
		medication.Active,
		medication.ID,
	); err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}
	return nil
}

func (r *MedicationRepository) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM medications WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}
