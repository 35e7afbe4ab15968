package repository

import (
	"context"
	"database/sql"
	"fmt"

	"medtrack/reminder-service/internal/models"
)

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByChatID(ctx context.Context, chatID int64) (*models.User, error)
	SetChatID(ctx context.Context, userID uint64, chatID int64) error
	ClearChatID(ctx context.Context, chatID int64) error
	UpdateTimezone(ctx context.Context, userID uint64, timezone string) error
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, name, email, password, timezone, chat_id, created_at, updated_at"

func (r *UserRepository) Create(ctx context.Context, user *models.User) (uint64, error) {
	query := `
		INSERT INTO users (name, email, password, timezone)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Password, user.Timezone)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return uint64(id), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE chat_id = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, query, chatID))
}

// SetChatID links a chat identity to the user. Any previous owner of the
// chat identity is unlinked first so a chat maps to at most one account.
func (r *UserRepository) SetChatID(ctx context.Context, userID uint64, chatID int64) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET chat_id = NULL WHERE chat_id = ?", chatID); err != nil {
		return fmt.Errorf("failed to unlink chat id: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET chat_id = ? WHERE id = ?", chatID, userID); err != nil {
		return fmt.Errorf("failed to set chat id: %w", err)
	}
	return nil
}

// ClearChatID unlinks whichever account holds the chat identity. Without it
// a logged-out chat would be re-authenticated from the stored link on its
// next message.
func (r *UserRepository) ClearChatID(ctx context.Context, chatID int64) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET chat_id = NULL WHERE chat_id = ?", chatID); err != nil {
		return fmt.Errorf("failed to clear chat id: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateTimezone(ctx context.Context, userID uint64, timezone string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE users SET timezone = ? WHERE id = ?", timezone, userID); err != nil {
		return fmt.Errorf("failed to update timezone: %w", err)
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Timezone,
		&user.ChatID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}
