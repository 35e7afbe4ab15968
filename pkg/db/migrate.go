package db

import (
	"context"
	"fmt"
)

// migrations lists the schema statements applied at startup, in order.
// Statements are idempotent so a restart against an existing database is safe.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(190) NOT NULL,
		password VARCHAR(255) NOT NULL,
		timezone VARCHAR(64) NOT NULL DEFAULT 'UTC',
		chat_id BIGINT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY users_email_unique (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS medications (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(150) NOT NULL,
		dosage VARCHAR(100) NOT NULL,
		description TEXT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY medications_user_id_index (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		medication_id BIGINT UNSIGNED NOT NULL,
		chat_id BIGINT NOT NULL,
		time_of_day CHAR(5) NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		last_sent_at TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY reminders_user_id_index (user_id),
		KEY reminders_active_index (active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS intakes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		medication_id BIGINT UNSIGNED NOT NULL,
		reminder_id BIGINT UNSIGNED NULL,
		status VARCHAR(16) NOT NULL,
		notes TEXT NULL,
		taken_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY intakes_user_id_index (user_id),
		KEY intakes_medication_id_index (medication_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the embedded schema migrations.
func (c *Connection) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
