package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Config holds database configuration
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connection wraps the sql.DB pool together with schema management
type Connection struct {
	DB *sql.DB
}

const connectRetries = 5

// NewConnection opens a MySQL connection pool. The initial ping is retried
// with linear backoff so the service survives starting before the database
// container is ready.
func NewConnection(cfg Config) (*Connection, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	database, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for attempt := 1; ; attempt++ {
		if err = database.Ping(); err == nil {
			break
		}
		if attempt == connectRetries {
			database.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", connectRetries, err)
		}
		time.Sleep(time.Second * time.Duration(attempt))
	}

	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 25
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = 5
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}
	database.SetMaxOpenConns(cfg.MaxOpenConns)
	database.SetMaxIdleConns(cfg.MaxIdleConns)
	database.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Connection{DB: database}, nil
}

// Close closes the underlying pool
func (c *Connection) Close() error {
	return c.DB.Close()
}

// Ping verifies the connection is alive
func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}
