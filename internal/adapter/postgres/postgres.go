// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// NewWithDB wraps an existing connection without migrating. Used by
// tests with a mock driver.
func NewWithDB(s *sql.DB) *DB {
	return &DB{sql: s}
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS accounts (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		"CREATE TABLE IF NOT EXISTS profiles (account_id BIGINT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE, height_cm DOUBLE PRECISION NOT NULL, sex TEXT NOT NULL CHECK(sex IN ('male','female')), birth_date DATE NOT NULL, updated_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS evaluations (" +
			"id UUID PRIMARY KEY, " +
			"account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE, " +
			"eval_date TEXT NOT NULL, " +
			"goal_tag TEXT NOT NULL DEFAULT '', " +
			"weight_kg DOUBLE PRECISION NOT NULL, " +
			"waist_cm DOUBLE PRECISION NOT NULL, " +
			"hip_cm DOUBLE PRECISION NOT NULL, " +
			"neck_cm DOUBLE PRECISION, " +
			"shoulders_cm DOUBLE PRECISION, " +
			"chest_cm DOUBLE PRECISION, " +
			"abdomen_cm DOUBLE PRECISION, " +
			"relaxed_arm_cm DOUBLE PRECISION, " +
			"flexed_arm_cm DOUBLE PRECISION, " +
			"forearm_cm DOUBLE PRECISION, " +
			"thigh_cm DOUBLE PRECISION, " +
			"calf_cm DOUBLE PRECISION, " +
			"result JSONB NOT NULL, " +
			"created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_evaluations_account_date ON evaluations(account_id, eval_date DESC, created_at DESC);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
