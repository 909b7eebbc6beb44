package postgres

import (
	"context"
	"database/sql"
	"time"

	"bodycomp/internal/domain"
)

// GetByUsername retrieves an account by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM accounts WHERE username = $1",
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID retrieves an account by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM accounts WHERE id = $1",
		id,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates a new account.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	var a domain.Account
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO accounts (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id, username, password_hash, created_at",
		username, passwordHash, time.Now(),
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdatePassword replaces the stored password hash.
func (d *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE accounts SET password_hash = $1 WHERE id = $2",
		passwordHash, id,
	)
	return err
}

// Count returns the total number of accounts.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count)
	return count, err
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token, userAgent, ip string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, account_id, user_agent, ip, expires_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		token, accountID, userAgent, ip, expiresAt, time.Now(),
	)
	return err
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, account_id, user_agent, ip, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.AccountID, &s.UserAgent, &s.IP, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	return err
}
