// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"bodycomp/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrAccountNotFound indicates that the account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameTaken indicates that the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrWeakPassword indicates the password does not meet the minimum length.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

const sessionTTL = 24 * time.Hour

// AuthService handles registration, authentication and session management.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if len(username) < 3 {
		return nil, errors.New("username must be at least 3 characters")
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	existing, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.accounts.Create(ctx, username, string(hash))
}

// Login authenticates an account and creates a session.
func (s *AuthService) Login(ctx context.Context, username, password, userAgent, ip string) (string, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil || account == nil {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.createSession(ctx, account.ID, userAgent, ip)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, accountID int64, current, next string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil || account == nil {
		return ErrAccountNotFound
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if len(next) < 8 {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(ctx, accountID, string(hash))
}

// ValidateSession checks if a session token is valid and matches the user agent.
func (s *AuthService) ValidateSession(ctx context.Context, token, userAgent string) (*domain.Account, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	if session.UserAgent != userAgent {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	account, err := s.accounts.GetByID(ctx, session.AccountID)
	if err != nil || account == nil {
		return nil, ErrAccountNotFound
	}

	return account, nil
}

// LoginWithUser creates a session for an already authenticated user (e.g. via SSO).
func (s *AuthService) LoginWithUser(ctx context.Context, username, userAgent, ip string) (string, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if account == nil {
		// Auto-provision. The empty hash never matches a password, so
		// the account stays SSO-only.
		account, err = s.accounts.Create(ctx, username, "")
		if err != nil {
			// Retry lookup in case a concurrent callback created it.
			account, err = s.accounts.GetByUsername(ctx, username)
			if err != nil || account == nil {
				return "", err
			}
		}
	}

	return s.createSession(ctx, account.ID, userAgent, ip)
}

// PurgeExpiredSessions removes expired sessions. Intended for a
// periodic background sweep.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) createSession(ctx context.Context, accountID int64, userAgent, ip string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.sessions.Create(ctx, accountID, token, userAgent, ip, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
