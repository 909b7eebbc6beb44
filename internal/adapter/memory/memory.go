// Package memory implements the domain repositories in memory for
// development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"bodycomp/internal/domain"
)

// DB implements every domain repository on in-memory maps.
type DB struct {
	mu          sync.Mutex
	accounts    []*domain.Account
	sessions    map[string]*domain.Session
	profiles    map[int64]domain.Profile
	evaluations map[string]domain.Evaluation

	accountIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions:    make(map[string]*domain.Session),
		profiles:    make(map[int64]domain.Profile),
		evaluations: make(map[string]domain.Evaluation),
	}
}

// Ensure interfaces are met.
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.EvaluationRepository = (*DB)(nil)
var _ domain.StatsRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- AccountRepository ---

// GetByUsername retrieves an account by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

// GetByID retrieves an account by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

// Create creates a new account.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			return nil, errors.New("account already exists")
		}
	}

	db.accountIDCounter++
	a := &domain.Account{
		ID:           db.accountIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.accounts = append(db.accounts, a)
	return a, nil
}

// UpdatePassword replaces the stored password hash.
func (db *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.ID == id {
			a.PasswordHash = passwordHash
			return nil
		}
	}
	return errors.New("account not found")
}

// Count returns the total number of accounts.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.accounts), nil
}

// --- ProfileRepository ---

// GetProfile retrieves the profile for an account.
func (db *DB) GetProfile(ctx context.Context, accountID int64) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if p, ok := db.profiles[accountID]; ok {
		ret := p
		return &ret, nil
	}
	return nil, nil
}

// PutProfile inserts or replaces the profile for an account.
func (db *DB) PutProfile(ctx context.Context, p domain.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.profiles[p.AccountID] = p
	return nil
}

// --- EvaluationRepository ---

// CreateEvaluation stores an evaluation.
func (db *DB) CreateEvaluation(ctx context.Context, e domain.Evaluation) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.evaluations[e.ID]; ok {
		return errors.New("evaluation already exists")
	}
	db.evaluations[e.ID] = e
	return nil
}

// ListEvaluations returns the account's evaluations, newest first.
func (db *DB) ListEvaluations(ctx context.Context, accountID int64, limit int) ([]domain.Evaluation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Evaluation
	for _, e := range db.evaluations {
		if e.AccountID == accountID {
			result = append(result, e)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// GetEvaluation returns one evaluation owned by the account.
func (db *DB) GetEvaluation(ctx context.Context, accountID int64, id string) (*domain.Evaluation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e, ok := db.evaluations[id]; ok && e.AccountID == accountID {
		ret := e
		return &ret, nil
	}
	return nil, nil
}

// DeleteEvaluation removes one evaluation owned by the account.
func (db *DB) DeleteEvaluation(ctx context.Context, accountID int64, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if e, ok := db.evaluations[id]; ok && e.AccountID == accountID {
		delete(db.evaluations, id)
	}
	return nil
}

// --- StatsRepository ---

// GetStats returns instance-wide counters and averages.
func (db *DB) GetStats(ctx context.Context) (*domain.Stats, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	active := 0
	now := time.Now()
	for _, s := range db.sessions {
		if s.ExpiresAt.After(now) {
			active++
		}
	}

	sexes := make(map[string]int)
	for _, p := range db.profiles {
		sexes[string(p.Sex)]++
	}

	var sumIMC, sumFat float64
	withResult := 0
	for _, e := range db.evaluations {
		if e.Result != nil {
			sumIMC += e.Result.Basic.IMC
			sumFat += e.Result.Basic.BodyFatPct
			withResult++
		}
	}
	var avgIMC, avgFat float64
	if withResult > 0 {
		avgIMC = sumIMC / float64(withResult)
		avgFat = sumFat / float64(withResult)
	}

	return &domain.Stats{
		Accounts:        len(db.accounts),
		Profiles:        len(db.profiles),
		Evaluations:     len(db.evaluations),
		ActiveSessions:  active,
		SexDistribution: sexes,
		AvgIMC:          avgIMC,
		AvgBodyFatPct:   avgFat,
	}, nil
}

// GetTableSizes is a stub; the in-memory store has no tables.
func (db *DB) GetTableSizes(ctx context.Context) ([]domain.TableSize, error) {
	return nil, nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		AccountID: accountID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
