package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bodycomp/internal/domain"
	"bodycomp/internal/engine"

	"github.com/google/uuid"
)

var (
	// ErrEvaluationNotFound indicates that the requested evaluation does not exist.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrInvalidDate indicates a malformed or out-of-range evaluation date.
	ErrInvalidDate = errors.New("invalid evaluation date")
)

// EvaluationService runs the calculation engine over submitted
// measurements and persists the outcome.
type EvaluationService struct {
	profiles    domain.ProfileRepository
	evaluations domain.EvaluationRepository
}

// NewEvaluationService creates a new evaluation service.
func NewEvaluationService(profiles domain.ProfileRepository, evaluations domain.EvaluationRepository) *EvaluationService {
	return &EvaluationService{profiles: profiles, evaluations: evaluations}
}

// Create evaluates the measurements against the account's profile and
// stores the evaluation. The date pins the age calculation, so
// back-dated submissions evaluate as of that day.
func (s *EvaluationService) Create(ctx context.Context, accountID int64, date, goalTag string, m engine.MeasurementSet) (*domain.Evaluation, error) {
	profile, err := s.profiles.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	asOf, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if asOf.After(time.Now().AddDate(0, 0, 1)) {
		return nil, fmt.Errorf("%w: date in the future", ErrInvalidDate)
	}

	result, err := engine.Evaluate(engine.Profile{
		HeightCM:  profile.HeightCM,
		Sex:       profile.Sex,
		BirthDate: profile.BirthDate,
	}, m, goalTag, asOf)
	if err != nil {
		return nil, err
	}

	eval := domain.Evaluation{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		Date:         date,
		GoalTag:      goalTag,
		Measurements: m,
		Result:       result,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.evaluations.CreateEvaluation(ctx, eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

// List returns the account's most recent evaluations, newest first.
// Results are recomputed from the stored measurements so listings
// reflect the current formula constants.
func (s *EvaluationService) List(ctx context.Context, accountID int64, limit int) ([]domain.Evaluation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	evals, err := s.evaluations.ListEvaluations(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for i := range evals {
		s.reevaluate(profile, &evals[i])
	}
	return evals, nil
}

// Get returns one evaluation owned by the account.
func (s *EvaluationService) Get(ctx context.Context, accountID int64, id string) (*domain.Evaluation, error) {
	eval, err := s.evaluations.GetEvaluation(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, ErrEvaluationNotFound
	}

	profile, err := s.profiles.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.reevaluate(profile, eval)
	return eval, nil
}

// reevaluate refreshes the stored result from the raw measurements,
// pinned to the evaluation's own date. The stored snapshot stands when
// the profile is gone or the inputs no longer validate.
func (s *EvaluationService) reevaluate(profile *domain.Profile, e *domain.Evaluation) {
	if profile == nil {
		return
	}
	asOf, err := time.ParseInLocation("2006-01-02", e.Date, time.UTC)
	if err != nil {
		return
	}
	result, err := engine.Evaluate(engine.Profile{
		HeightCM:  profile.HeightCM,
		Sex:       profile.Sex,
		BirthDate: profile.BirthDate,
	}, e.Measurements, e.GoalTag, asOf)
	if err != nil {
		return
	}
	e.Result = result
}

// Delete removes one evaluation owned by the account.
func (s *EvaluationService) Delete(ctx context.Context, accountID int64, id string) error {
	eval, err := s.evaluations.GetEvaluation(ctx, accountID, id)
	if err != nil {
		return err
	}
	if eval == nil {
		return ErrEvaluationNotFound
	}
	return s.evaluations.DeleteEvaluation(ctx, accountID, id)
}
