package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bodycomp/internal/app"
	"bodycomp/internal/domain"
	"bodycomp/internal/engine"
)

func f64(v float64) *float64 { return &v }

type profileRepoMock struct {
	get func(ctx context.Context, accountID int64) (*domain.Profile, error)
	put func(ctx context.Context, p domain.Profile) error
}

func (m *profileRepoMock) GetProfile(ctx context.Context, accountID int64) (*domain.Profile, error) {
	if m.get == nil {
		return nil, nil
	}
	return m.get(ctx, accountID)
}

func (m *profileRepoMock) PutProfile(ctx context.Context, p domain.Profile) error {
	if m.put == nil {
		return nil
	}
	return m.put(ctx, p)
}

type evaluationRepoMock struct {
	create func(ctx context.Context, e domain.Evaluation) error
	list   func(ctx context.Context, accountID int64, limit int) ([]domain.Evaluation, error)
	get    func(ctx context.Context, accountID int64, id string) (*domain.Evaluation, error)
	del    func(ctx context.Context, accountID int64, id string) error
}

func (m *evaluationRepoMock) CreateEvaluation(ctx context.Context, e domain.Evaluation) error {
	if m.create == nil {
		return nil
	}
	return m.create(ctx, e)
}

func (m *evaluationRepoMock) ListEvaluations(ctx context.Context, accountID int64, limit int) ([]domain.Evaluation, error) {
	if m.list == nil {
		return nil, nil
	}
	return m.list(ctx, accountID, limit)
}

func (m *evaluationRepoMock) GetEvaluation(ctx context.Context, accountID int64, id string) (*domain.Evaluation, error) {
	if m.get == nil {
		return nil, nil
	}
	return m.get(ctx, accountID, id)
}

func (m *evaluationRepoMock) DeleteEvaluation(ctx context.Context, accountID int64, id string) error {
	if m.del == nil {
		return nil
	}
	return m.del(ctx, accountID, id)
}

func maleProfile() *domain.Profile {
	return &domain.Profile{
		AccountID: 1,
		HeightCM:  180,
		Sex:       engine.Male,
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEvaluationCreate(t *testing.T) {
	profiles := &profileRepoMock{
		get: func(ctx context.Context, accountID int64) (*domain.Profile, error) {
			return maleProfile(), nil
		},
	}

	var persisted *domain.Evaluation
	evals := &evaluationRepoMock{
		create: func(ctx context.Context, e domain.Evaluation) error {
			persisted = &e
			return nil
		},
	}

	svc := app.NewEvaluationService(profiles, evals)
	m := engine.MeasurementSet{WeightKG: 80, WaistCM: 85, HipCM: 95, NeckCM: f64(38)}

	eval, err := svc.Create(context.Background(), 1, "2024-01-01", "cutting", m)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if eval.ID == "" {
		t.Error("expected a generated ID")
	}
	if eval.Result == nil || eval.Result.Basic.BodyFatPct != 22.6 {
		t.Errorf("result = %+v, want BodyFatPct 22.6", eval.Result)
	}
	if eval.Result.Basic.Age != 34 {
		t.Errorf("Age = %d, want 34 (pinned to the evaluation date)", eval.Result.Basic.Age)
	}
	if persisted == nil || persisted.ID != eval.ID {
		t.Error("evaluation was not persisted")
	}
}

func TestEvaluationCreateWithoutProfile(t *testing.T) {
	svc := app.NewEvaluationService(&profileRepoMock{}, &evaluationRepoMock{})
	m := engine.MeasurementSet{WeightKG: 80, WaistCM: 85, HipCM: 95}

	_, err := svc.Create(context.Background(), 1, "2024-01-01", "", m)
	if !errors.Is(err, app.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestEvaluationCreateInvalidDate(t *testing.T) {
	profiles := &profileRepoMock{
		get: func(ctx context.Context, accountID int64) (*domain.Profile, error) {
			return maleProfile(), nil
		},
	}
	svc := app.NewEvaluationService(profiles, &evaluationRepoMock{})
	m := engine.MeasurementSet{WeightKG: 80, WaistCM: 85, HipCM: 95}

	for _, date := range []string{"01/01/2024", "2024-13-40", "", "3024-01-01"} {
		if _, err := svc.Create(context.Background(), 1, date, "", m); !errors.Is(err, app.ErrInvalidDate) {
			t.Errorf("date %q: err = %v, want ErrInvalidDate", date, err)
		}
	}
}

func TestEvaluationCreateEngineRejection(t *testing.T) {
	profiles := &profileRepoMock{
		get: func(ctx context.Context, accountID int64) (*domain.Profile, error) {
			return maleProfile(), nil
		},
	}
	created := false
	evals := &evaluationRepoMock{
		create: func(ctx context.Context, e domain.Evaluation) error {
			created = true
			return nil
		},
	}
	svc := app.NewEvaluationService(profiles, evals)

	// Missing hip: the engine rejects and nothing is stored.
	m := engine.MeasurementSet{WeightKG: 80, WaistCM: 85}
	_, err := svc.Create(context.Background(), 1, "2024-01-01", "", m)
	if !errors.Is(err, engine.ErrMissingRequiredInput) {
		t.Fatalf("err = %v, want ErrMissingRequiredInput", err)
	}
	if created {
		t.Error("rejected evaluation must not be persisted")
	}
}

func TestEvaluationListClampsLimit(t *testing.T) {
	var gotLimit int
	evals := &evaluationRepoMock{
		list: func(ctx context.Context, accountID int64, limit int) ([]domain.Evaluation, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := app.NewEvaluationService(&profileRepoMock{}, evals)

	if _, err := svc.List(context.Background(), 1, 0); err != nil {
		t.Fatal(err)
	}
	if gotLimit != 50 {
		t.Errorf("limit = %d, want default 50", gotLimit)
	}

	if _, err := svc.List(context.Background(), 1, 10000); err != nil {
		t.Fatal(err)
	}
	if gotLimit != 50 {
		t.Errorf("limit = %d, want 50 for out-of-range request", gotLimit)
	}
}

func TestEvaluationListRecomputesResults(t *testing.T) {
	profiles := &profileRepoMock{
		get: func(ctx context.Context, accountID int64) (*domain.Profile, error) {
			return maleProfile(), nil
		},
	}
	evals := &evaluationRepoMock{
		list: func(ctx context.Context, accountID int64, limit int) ([]domain.Evaluation, error) {
			// Stored row with a stale (absent) result snapshot.
			return []domain.Evaluation{{
				ID: "a", AccountID: accountID, Date: "2024-01-01",
				Measurements: engine.MeasurementSet{WeightKG: 80, WaistCM: 85, HipCM: 95, NeckCM: f64(38)},
			}}, nil
		},
	}
	svc := app.NewEvaluationService(profiles, evals)

	got, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Result == nil {
		t.Fatal("expected a recomputed result")
	}
	if got[0].Result.Basic.BodyFatPct != 22.6 {
		t.Errorf("BodyFatPct = %v, want 22.6", got[0].Result.Basic.BodyFatPct)
	}
}

func TestEvaluationDeleteNotFound(t *testing.T) {
	svc := app.NewEvaluationService(&profileRepoMock{}, &evaluationRepoMock{})

	err := svc.Delete(context.Background(), 1, "missing-id")
	if !errors.Is(err, app.ErrEvaluationNotFound) {
		t.Fatalf("err = %v, want ErrEvaluationNotFound", err)
	}
}

func TestEvaluationGetScopedToAccount(t *testing.T) {
	evals := &evaluationRepoMock{
		get: func(ctx context.Context, accountID int64, id string) (*domain.Evaluation, error) {
			// Repository contract: other accounts' rows are invisible.
			if accountID != 42 {
				return nil, nil
			}
			return &domain.Evaluation{ID: id, AccountID: accountID}, nil
		},
	}
	svc := app.NewEvaluationService(&profileRepoMock{}, evals)

	if _, err := svc.Get(context.Background(), 1, "abc"); !errors.Is(err, app.ErrEvaluationNotFound) {
		t.Fatalf("err = %v, want ErrEvaluationNotFound for foreign account", err)
	}
	eval, err := svc.Get(context.Background(), 42, "abc")
	if err != nil || eval.AccountID != 42 {
		t.Fatalf("eval = %+v, err = %v", eval, err)
	}
}
