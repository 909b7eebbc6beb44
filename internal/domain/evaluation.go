package domain

import (
	"context"
	"time"

	"bodycomp/internal/engine"
)

// Evaluation is one stored body-composition evaluation: the raw
// measurements submitted plus the computed result.
type Evaluation struct {
	ID           string                   `json:"id"`
	AccountID    int64                    `json:"accountId"`
	Date         string                   `json:"date"` // YYYY-MM-DD
	GoalTag      string                   `json:"goalTag,omitempty"`
	Measurements engine.MeasurementSet    `json:"measurements"`
	Result       *engine.EvaluationResult `json:"result"`
	CreatedAt    time.Time                `json:"createdAt"`
}

// EvaluationRepository is the port for evaluation persistence. All
// reads and deletes are scoped to the owning account.
type EvaluationRepository interface {
	CreateEvaluation(ctx context.Context, e Evaluation) error
	ListEvaluations(ctx context.Context, accountID int64, limit int) ([]Evaluation, error)
	GetEvaluation(ctx context.Context, accountID int64, id string) (*Evaluation, error)
	DeleteEvaluation(ctx context.Context, accountID int64, id string) error
}
