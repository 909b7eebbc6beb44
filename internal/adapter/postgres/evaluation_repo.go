package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"bodycomp/internal/domain"
	"bodycomp/internal/engine"
)

const evaluationColumns = `id, account_id, eval_date, goal_tag,
	weight_kg, waist_cm, hip_cm,
	neck_cm, shoulders_cm, chest_cm, abdomen_cm,
	relaxed_arm_cm, flexed_arm_cm, forearm_cm, thigh_cm, calf_cm,
	result, created_at`

// CreateEvaluation stores an evaluation. Raw measurements go into
// typed columns so they stay queryable; the computed result is stored
// as JSONB.
func (d *DB) CreateEvaluation(ctx context.Context, e domain.Evaluation) error {
	resultJSON, err := json.Marshal(e.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	m := e.Measurements
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO evaluations (`+evaluationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		e.ID, e.AccountID, e.Date, e.GoalTag,
		m.WeightKG, m.WaistCM, m.HipCM,
		m.NeckCM, m.ShouldersCM, m.ChestCM, m.AbdomenCM,
		m.RelaxedArmCM, m.FlexedArmCM, m.ForearmCM, m.ThighCM, m.CalfCM,
		resultJSON, e.CreatedAt,
	)
	return err
}

// ListEvaluations returns the account's evaluations, newest first.
func (d *DB) ListEvaluations(ctx context.Context, accountID int64, limit int) ([]domain.Evaluation, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations
		 WHERE account_id = $1
		 ORDER BY eval_date DESC, created_at DESC
		 LIMIT $2`,
		accountID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// GetEvaluation returns one evaluation owned by the account.
func (d *DB) GetEvaluation(ctx context.Context, accountID int64, id string) (*domain.Evaluation, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations WHERE account_id = $1 AND id = $2`,
		accountID, id,
	)
	e, err := scanEvaluation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEvaluation removes one evaluation owned by the account.
func (d *DB) DeleteEvaluation(ctx context.Context, accountID int64, id string) error {
	_, err := d.sql.ExecContext(ctx,
		"DELETE FROM evaluations WHERE account_id = $1 AND id = $2",
		accountID, id,
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row scanner) (*domain.Evaluation, error) {
	var e domain.Evaluation
	var m engine.MeasurementSet
	var resultJSON []byte

	err := row.Scan(
		&e.ID, &e.AccountID, &e.Date, &e.GoalTag,
		&m.WeightKG, &m.WaistCM, &m.HipCM,
		&m.NeckCM, &m.ShouldersCM, &m.ChestCM, &m.AbdomenCM,
		&m.RelaxedArmCM, &m.FlexedArmCM, &m.ForearmCM, &m.ThighCM, &m.CalfCM,
		&resultJSON, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Measurements = m
	var result engine.EvaluationResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	e.Result = &result
	return &e, nil
}
