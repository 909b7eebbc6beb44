package postgres

import (
	"context"
	"database/sql"

	"bodycomp/internal/domain"
	"bodycomp/internal/engine"
)

// GetProfile retrieves the profile for an account.
func (d *DB) GetProfile(ctx context.Context, accountID int64) (*domain.Profile, error) {
	var p domain.Profile
	var sex string
	err := d.sql.QueryRowContext(ctx,
		"SELECT account_id, height_cm, sex, birth_date, updated_at FROM profiles WHERE account_id = $1",
		accountID,
	).Scan(&p.AccountID, &p.HeightCM, &sex, &p.BirthDate, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Sex = engine.Sex(sex)
	return &p, nil
}

// PutProfile inserts or replaces the profile for an account.
func (d *DB) PutProfile(ctx context.Context, p domain.Profile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles (account_id, height_cm, sex, birth_date, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (account_id) DO UPDATE
		 SET height_cm = EXCLUDED.height_cm, sex = EXCLUDED.sex, birth_date = EXCLUDED.birth_date, updated_at = EXCLUDED.updated_at`,
		p.AccountID, p.HeightCM, string(p.Sex), p.BirthDate, p.UpdatedAt,
	)
	return err
}
