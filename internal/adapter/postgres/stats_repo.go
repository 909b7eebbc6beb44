package postgres

import (
	"context"
	"time"

	"bodycomp/internal/domain"
)

// GetStats returns instance-wide counters, the sex distribution of
// stored profiles and average evaluation metrics.
func (d *DB) GetStats(ctx context.Context) (*domain.Stats, error) {
	s := domain.Stats{SexDistribution: make(map[string]int)}

	err := d.sql.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM accounts),
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM evaluations),
			(SELECT COUNT(*) FROM sessions WHERE expires_at > $1)`,
		time.Now(),
	).Scan(&s.Accounts, &s.Profiles, &s.Evaluations, &s.ActiveSessions)
	if err != nil {
		return nil, err
	}

	rows, err := d.sql.QueryContext(ctx, "SELECT sex, COUNT(*) FROM profiles GROUP BY sex")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sex string
		var n int
		if err := rows.Scan(&sex, &n); err != nil {
			return nil, err
		}
		s.SexDistribution[sex] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = d.sql.QueryRowContext(ctx,
		`SELECT
			COALESCE(AVG((result->'basic'->>'imc')::double precision), 0),
			COALESCE(AVG((result->'basic'->>'body_fat_pct')::double precision), 0)
		 FROM evaluations`,
	).Scan(&s.AvgIMC, &s.AvgBodyFatPct)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// GetTableSizes reports row counts and on-disk size per table.
func (d *DB) GetTableSizes(ctx context.Context) ([]domain.TableSize, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT relname, n_live_tup, pg_total_relation_size(relid)
		 FROM pg_stat_user_tables
		 ORDER BY relname`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TableSize
	for rows.Next() {
		var t domain.TableSize
		if err := rows.Scan(&t.Name, &t.Rows, &t.Bytes); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
