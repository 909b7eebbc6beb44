package app

import (
	"context"

	"bodycomp/internal/domain"
)

// StatsService exposes instance-wide aggregates for the admin API.
type StatsService struct {
	stats domain.StatsRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(stats domain.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// Overview returns instance-wide counters.
func (s *StatsService) Overview(ctx context.Context) (*domain.Stats, error) {
	return s.stats.GetStats(ctx)
}

// Database returns per-table storage information.
func (s *StatsService) Database(ctx context.Context) ([]domain.TableSize, error) {
	return s.stats.GetTableSizes(ctx)
}
