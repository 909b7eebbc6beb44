package domain

import "context"

// Stats aggregates instance-wide counters and averages for the admin
// endpoints.
type Stats struct {
	Accounts        int            `json:"accounts"`
	Profiles        int            `json:"profiles"`
	Evaluations     int            `json:"evaluations"`
	ActiveSessions  int            `json:"activeSessions"`
	SexDistribution map[string]int `json:"sexDistribution"`
	AvgIMC          float64        `json:"avgImc"`
	AvgBodyFatPct   float64        `json:"avgBodyFatPct"`
}

// TableSize reports the on-disk size of one database table.
type TableSize struct {
	Name  string `json:"name"`
	Rows  int64  `json:"rows"`
	Bytes int64  `json:"bytes"`
}

// StatsRepository is the port for admin-facing aggregates.
type StatsRepository interface {
	GetStats(ctx context.Context) (*Stats, error)
	GetTableSizes(ctx context.Context) ([]TableSize, error)
}
