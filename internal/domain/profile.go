package domain

import (
	"context"
	"time"

	"bodycomp/internal/engine"
)

// Profile is the per-account body profile used by every evaluation.
type Profile struct {
	AccountID int64      `json:"accountId"`
	HeightCM  float64    `json:"heightCm"`
	Sex       engine.Sex `json:"sex"`
	BirthDate time.Time  `json:"birthDate"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ProfileRepository is the port for profile persistence.
type ProfileRepository interface {
	GetProfile(ctx context.Context, accountID int64) (*Profile, error)
	PutProfile(ctx context.Context, p Profile) error
}
