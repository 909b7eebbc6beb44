package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bodycomp/internal/domain"
	"bodycomp/internal/engine"
)

var (
	// ErrProfileNotFound indicates that the account has no profile yet.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidProfileInput indicates that the submitted profile data was rejected.
	ErrInvalidProfileInput = errors.New("invalid profile")
)

// ProfileService manages the per-account body profile.
type ProfileService struct {
	profiles domain.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles domain.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the account's profile.
func (s *ProfileService) Get(ctx context.Context, accountID int64) (*domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Put validates and stores the account's profile, replacing any
// previous one.
func (s *ProfileService) Put(ctx context.Context, accountID int64, heightCM float64, sex engine.Sex, birthDate time.Time) (*domain.Profile, error) {
	if sex != engine.Male && sex != engine.Female {
		return nil, fmt.Errorf("%w: sex must be male or female", ErrInvalidProfileInput)
	}
	if heightCM < 50 || heightCM > 250 {
		return nil, fmt.Errorf("%w: height out of range", ErrInvalidProfileInput)
	}
	if birthDate.IsZero() || birthDate.After(time.Now()) {
		return nil, fmt.Errorf("%w: birth date out of range", ErrInvalidProfileInput)
	}

	p := domain.Profile{
		AccountID: accountID,
		HeightCM:  heightCM,
		Sex:       sex,
		BirthDate: birthDate,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.profiles.PutProfile(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}
