package app

import (
	"context"

	"healthstate/internal/domain"
)

// WeightService records body weight onto the user's profile.
type WeightService struct {
	users *UserStore
}

// NewWeightService creates a WeightService backed by the given user store.
func NewWeightService(users *UserStore) *WeightService {
	return &WeightService{users: users}
}

// RecordWeight validates a measurement, stores it in kilograms and returns
// the updated profile.
func (s *WeightService) RecordWeight(ctx context.Context, userID string, value float64, unit string) (*domain.UserProfile, error) {
	if !finite(value) || value <= 0 {
		return nil, invalid("value must be finite and > 0")
	}
	if unit != "kg" && unit != "lb" {
		return nil, invalid("unit must be \"kg\" or \"lb\"")
	}
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	kg := domain.ConvertWeight(value, unit, "kg")
	if err := s.users.UpdateUser(ctx, userID, domain.ProfilePatch{WeightKg: &kg}); err != nil {
		return nil, err
	}
	u.WeightKg = kg
	return u, nil
}

// Weight returns the stored weight converted to unit.
func (s *WeightService) Weight(ctx context.Context, userID, unit string) (float64, error) {
	if unit != "kg" && unit != "lb" {
		return 0, invalid("unit must be \"kg\" or \"lb\"")
	}
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, ErrUserNotFound
	}
	return domain.ConvertWeight(u.WeightKg, "kg", unit), nil
}
