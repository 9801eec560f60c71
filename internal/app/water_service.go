package app

import (
	"context"
	"math"

	"healthstate/internal/domain"

	"github.com/sirupsen/logrus"
)

// WaterService encapsulates water-tracking use cases. Every call first runs
// the daily rollover so a past day is archived before today's record is used.
type WaterService struct {
	kv       domain.KVStore
	rollover *RolloverService
	log      logrus.FieldLogger
}

// NewWaterService creates a WaterService backed by the given store. Days
// follow the rollover's calendar.
func NewWaterService(kv domain.KVStore, rollover *RolloverService, log logrus.FieldLogger) *WaterService {
	return &WaterService{kv: kv, rollover: rollover, log: log}
}

// Today returns today's intake.
func (s *WaterService) Today(ctx context.Context, userID string) (domain.WaterDay, error) {
	return settle[domain.WaterDay](ctx, s.rollover, userID, SuffixWater)
}

// Add validates and applies an intake change. The daily total never drops below zero.
func (s *WaterService) Add(ctx context.Context, userID string, deltaMl float64) (domain.WaterDay, error) {
	if !finite(deltaMl) || deltaMl == 0 || deltaMl < -5000 || deltaMl > 5000 {
		return domain.WaterDay{}, invalid("deltaMl must be non-zero and within [-5000, 5000]")
	}
	rec, err := s.Today(ctx, userID)
	if err != nil {
		return rec, err
	}
	rec.ConsumedMl = math.Max(0, rec.ConsumedMl+deltaMl)
	if err := saveJSON(ctx, s.kv, StorageKey(userID, SuffixWater), rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// SetGoal stores the daily water goal, which carries over across days.
func (s *WaterService) SetGoal(ctx context.Context, userID string, goalMl float64) (domain.WaterDay, error) {
	if !finite(goalMl) || goalMl <= 0 || goalMl > 20000 {
		return domain.WaterDay{}, invalid("goalMl must be within (0, 20000]")
	}
	rec, err := s.Today(ctx, userID)
	if err != nil {
		return rec, err
	}
	rec.GoalMl = goalMl
	if err := saveJSON(ctx, s.kv, StorageKey(userID, SuffixWater), rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// History returns archived days, newest first, up to limit.
func (s *WaterService) History(ctx context.Context, userID string, limit int) ([]domain.WaterDay, error) {
	s.rollover.EnsureDailyReset(ctx, userID)
	list, _, err := loadJSON[[]domain.WaterDay](ctx, s.kv, s.log, StorageKey(userID, SuffixWaterHistory))
	if err != nil {
		return nil, err
	}
	return limitList(list, limit), nil
}
