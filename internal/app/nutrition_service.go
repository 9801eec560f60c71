package app

import (
	"context"
	"strings"

	"healthstate/internal/domain"

	"github.com/sirupsen/logrus"
)

// NutritionService encapsulates food-logging use cases. Like WaterService it
// rolls the day over before touching today's record.
type NutritionService struct {
	kv       domain.KVStore
	rollover *RolloverService
	log      logrus.FieldLogger
}

// NewNutritionService creates a NutritionService backed by the given store.
func NewNutritionService(kv domain.KVStore, rollover *RolloverService, log logrus.FieldLogger) *NutritionService {
	return &NutritionService{kv: kv, rollover: rollover, log: log}
}

// Today returns today's log.
func (s *NutritionService) Today(ctx context.Context, userID string) (domain.NutritionDay, error) {
	rec, err := settle[domain.NutritionDay](ctx, s.rollover, userID, SuffixNutrition)
	if err != nil {
		return rec, err
	}
	if rec.Items == nil {
		rec.Items = []domain.FoodItem{}
	}
	return rec, nil
}

func (s *NutritionService) save(ctx context.Context, userID string, rec domain.NutritionDay) error {
	return saveJSON(ctx, s.kv, StorageKey(userID, SuffixNutrition), rec)
}

// LogFood validates and appends a food item to today's log.
func (s *NutritionService) LogFood(ctx context.Context, userID string, item domain.FoodItem) (domain.NutritionDay, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return domain.NutritionDay{}, invalid("name is required")
	}
	if !finite(item.Calories, item.ProteinG, item.CarbsG, item.FatG) ||
		item.Calories < 0 || item.ProteinG < 0 || item.CarbsG < 0 || item.FatG < 0 {
		return domain.NutritionDay{}, invalid("calories and macros must be >= 0")
	}
	rec, err := s.Today(ctx, userID)
	if err != nil {
		return rec, err
	}
	item.LoggedAt = s.rollover.cal.now().UTC()
	rec.Items = append(rec.Items, item)
	return rec, s.save(ctx, userID, rec)
}

// UndoLast removes the most recently logged item of today.
func (s *NutritionService) UndoLast(ctx context.Context, userID string) (bool, domain.NutritionDay, error) {
	rec, err := s.Today(ctx, userID)
	if err != nil {
		return false, rec, err
	}
	if len(rec.Items) == 0 {
		return false, rec, nil
	}
	rec.Items = rec.Items[:len(rec.Items)-1]
	if err := s.save(ctx, userID, rec); err != nil {
		return false, rec, err
	}
	return true, rec, nil
}

// SetTarget stores the daily calorie target, which carries over across days.
func (s *NutritionService) SetTarget(ctx context.Context, userID string, calories float64) (domain.NutritionDay, error) {
	if !finite(calories) || calories < 0 || calories > 20000 {
		return domain.NutritionDay{}, invalid("targetCalories must be within [0, 20000]")
	}
	rec, err := s.Today(ctx, userID)
	if err != nil {
		return rec, err
	}
	rec.TargetCalories = calories
	return rec, s.save(ctx, userID, rec)
}

// History returns archived days, newest first, up to limit.
func (s *NutritionService) History(ctx context.Context, userID string, limit int) ([]domain.NutritionDay, error) {
	s.rollover.EnsureDailyReset(ctx, userID)
	list, _, err := loadJSON[[]domain.NutritionDay](ctx, s.kv, s.log, StorageKey(userID, SuffixNutritionHistory))
	if err != nil {
		return nil, err
	}
	return limitList(list, limit), nil
}
