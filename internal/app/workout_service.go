package app

import (
	"context"
	"math"
	"time"

	"healthstate/internal/domain"

	"github.com/sirupsen/logrus"
)

// WorkoutService records training sessions.
type WorkoutService struct {
	kv       domain.KVStore
	cal      calendar
	maxItems int
	log      logrus.FieldLogger
}

// NewWorkoutService creates a WorkoutService keeping at most maxItems sessions.
func NewWorkoutService(kv domain.KVStore, clock domain.Clock, loc *time.Location, maxItems int, log logrus.FieldLogger) *WorkoutService {
	if maxItems <= 0 {
		maxItems = DefaultHistoryMaxItems
	}
	return &WorkoutService{kv: kv, cal: newCalendar(clock, loc), maxItems: maxItems, log: log}
}

// Log validates and stores a session. An empty Date means today.
func (s *WorkoutService) Log(ctx context.Context, userID string, e domain.WorkoutEntry) (domain.WorkoutEntry, error) {
	if !finite(e.Intensity) || e.Intensity < 0 || e.Intensity > 10 {
		return e, invalid("intensity must be within [0, 10]")
	}
	if !finite(e.Minutes) || e.Minutes < 0 {
		return e, invalid("minutes must be >= 0")
	}
	if e.Date == "" {
		e.Date = s.cal.today()
	} else if _, err := time.Parse(domain.DayLayout, e.Date); err != nil {
		return e, invalid("date must be YYYY-MM-DD")
	}
	e.LoggedAt = s.cal.now().UTC()
	if _, err := prependBounded(ctx, s.kv, s.log, StorageKey(userID, SuffixWorkouts), e, s.maxItems); err != nil {
		return e, err
	}
	return e, nil
}

// Recent returns sessions newest first, up to limit.
func (s *WorkoutService) Recent(ctx context.Context, userID string, limit int) ([]domain.WorkoutEntry, error) {
	list, _, err := loadJSON[[]domain.WorkoutEntry](ctx, s.kv, s.log, StorageKey(userID, SuffixWorkouts))
	if err != nil {
		return nil, err
	}
	return limitList(list, limit), nil
}

// TodayIntensity is the highest intensity logged today, 0 when none.
func (s *WorkoutService) TodayIntensity(ctx context.Context, userID string) (float64, error) {
	list, err := s.Recent(ctx, userID, 0)
	if err != nil {
		return 0, err
	}
	today := s.cal.today()
	var peak float64
	for _, e := range list {
		if e.Date == today {
			peak = math.Max(peak, e.Intensity)
		}
	}
	return peak, nil
}
