package app

import (
	"context"
	"fmt"
	"time"

	"healthstate/internal/domain"

	"github.com/sirupsen/logrus"
)

// RolloverResult describes what one EnsureDailyReset call did.
type RolloverResult struct {
	UserID   string   `json:"userId"`
	Today    string   `json:"today"`
	Current  bool     `json:"alreadyCurrent"`
	Archived []string `json:"archived"`
	Reset    []string `json:"reset"`
	Failed   []string `json:"failed"`
}

// RolloverObserver receives every rollover result.
type RolloverObserver interface {
	ObserveRollover(RolloverResult)
}

// RolloverService moves a user's daily counters onto the current local day.
type RolloverService struct {
	kv       domain.KVStore
	cal      calendar
	maxItems int
	log      logrus.FieldLogger
	observer RolloverObserver
}

// RolloverOption configures a RolloverService.
type RolloverOption func(*RolloverService)

// WithLocation sets the zone whose midnight starts a new day.
func WithLocation(loc *time.Location) RolloverOption {
	return func(s *RolloverService) { s.cal = newCalendar(s.cal.clock, loc) }
}

// WithHistoryMaxItems caps each archived history list.
func WithHistoryMaxItems(n int) RolloverOption {
	return func(s *RolloverService) {
		if n > 0 {
			s.maxItems = n
		}
	}
}

// WithRolloverObserver registers o to receive results.
func WithRolloverObserver(o RolloverObserver) RolloverOption {
	return func(s *RolloverService) { s.observer = o }
}

// NewRolloverService creates a RolloverService.
func NewRolloverService(kv domain.KVStore, clock domain.Clock, log logrus.FieldLogger, opts ...RolloverOption) *RolloverService {
	s := &RolloverService{
		kv:       kv,
		cal:      newCalendar(clock, nil),
		maxItems: DefaultHistoryMaxItems,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// dailyCounter is implemented by the pointer types of counter domain records.
type dailyCounter[T any] interface {
	*T
	Day() string
	Active() bool
	ResetTo(day string)
}

// EnsureDailyReset archives and resets the user's counters if the local day
// changed since the last successful call. Repeated calls on the same day are
// no-ops. It never fails: per-domain errors are logged and reported in
// Result.Failed, and the remaining domains are still processed.
func (s *RolloverService) EnsureDailyReset(ctx context.Context, userID string) RolloverResult {
	today := s.cal.today()
	res := RolloverResult{UserID: userID, Today: today, Archived: []string{}, Reset: []string{}, Failed: []string{}}
	log := s.log.WithField("user_id", userID).WithField("today", today)

	guardKey := StorageKey(userID, SuffixLastResetDate)
	last, _, err := s.kv.Get(ctx, guardKey)
	if err != nil {
		log.WithError(err).Warn("read last reset date")
	}
	if err == nil && last == today {
		res.Current = true
		s.observe(res)
		return res
	}

	s.applyDomain(ctx, log, &res, domain.DomainNutrition, rollDomain[domain.NutritionDay])
	s.applyDomain(ctx, log, &res, domain.DomainWater, rollDomain[domain.WaterDay])

	if err := s.kv.Set(ctx, guardKey, today); err != nil {
		log.WithError(err).Warn("write last reset date")
	}
	log.WithField("archived", res.Archived).WithField("reset", res.Reset).Debug("daily rollover")
	s.observe(res)
	return res
}

type rollFunc func(ctx context.Context, s *RolloverService, userID, name, today string) (archived, reset bool, err error)

func (s *RolloverService) applyDomain(ctx context.Context, log logrus.FieldLogger, res *RolloverResult, name string, roll rollFunc) {
	archived, reset, err := roll(ctx, s, res.UserID, name, res.Today)
	if archived {
		res.Archived = append(res.Archived, name)
	}
	if reset {
		res.Reset = append(res.Reset, name)
	}
	if err != nil {
		res.Failed = append(res.Failed, name)
		log.WithField("domain", name).WithError(err).Warn("rollover step failed")
	}
}

// settle brings one domain record of userID onto today, archiving a stale
// active day first. Unlike EnsureDailyReset it ignores the guard and
// returns the domain's error.
func settle[T any, P dailyCounter[T]](ctx context.Context, s *RolloverService, userID, name string) (T, error) {
	today := s.cal.today()
	s.EnsureDailyReset(ctx, userID)

	rec, _, err := loadJSON[T](ctx, s.kv, s.log, StorageKey(userID, name))
	if err != nil {
		return rec, err
	}
	if P(&rec).Day() == today {
		return rec, nil
	}
	if _, _, err := rollDomain[T, P](ctx, s, userID, name, today); err != nil {
		return rec, fmt.Errorf("settle %s: %w", name, err)
	}
	P(&rec).ResetTo(today)
	return rec, nil
}

func (s *RolloverService) observe(res RolloverResult) {
	if s.observer != nil {
		s.observer.ObserveRollover(res)
	}
}

// rollDomain archives a stale active record of one domain and replaces it
// with a fresh record for today.
func rollDomain[T any, P dailyCounter[T]](ctx context.Context, s *RolloverService, userID, name, today string) (bool, bool, error) {
	key := StorageKey(userID, name)
	rec, _, err := loadJSON[T](ctx, s.kv, s.log, key)
	if err != nil {
		return false, false, err
	}
	p := P(&rec)
	if p.Day() == today {
		return false, false, nil
	}

	archived := false
	if p.Day() != "" && p.Active() {
		histKey := StorageKey(userID, name+"_history")
		hist, _, err := loadJSON[[]T](ctx, s.kv, s.log, histKey)
		if err != nil {
			return false, false, err
		}
		// A day whose archive landed but whose reset failed is already at the head.
		if len(hist) == 0 || P(&hist[0]).Day() != p.Day() {
			hist = append([]T{rec}, hist...)
			if len(hist) > s.maxItems {
				hist = hist[:s.maxItems]
			}
			if err := saveJSON(ctx, s.kv, histKey, hist); err != nil {
				// Keep the stale record so the day can still be archived later.
				return false, false, err
			}
			archived = true
		}
	}

	p.ResetTo(today)
	if err := saveJSON(ctx, s.kv, key, p); err != nil {
		return archived, false, err
	}
	return archived, true, nil
}
