package app

import (
	"context"
	"sort"
	"time"

	"healthstate/internal/domain"

	"github.com/sirupsen/logrus"
)

// LabService stores blood-work history.
type LabService struct {
	kv       domain.KVStore
	maxItems int
	log      logrus.FieldLogger
}

// NewLabService creates a LabService keeping at most maxItems draws.
func NewLabService(kv domain.KVStore, maxItems int, log logrus.FieldLogger) *LabService {
	if maxItems <= 0 {
		maxItems = DefaultHistoryMaxItems
	}
	return &LabService{kv: kv, maxItems: maxItems, log: log}
}

// Add validates and appends a lab entry. Testosterone must already be in nmol/L.
func (s *LabService) Add(ctx context.Context, userID string, e domain.LabEntry) (domain.LabEntry, error) {
	if _, err := time.Parse(domain.DayLayout, e.Date); err != nil {
		return e, invalid("date must be YYYY-MM-DD")
	}
	for _, v := range []*float64{e.Testosterone, e.Cortisol, e.VitaminD, e.Hemoglobin} {
		if v != nil && (!finite(*v) || *v < 0) {
			return e, invalid("lab values must be finite and >= 0")
		}
	}
	for name, v := range e.Other {
		if !finite(v) {
			return e, invalid("lab value %q must be finite", name)
		}
	}

	key := StorageKey(userID, SuffixLabs)
	list, _, err := loadJSON[[]domain.LabEntry](ctx, s.kv, s.log, key)
	if err != nil {
		return e, err
	}
	// The cap drops the oldest draws, so a backfilled entry never evicts a newer one.
	list = append([]domain.LabEntry{e}, list...)
	sortByDateDesc(list)
	if len(list) > s.maxItems {
		list = list[:s.maxItems]
	}
	if err := saveJSON(ctx, s.kv, key, list); err != nil {
		return e, err
	}
	return e, nil
}

func sortByDateDesc(list []domain.LabEntry) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date > list[j].Date })
}

// List returns every stored entry, latest date first.
func (s *LabService) List(ctx context.Context, userID string) ([]domain.LabEntry, error) {
	list, _, err := loadJSON[[]domain.LabEntry](ctx, s.kv, s.log, StorageKey(userID, SuffixLabs))
	if err != nil {
		return nil, err
	}
	list = limitList(list, 0)
	sortByDateDesc(list)
	return list, nil
}

// Latest returns the entry with the greatest date, or nil when there is none.
func (s *LabService) Latest(ctx context.Context, userID string) (*domain.LabEntry, error) {
	list, err := s.List(ctx, userID)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	latest := list[0]
	return &latest, nil
}
