// Package app holds the application services and business logic.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"healthstate/internal/domain"

	"github.com/sirupsen/logrus"
)

var (
	// ErrCapacity indicates the user store already holds the maximum number of profiles.
	ErrCapacity = errors.New("user store is full")
	// ErrInvalidCredentials indicates that no user matched the identifier and secret.
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput wraps validation failures of caller-supplied values.
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultHistoryMaxItems caps every bounded history list.
const DefaultHistoryMaxItems = 100

// finite reports whether every v is a real number.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// loadJSON decodes the record stored under key. A missing or undecodable
// record yields the zero value and found=false; only store failures are errors.
func loadJSON[T any](ctx context.Context, kv domain.KVStore, log logrus.FieldLogger, key string) (T, bool, error) {
	var out T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return out, false, err
	}
	if !ok || raw == "" {
		return out, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.WithField("key", key).WithError(err).Warn("discarding malformed record")
		var zero T
		return zero, false, nil
	}
	return out, true, nil
}

func saveJSON(ctx context.Context, kv domain.KVStore, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(b))
}

// prependBounded stores entry at the head of the list under key, evicting
// the oldest entries beyond maxItems.
func prependBounded[T any](ctx context.Context, kv domain.KVStore, log logrus.FieldLogger, key string, entry T, maxItems int) ([]T, error) {
	list, _, err := loadJSON[[]T](ctx, kv, log, key)
	if err != nil {
		return nil, err
	}
	list = append([]T{entry}, list...)
	if maxItems > 0 && len(list) > maxItems {
		list = list[:maxItems]
	}
	if err := saveJSON(ctx, kv, key, list); err != nil {
		return nil, err
	}
	return list, nil
}

func limitList[T any](list []T, limit int) []T {
	if list == nil {
		return []T{}
	}
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

// calendar turns the clock into local calendar days.
type calendar struct {
	clock domain.Clock
	loc   *time.Location
}

func newCalendar(clock domain.Clock, loc *time.Location) calendar {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return calendar{clock: clock, loc: loc}
}

func (c calendar) now() time.Time { return c.clock.Now() }

func (c calendar) today() string { return domain.LocalDay(c.clock.Now(), c.loc) }
