// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// DayLayout is the format of every local calendar day string.
const DayLayout = "2006-01-02"

// KVStore is the port for string-keyed persistence. Values are JSON documents.
// Get reports ok=false for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Clock is the port for wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// LocalDay formats t as a calendar day in loc. A nil loc means time.Local.
func LocalDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}
