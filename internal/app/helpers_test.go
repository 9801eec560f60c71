package app_test

import (
	"context"
	"io"
	"time"

	"healthstate/internal/adapter/memory"

	"github.com/sirupsen/logrus"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 8, 9, 30, 0, 0, time.UTC)}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// mockKV delegates to an in-memory store unless a function field overrides a call.
type mockKV struct {
	mem   *memory.DB
	getFn func(ctx context.Context, key string) (string, bool, error)
	setFn func(ctx context.Context, key, value string) error
}

func newMockKV() *mockKV { return &mockKV{mem: memory.New()} }

func (m *mockKV) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return m.mem.Get(ctx, key)
}

func (m *mockKV) Set(ctx context.Context, key, value string) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return m.mem.Set(ctx, key, value)
}
