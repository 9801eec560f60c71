package main

import (
	"context"
	"fmt"
	"time"

	adapthttp "healthstate/internal/adapter/http"
	"healthstate/internal/adapter/memory"
	"healthstate/internal/adapter/postgres"
	"healthstate/internal/adapter/redis"
	"healthstate/internal/adapter/sqlite"
	"healthstate/internal/app"
	"healthstate/internal/config"
	"healthstate/internal/domain"
	"healthstate/internal/telemetry"

	"github.com/sirupsen/logrus"
)

// env is everything a command needs, built from Config.
type env struct {
	cfg     config.Config
	log     *logrus.Logger
	loc     *time.Location
	kv      domain.KVStore
	close   func() error
	metrics *telemetry.Metrics
	svc     adapthttp.Services
}

func openStore(cfg config.Config) (domain.KVStore, func() error, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.New(), func() error { return nil }, nil
	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StorePostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.StoreRedis:
		s, err := redis.Open(cfg.RedisAddr, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// setup loads configuration, opens the store, runs the legacy migration and
// wires the application services.
func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	log := cfg.NewLogger()

	kv, closeFn, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	log.WithField("store", cfg.Store).Debug("store opened")

	e := &env{cfg: cfg, log: log, loc: loc, kv: kv, close: closeFn, metrics: telemetry.New()}

	clock := domain.SystemClock{}
	users := app.NewUserStore(kv, clock, cfg.MaxUsers, log)
	if _, err := users.MigrateLegacy(ctx); err != nil {
		_ = closeFn()
		return nil, err
	}

	rollover := app.NewRolloverService(kv, clock, log,
		app.WithLocation(loc),
		app.WithHistoryMaxItems(cfg.HistoryMaxItems),
		app.WithRolloverObserver(e.metrics),
	)
	water := app.NewWaterService(kv, rollover, log)
	nutrition := app.NewNutritionService(kv, rollover, log)
	workouts := app.NewWorkoutService(kv, clock, loc, cfg.HistoryMaxItems, log)
	labs := app.NewLabService(kv, cfg.HistoryMaxItems, log)

	e.svc = adapthttp.Services{
		Users:     users,
		Rollover:  rollover,
		Water:     water,
		Nutrition: nutrition,
		Workouts:  workouts,
		Labs:      labs,
		Scores:    app.NewScoresService(users, rollover, nutrition, water, workouts, labs),
		Charts:    app.NewChartsService(water, nutrition, clock, loc),
		Weight:    app.NewWeightService(users),
	}
	return e, nil
}

// rolloverAll runs the daily reset for every registered user.
func rolloverAll(ctx context.Context, e *env) ([]app.RolloverResult, error) {
	users, err := e.svc.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]app.RolloverResult, 0, len(users))
	for _, u := range users {
		out = append(out, e.svc.Rollover.EnsureDailyReset(ctx, u.ID))
	}
	return out, nil
}
