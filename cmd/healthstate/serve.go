package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adapthttp "healthstate/internal/adapter/http"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP API and the scheduled daily rollover",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()
			return serve(ctx, e)
		},
	}
}

func serve(ctx context.Context, e *env) error {
	runRollover := func(ctx context.Context, trigger string) {
		log := e.log.WithField("trigger", trigger)
		results, err := rolloverAll(ctx, e)
		if err != nil {
			log.WithError(err).Error("rollover")
			return
		}
		log.WithField("users", len(results)).Info("rollover done")
	}

	sched := cron.New(cron.WithLocation(e.loc))
	if _, err := sched.AddFunc(e.cfg.RolloverCron, func() {
		runRollover(context.Background(), "schedule")
	}); err != nil {
		return fmt.Errorf("ROLLOVER_CRON: %w", err)
	}
	// Days missed while the process was down are archived before traffic arrives.
	runRollover(ctx, "startup")
	sched.Start()
	defer sched.Stop()

	h := adapthttp.New(e.svc, e.log,
		adapthttp.WithMetrics(e.metrics),
		adapthttp.WithRateLimit(e.cfg.RateLimitRPS, e.cfg.RateLimitBurst),
	).Handler()
	srv := &http.Server{
		Addr:              e.cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		e.log.WithField("addr", e.cfg.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	e.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
