// Command flakycaller polls a simulated flaky operation through a circuit
// breaker and logs admissions, rejections, and state changes to the console.
// It is a demonstration caller; the breaker itself lives in the root package.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casimon-rh/breaker"
	"github.com/casimon-rh/breaker/config"
	"github.com/casimon-rh/breaker/pkg/logger"
)

var errFlaky = errors.New("flaky operation failed")

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	circuit, err := newCircuit(cfg, log)
	if err != nil {
		log.Error("failed to create circuit", slog.Any("err", err))
		os.Exit(1)
	}

	// Durations are validated in config.Load.
	interval, _ := time.ParseDuration(cfg.Demo.Interval)

	log.Info("polling flaky operation",
		slog.String("interval", cfg.Demo.Interval),
		slog.Float64("failure_rate", cfg.Demo.FailureRate),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case <-ticker.C:
			poll(ctx, circuit, cfg.Demo.FailureRate, log)
		}
	}
}

func newCircuit(cfg *config.Config, log *slog.Logger) (*breaker.Circuit, error) {
	openTimeout, err := time.ParseDuration(cfg.Breaker.OpenTimeout)
	if err != nil {
		return nil, err
	}
	halfOpenTimeout, err := time.ParseDuration(cfg.Breaker.HalfOpenTimeout)
	if err != nil {
		return nil, err
	}

	return breaker.New("flaky-operation",
		breaker.WithOpenTimeout(openTimeout),
		breaker.WithHalfOpenTimeout(halfOpenTimeout),
		breaker.WithMinFailures(cfg.Breaker.MinFailures),
		breaker.WithFailureRatioThreshold(cfg.Breaker.FailureRatioThreshold),
		breaker.OnStateChange(func(name string, from, to breaker.State) {
			log.Warn("circuit state change",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		}),
		breaker.OnReject(func(name string) {
			log.Debug("call rejected", slog.String("circuit", name))
		}),
	)
}

func poll(ctx context.Context, circuit *breaker.Circuit, failureRate float64, log *slog.Logger) {
	payload, err := breaker.Run(ctx, circuit, func(ctx context.Context) (string, error) {
		if rand.Float64() < failureRate {
			return "", errFlaky
		}
		return fmt.Sprintf("payload-%04d", rand.Intn(10000)), nil
	})

	switch {
	case breaker.IsOpen(err):
		status := circuit.Status()
		log.Warn("circuit open, call skipped",
			slog.Time("open_until", status.OpenUntil),
		)
	case err != nil:
		failures, successes := circuit.Counts()
		log.Error("operation failed",
			slog.Any("err", err),
			slog.String("state", circuit.State().String()),
			slog.Int("failures", failures),
			slog.Int("successes", successes),
		)
	default:
		log.Info("operation succeeded",
			slog.String("payload", payload),
			slog.String("state", circuit.State().String()),
		)
	}
}
