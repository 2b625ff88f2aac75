package reminder

import (
	"context"
	"log/slog"
	"time"

	"tradegate/internal/platform/metrics"
)

// Advisor periodically scans for licenses nearing expiry and publishes a
// reminder fact for each. A failed publish is logged and counted; the sweep
// carries on so one bad record cannot starve the rest.
type Advisor struct {
	scanner   *Scanner
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics

	horizonDays int
	interval    time.Duration
}

func NewAdvisor(scanner *Scanner, publisher Publisher, logger *slog.Logger, horizonDays int, interval time.Duration, opts ...AdvisorOption) *Advisor {
	a := &Advisor{
		scanner:     scanner,
		publisher:   publisher,
		logger:      logger,
		horizonDays: horizonDays,
		interval:    interval,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AdvisorOption configures an Advisor.
type AdvisorOption func(*Advisor)

// WithMetrics attaches Prometheus counters.
func WithMetrics(m *metrics.Metrics) AdvisorOption {
	return func(a *Advisor) {
		a.metrics = m
	}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. Only a failed scan of the store is logged as an error; an empty
// sweep is routine.
func (a *Advisor) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.sweep(ctx)
		}
	}
}

// Sweep performs a single scan-and-publish pass. Exposed so operators can
// trigger an off-schedule sweep.
func (a *Advisor) Sweep(ctx context.Context) error {
	return a.sweep(ctx)
}

func (a *Advisor) sweep(ctx context.Context) error {
	facts, err := a.scanner.Scan(ctx, a.horizonDays)
	if err != nil {
		a.logger.Error("renewal sweep failed", "error", err)
		return err
	}

	for _, fact := range facts {
		if err := a.publisher.Publish(ctx, fact); err != nil {
			a.metrics.IncReminderPublishErrs()
			a.logger.Error("reminder publish failed",
				"license_number", fact.LicenseNumber, "error", err)
			continue
		}
		a.metrics.IncRemindersEmitted()
		a.logger.Info("reminder published",
			"license_number", fact.LicenseNumber,
			"exporter_id", fact.ExporterID,
			"remaining_days", fact.RemainingDays)
	}
	return nil
}
