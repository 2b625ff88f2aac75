package reminder

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tradegate/internal/license"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/requestcontext"
)

// Clock provides the current time; injected so tests can pin "today".
type Clock func() time.Time

// LicenseSource is the slice of the license store the scanner reads.
type LicenseSource interface {
	ExpiringBetween(ctx context.Context, from, to time.Time) ([]*license.License, error)
}

// Scanner finds licenses whose expiry falls inside the renewal horizon and
// turns each into a reminder fact. Scanning is a pure read; running it twice
// over the same window yields the same facts.
type Scanner struct {
	licenses LicenseSource
	clock    Clock
	tracer   trace.Tracer
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithClock pins the scanner clock, mostly for tests.
func WithClock(clock Clock) ScannerOption {
	return func(s *Scanner) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewScanner(licenses LicenseSource, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		licenses: licenses,
		tracer:   otel.Tracer("tradegate/reminder"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) now(ctx context.Context) time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return requestcontext.Now(ctx)
}

// Scan returns one fact per license expiring within horizonDays of today,
// both ends inclusive, ordered by expiry date. Already-expired licenses are
// outside the window. An empty window is a normal result, not an error.
func (s *Scanner) Scan(ctx context.Context, horizonDays int) ([]Fact, error) {
	ctx, span := s.tracer.Start(ctx, "reminder.Scan",
		trace.WithAttributes(attribute.Int("horizon_days", horizonDays)))
	defer span.End()

	if horizonDays < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "renewal horizon must not be negative")
	}

	today := license.DateOf(s.now(ctx))
	until := today.AddDate(0, 0, horizonDays)

	expiring, err := s.licenses.ExpiringBetween(ctx, today, until)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to scan for expiring licenses")
	}

	facts := make([]Fact, 0, len(expiring))
	for _, l := range expiring {
		facts = append(facts, Fact{
			LicenseNumber: l.Number,
			ExporterID:    l.ExporterID,
			RemainingDays: l.RemainingDays(today),
			ExpiryDate:    l.ExpiryDate,
		})
	}
	return facts, nil
}
