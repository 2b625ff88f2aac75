package license

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tradegate/internal/exporter"
	"tradegate/internal/platform/metrics"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/platform/sentinel"
	"tradegate/pkg/requestcontext"
)

// Clock provides the current time; injected so tests can pin "today". When no
// clock is set, the request-scoped time pinned by the RequestTime middleware
// is used, so every date derived within one request agrees.
type Clock func() time.Time

// ExporterRegistry is the read-only exporter lookup the issuance engine
// depends on. The exporter store satisfies it directly.
type ExporterRegistry interface {
	FindByIEC(ctx context.Context, iec string) (*exporter.Exporter, error)
}

// maxNumberDraws bounds the redraw loop when a generated license number
// collides with an existing row. The original system inserted blind and
// trusted the random draw; here a collision is retried and, past the bound,
// surfaced as a retryable duplicate error.
const maxNumberDraws = 3

// Service is the license issuance engine and validity oracle.
type Service struct {
	store    Store
	registry ExporterRegistry
	numbers  NumberSource
	clock    Clock
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithClock pins the service clock, mostly for tests.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithNumberSource swaps the random source used for license numbers.
func WithNumberSource(src NumberSource) Option {
	return func(s *Service) {
		if src != nil {
			s.numbers = src
		}
	}
}

// WithMetrics attaches Prometheus counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(store Store, registry ExporterRegistry, opts ...Option) *Service {
	s := &Service{
		store:    store,
		registry: registry,
		numbers:  NewRandomSource(),
		tracer:   otel.Tracer("tradegate/license"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now(ctx context.Context) time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return requestcontext.Now(ctx)
}

// Issue validates prerequisites and creates a new license for the exporter
// holding the given IEC. On success the returned license is fully populated
// and durable; on any failure no row exists.
//
// Two concurrent issuances for the same IEC may both succeed; whether that
// should be serialized is an open product decision, so the original behavior
// is preserved.
func (s *Service) Issue(ctx context.Context, iecNumber string, expiryPeriodDays int) (*License, error) {
	ctx, span := s.tracer.Start(ctx, "license.Issue",
		trace.WithAttributes(attribute.Int("expiry_period_days", expiryPeriodDays)))
	defer span.End()

	iecNumber = strings.TrimSpace(iecNumber)
	if iecNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "IEC number is required")
	}
	if expiryPeriodDays <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "expiry period must be a positive number of days")
	}

	exp, err := s.registry.FindByIEC(ctx, iecNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.Newf(dErrors.CodePrerequisite,
				"license application rejected: exporter with IEC %s is not registered", iecNumber)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to resolve exporter")
	}

	issueDate := DateOf(s.now(ctx))
	expiryDate := issueDate.AddDate(0, 0, expiryPeriodDays)

	for draw := 0; draw < maxNumberDraws; draw++ {
		l := &License{
			ExporterID:   exp.ID,
			Number:       GenerateNumber(s.numbers, exp.Country, issueDate.Year()),
			IssueDate:    issueDate,
			ExpiryDate:   expiryDate,
			SignatureRef: fmt.Sprintf("/signatures/%d.png", exp.ID),
		}

		id, err := s.store.Create(ctx, l)
		if err == nil {
			l.ID = id
			s.metrics.IncLicensesIssued()
			return l, nil
		}
		if errors.Is(err, sentinel.ErrDuplicate) {
			s.metrics.IncLicenseNumberRedraw()
			continue
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to persist license")
	}

	return nil, dErrors.Newf(dErrors.CodeDuplicate,
		"license number collided %d times; try again", maxNumberDraws)
}

// CheckValidity looks a license up by number and answers the point-in-time
// validity question. A missing license is reported as not found, distinct
// from present-but-expired.
func (s *Service) CheckValidity(ctx context.Context, licenseNumber string) (*ValidityReport, error) {
	ctx, span := s.tracer.Start(ctx, "license.CheckValidity")
	defer span.End()

	licenseNumber = strings.TrimSpace(licenseNumber)
	if licenseNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "license number is required")
	}

	l, err := s.store.FindByNumber(ctx, licenseNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "license %s was not found", licenseNumber)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up license")
	}

	return &ValidityReport{
		LicenseNumber: l.Number,
		Valid:         l.IsValid(s.now(ctx)),
		ExpiryDate:    l.ExpiryDate,
	}, nil
}

// ByNumber returns the stored license for a number, untouched.
func (s *Service) ByNumber(ctx context.Context, licenseNumber string) (*License, error) {
	licenseNumber = strings.TrimSpace(licenseNumber)
	if licenseNumber == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "license number is required")
	}
	l, err := s.store.FindByNumber(ctx, licenseNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "license %s was not found", licenseNumber)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up license")
	}
	return l, nil
}

// List returns every license, ordered by id. Used by the data-entry surface
// to populate pickers.
func (s *Service) List(ctx context.Context) ([]*License, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to list licenses")
	}
	return out, nil
}
