package invoice

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tradegate/internal/license"
	"tradegate/internal/shipment"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/platform/sentinel"
	"tradegate/pkg/requestcontext"
)

// Clock provides the current time; injected so tests can pin "today".
type Clock func() time.Time

// ShipmentDirectory is the read-only shipment lookup billing depends on.
// The shipment store satisfies it directly.
type ShipmentDirectory interface {
	FindByID(ctx context.Context, id int64) (*shipment.Shipment, error)
}

// Service bills shipments and records settlements.
type Service struct {
	store     Store
	shipments ShipmentDirectory
	clock     Clock
	tracer    trace.Tracer
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

func NewService(store Store, shipments ShipmentDirectory, opts ...Option) *Service {
	s := &Service{
		store:     store,
		shipments: shipments,
		tracer:    otel.Tracer("tradegate/invoice"),
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

// Create raises an invoice for a shipment. The invoice starts PENDING with no
// payment date; a shipment can carry at most one invoice.
func (s *Service) Create(ctx context.Context, shipmentID int64, amount float64) (*Invoice, error) {
	ctx, span := s.tracer.Start(ctx, "invoice.Create",
		trace.WithAttributes(attribute.Int64("shipment_id", shipmentID)))
	defer span.End()

	if amount < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "invoice amount must not be negative")
	}

	if _, err := s.shipments.FindByID(ctx, shipmentID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodePrerequisite,
				"invoice rejected: shipment %d does not exist", shipmentID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to resolve shipment")
	}

	inv := &Invoice{
		ShipmentID:    shipmentID,
		Amount:        amount,
		PaymentStatus: PaymentPending,
	}
	id, err := s.store.Create(ctx, inv)
	if err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			return nil, dErrors.Newf(dErrors.CodeConflict,
				"shipment %d is already invoiced", shipmentID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to persist invoice")
	}
	inv.ID = id
	return inv, nil
}

// MarkPaid settles an invoice, stamping today's date. Settling an invoice
// twice keeps the later date; the status stays PAID either way.
func (s *Service) MarkPaid(ctx context.Context, id int64) (*Invoice, error) {
	ctx, span := s.tracer.Start(ctx, "invoice.MarkPaid",
		trace.WithAttributes(attribute.Int64("invoice_id", id)))
	defer span.End()

	paidOn := license.DateOf(s.now(ctx))
	if err := s.store.MarkPaid(ctx, id, paidOn); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "invoice %d was not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to settle invoice")
	}
	return s.ByID(ctx, id)
}

// ByID returns a single invoice.
func (s *Service) ByID(ctx context.Context, id int64) (*Invoice, error) {
	inv, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "invoice %d was not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up invoice")
	}
	return inv, nil
}

// ByShipment returns the invoice raised for a shipment, if any.
func (s *Service) ByShipment(ctx context.Context, shipmentID int64) (*Invoice, error) {
	inv, err := s.store.FindByShipment(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound,
				"no invoice exists for shipment %d", shipmentID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up invoice")
	}
	return inv, nil
}

// List returns every invoice, ordered by id.
func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to list invoices")
	}
	return out, nil
}
