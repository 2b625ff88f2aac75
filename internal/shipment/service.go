package shipment

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tradegate/internal/license"
	"tradegate/internal/platform/metrics"
	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/platform/sentinel"
)

// LicenseDirectory is the read-only license lookup admission depends on.
// The license store satisfies it directly.
type LicenseDirectory interface {
	FindByID(ctx context.Context, id int64) (*license.License, error)
}

// AdmitInput carries the details of a consignment presented for admission.
type AdmitInput struct {
	LicenseID    int64
	ProductName  string
	Origin       string
	Destination  string
	Quantity     float64
	TotalCost    float64
	ExportDate   time.Time
	HasInsurance bool
}

// Service is the shipment admission engine.
type Service struct {
	store    Store
	tx       StoreTx
	licenses LicenseDirectory
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics attaches Prometheus counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(store Store, tx StoreTx, licenses LicenseDirectory, opts ...Option) *Service {
	s := &Service{
		store:    store,
		tx:       tx,
		licenses: licenses,
		tracer:   otel.Tracer("tradegate/shipment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Admit records a consignment against a license and settles its status in a
// single transaction. Insured shipments land in READY_TO_SHIP; uninsured ones
// are recorded as CANCELLED so the refusal stays auditable. Either the row
// exists with its final status or nothing was written.
func (s *Service) Admit(ctx context.Context, in AdmitInput) (*Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "shipment.Admit",
		trace.WithAttributes(
			attribute.Int64("license_id", in.LicenseID),
			attribute.Bool("has_insurance", in.HasInsurance),
		))
	defer span.End()

	in.ProductName = strings.TrimSpace(in.ProductName)
	if in.ProductName == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "product name is required")
	}
	if in.Quantity < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "quantity must not be negative")
	}
	if in.TotalCost < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "total cost must not be negative")
	}

	if _, err := s.licenses.FindByID(ctx, in.LicenseID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodePrerequisite,
				"shipment rejected: license %d does not exist", in.LicenseID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to resolve license")
	}

	initial := StatusCancelled
	if in.HasInsurance {
		initial = StatusPending
	}

	shp := &Shipment{
		LicenseID:    in.LicenseID,
		ProductName:  in.ProductName,
		Origin:       strings.TrimSpace(in.Origin),
		Destination:  strings.TrimSpace(in.Destination),
		Quantity:     in.Quantity,
		TotalCost:    in.TotalCost,
		ExportDate:   in.ExportDate,
		HasInsurance: in.HasInsurance,
		Status:       initial,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.store.Insert(txCtx, shp)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to persist shipment")
		}
		shp.ID = id

		if in.HasInsurance {
			if err := s.store.UpdateStatus(txCtx, id, StatusReadyToShip); err != nil {
				return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to advance shipment status")
			}
			shp.Status = StatusReadyToShip
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncShipmentsAdmitted(string(shp.Status))
	return shp, nil
}

// ByID returns a single shipment.
func (s *Service) ByID(ctx context.Context, id int64) (*Shipment, error) {
	shp, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "shipment %d was not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up shipment")
	}
	return shp, nil
}

// ByLicense returns every shipment admitted against a license, oldest first.
func (s *Service) ByLicense(ctx context.Context, licenseID int64) ([]*Shipment, error) {
	out, err := s.store.ListByLicense(ctx, licenseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to list shipments")
	}
	return out, nil
}

// List returns every shipment, ordered by id.
func (s *Service) List(ctx context.Context) ([]*Shipment, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to list shipments")
	}
	return out, nil
}
