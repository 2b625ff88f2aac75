package exporter

import (
	"context"
	"errors"
	"strings"

	dErrors "tradegate/pkg/domain-errors"
	"tradegate/pkg/platform/sentinel"
)

// Service owns exporter registration and lookups. The workflow core treats
// this as the read-only Exporter Registry; registration exists for the data
// entry surface.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// RegisterInput carries the fields captured at registration time.
type RegisterInput struct {
	FirmName      string
	IEC           string
	ContactPerson string
	Country       string
}

// Register creates a new exporter. The IEC is externally issued and must be
// unique; a clash surfaces as a conflict, not a store failure.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Exporter, error) {
	e := &Exporter{
		FirmName:      strings.TrimSpace(in.FirmName),
		IEC:           strings.TrimSpace(in.IEC),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Country:       strings.TrimSpace(in.Country),
	}
	switch {
	case e.FirmName == "":
		return nil, dErrors.New(dErrors.CodeValidation, "firm name is required")
	case e.IEC == "":
		return nil, dErrors.New(dErrors.CodeValidation, "IEC number is required")
	case e.Country == "":
		return nil, dErrors.New(dErrors.CodeValidation, "country is required")
	}

	id, err := s.store.Create(ctx, e)
	if err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "exporter with IEC %s is already registered", e.IEC)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to register exporter")
	}
	e.ID = id
	return e, nil
}

// ByIEC resolves an exporter by its import-export code.
func (s *Service) ByIEC(ctx context.Context, iec string) (*Exporter, error) {
	iec = strings.TrimSpace(iec)
	if iec == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "IEC number is required")
	}
	e, err := s.store.FindByIEC(ctx, iec)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "exporter with IEC %s not found", iec)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to look up exporter")
	}
	return e, nil
}

// List returns every registered exporter, ordered by id.
func (s *Service) List(ctx context.Context) ([]*Exporter, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "failed to list exporters")
	}
	return out, nil
}
