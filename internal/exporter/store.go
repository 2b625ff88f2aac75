package exporter

import "context"

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Store persists exporters. Implementations return sentinel errors for
// infrastructure facts: sentinel.ErrNotFound on a lookup miss and
// sentinel.ErrDuplicate when the IEC is already registered.
type Store interface {
	Create(ctx context.Context, e *Exporter) (int64, error)
	FindByIEC(ctx context.Context, iec string) (*Exporter, error)
	FindByID(ctx context.Context, id int64) (*Exporter, error)
	List(ctx context.Context) ([]*Exporter, error)
}
