package shipment

import "context"

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Store persists shipments. Mutations called inside a StoreTx callback join
// that transaction; lookups return sentinel.ErrNotFound on a miss.
type Store interface {
	Insert(ctx context.Context, s *Shipment) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	FindByID(ctx context.Context, id int64) (*Shipment, error)
	ListByLicense(ctx context.Context, licenseID int64) ([]*Shipment, error)
	List(ctx context.Context) ([]*Shipment, error)
}

// StoreTx provides the transactional boundary for admission: the insert and
// the conditional status advance either both land or neither does.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
