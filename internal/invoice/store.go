package invoice

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Store persists invoices. Each shipment carries at most one invoice; Create
// returns sentinel.ErrDuplicate when a second is attempted.
type Store interface {
	Create(ctx context.Context, inv *Invoice) (int64, error)
	MarkPaid(ctx context.Context, id int64, paidOn time.Time) error
	FindByID(ctx context.Context, id int64) (*Invoice, error)
	FindByShipment(ctx context.Context, shipmentID int64) (*Invoice, error)
	List(ctx context.Context) ([]*Invoice, error)
}
