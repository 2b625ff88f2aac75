package license

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Store persists licenses. Create returns sentinel.ErrDuplicate when the
// generated number collides with an existing one; lookups return
// sentinel.ErrNotFound on a miss.
type Store interface {
	Create(ctx context.Context, l *License) (int64, error)
	FindByNumber(ctx context.Context, number string) (*License, error)
	FindByID(ctx context.Context, id int64) (*License, error)
	// ExpiringBetween returns licenses whose expiry date falls in
	// [from, to], both bounds inclusive, ordered by expiry date.
	ExpiringBetween(ctx context.Context, from, to time.Time) ([]*License, error)
	List(ctx context.Context) ([]*License, error)
}
