package invoice

import (
	"context"
	"sort"
	"sync"
	"time"

	"tradegate/pkg/platform/sentinel"
)

// InMemoryStore keeps invoices in a map. Suitable for tests and local runs.
type InMemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	rows       map[int64]*Invoice
	byShipment map[int64]int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		nextID:     1,
		rows:       make(map[int64]*Invoice),
		byShipment: make(map[int64]int64),
	}
}

func (s *InMemoryStore) Create(_ context.Context, inv *Invoice) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byShipment[inv.ShipmentID]; exists {
		return 0, sentinel.ErrDuplicate
	}

	id := s.nextID
	s.nextID++

	cp := *inv
	cp.ID = id
	s.rows[id] = &cp
	s.byShipment[inv.ShipmentID] = id
	return id, nil
}

func (s *InMemoryStore) MarkPaid(_ context.Context, id int64, paidOn time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	row.PaymentStatus = PaymentPaid
	row.PaymentDate = paidOn
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *InMemoryStore) FindByShipment(_ context.Context, shipmentID int64) (*Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byShipment[shipmentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.rows[id]
	return &cp, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Invoice, 0, len(s.rows))
	for _, row := range s.rows {
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
