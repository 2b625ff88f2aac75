package shipment

import (
	"context"
	"sort"
	"sync"

	"tradegate/pkg/platform/sentinel"
)

// InMemoryStore keeps shipments in a map. Suitable for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*Shipment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, rows: make(map[int64]*Shipment)}
}

func (s *InMemoryStore) Insert(_ context.Context, shp *Shipment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	cp := *shp
	cp.ID = id
	s.rows[id] = &cp
	return id, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, id int64, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	row.Status = status
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *InMemoryStore) ListByLicense(_ context.Context, licenseID int64) ([]*Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Shipment
	for _, row := range s.rows {
		if row.LicenseID == licenseID {
			cp := *row
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Shipment, 0, len(s.rows))
	for _, row := range s.rows {
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) snapshot() (map[int64]*Shipment, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[int64]*Shipment, len(s.rows))
	for id, row := range s.rows {
		cp := *row
		snap[id] = &cp
	}
	return snap, s.nextID
}

func (s *InMemoryStore) restore(snap map[int64]*Shipment, nextID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = snap
	s.nextID = nextID
}

// InMemoryTx gives the in-memory store the same all-or-nothing semantics the
// database runner provides: on callback error the store is rolled back to the
// state it had when the callback started. Transactions are serialized.
type InMemoryTx struct {
	txMu  sync.Mutex
	store *InMemoryStore
}

func NewInMemoryTx(store *InMemoryStore) *InMemoryTx {
	return &InMemoryTx{store: store}
}

func (t *InMemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	snap, nextID := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap, nextID)
		return err
	}
	return nil
}
