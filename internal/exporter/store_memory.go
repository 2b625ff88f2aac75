package exporter

import (
	"context"
	"sort"
	"sync"

	"tradegate/pkg/platform/sentinel"
)

// InMemoryStore is a mutex-guarded store used by unit tests and as the
// default when no database is wired.
type InMemoryStore struct {
	mu     sync.RWMutex
	byID   map[int64]*Exporter
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[int64]*Exporter)}
}

func (s *InMemoryStore) Create(_ context.Context, e *Exporter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.IEC == e.IEC {
			return 0, sentinel.ErrDuplicate
		}
	}
	s.nextID++
	stored := *e
	stored.ID = s.nextID
	s.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (s *InMemoryStore) FindByIEC(_ context.Context, iec string) (*Exporter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.byID {
		if e.IEC == iec {
			copied := *e
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*Exporter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*Exporter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Exporter, 0, len(s.byID))
	for _, e := range s.byID {
		copied := *e
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
