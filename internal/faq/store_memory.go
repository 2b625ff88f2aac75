package faq

import (
	"context"
	"sort"
	"strings"
	"sync"

	"tradegate/pkg/platform/sentinel"
)

// InMemoryStore keeps FAQ entries in a map. Suitable for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*FAQ
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1, rows: make(map[int64]*FAQ)}
}

func (s *InMemoryStore) Add(_ context.Context, f *FAQ) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	cp := *f
	cp.ID = id
	s.rows[id] = &cp
	return id, nil
}

func (s *InMemoryStore) FindAnswer(_ context.Context, query string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if strings.Contains(strings.ToLower(s.rows[id].Question), needle) {
			return s.rows[id].Answer, nil
		}
	}
	return "", sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]*FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*FAQ, 0, len(s.rows))
	for _, row := range s.rows {
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
