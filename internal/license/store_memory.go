package license

import (
	"context"
	"sort"
	"sync"
	"time"

	"tradegate/pkg/platform/sentinel"
)

// InMemoryStore is a mutex-guarded store used by unit tests and as the
// default when no database is wired.
type InMemoryStore struct {
	mu     sync.RWMutex
	byID   map[int64]*License
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[int64]*License)}
}

func (s *InMemoryStore) Create(_ context.Context, l *License) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Number == l.Number {
			return 0, sentinel.ErrDuplicate
		}
	}
	s.nextID++
	stored := *l
	stored.ID = s.nextID
	s.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (s *InMemoryStore) FindByNumber(_ context.Context, number string) (*License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.byID {
		if l.Number == number {
			copied := *l
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (s *InMemoryStore) ExpiringBetween(_ context.Context, from, to time.Time) ([]*License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	from, to = DateOf(from), DateOf(to)
	var out []*License
	for _, l := range s.byID {
		expiry := DateOf(l.ExpiryDate)
		if !expiry.Before(from) && !expiry.After(to) {
			copied := *l
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*License, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*License, 0, len(s.byID))
	for _, l := range s.byID {
		copied := *l
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
