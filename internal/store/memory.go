package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
)

// MemoryStore keeps comparisons in process memory. Returned values are copies.
type MemoryStore struct {
	mu          sync.RWMutex
	comparisons map[uuid.UUID]*Comparison
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{comparisons: make(map[uuid.UUID]*Comparison)}
}

func (s *MemoryStore) CreateComparison(_ context.Context, c *Comparison) error {
	now := time.Now().UTC()
	c.ID = uuid.New()
	c.Revision = 1
	c.CreatedAt = now
	c.UpdatedAt = now

	s.mu.Lock()
	s.comparisons[c.ID] = clone(c)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetComparison(_ context.Context, id uuid.UUID) (*Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comparisons[id]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

func (s *MemoryStore) ListComparisons(_ context.Context, filter ComparisonFilter) ([]*Comparison, error) {
	s.mu.RLock()
	var out []*Comparison
	for _, c := range s.comparisons {
		if filter.Source != "" && c.Source != filter.Source {
			continue
		}
		out = append(out, clone(c))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) UpdatePoints(_ context.Context, id uuid.UUID, points []analysis.Point) (*Comparison, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comparisons[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Points = append(make([]analysis.Point, 0, len(points)), points...)
	c.Revision++
	c.UpdatedAt = time.Now().UTC()
	return clone(c), nil
}

func (s *MemoryStore) DeleteComparison(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comparisons[id]; !ok {
		return ErrNotFound
	}
	delete(s.comparisons, id)
	return nil
}

func (s *MemoryStore) GetStats(_ context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &Stats{TotalComparisons: len(s.comparisons)}
	for _, c := range s.comparisons {
		stats.TotalPoints += len(c.Points)
	}
	stats.AvgPoints = avg(stats.TotalPoints, stats.TotalComparisons)
	return stats, nil
}

func (s *MemoryStore) Close() error { return nil }

func clone(c *Comparison) *Comparison {
	cp := *c
	cp.Points = append(make([]analysis.Point, 0, len(c.Points)), c.Points...)
	return &cp
}
