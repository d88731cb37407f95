package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

// Store keeps records in process memory. It is used when no database is configured
// and as a stateful store in tests.
type Store struct {
	mu    sync.Mutex
	items map[uuid.UUID]*record.Record
}

func New(seed ...*record.Record) *Store {
	s := &Store{items: make(map[uuid.UUID]*record.Record, len(seed))}
	for _, r := range seed {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}

		s.items[r.ID] = clone(r)
	}

	return s
}

func (s *Store) Insert(_ context.Context, r *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	s.items[r.ID] = clone(r)

	return nil
}

func (s *Store) Get(_ context.Context, kind record.Kind, id uuid.UUID) (*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.items[id]
	if !ok || r.Kind != kind {
		return nil, record.ErrNotFound
	}

	return clone(r), nil
}

func (s *Store) Delete(_ context.Context, kind record.Kind, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.items[id]
	if !ok || r.Kind != kind {
		return record.ErrNotFound
	}

	delete(s.items, id)

	return nil
}

func (s *Store) Fetch(_ context.Context, q record.Query) ([]*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*record.Record{}
	for _, r := range s.items {
		if q.Matches(r) {
			out = append(out, clone(r))
		}
	}

	slices.SortFunc(out, q.Sort.Compare)

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}

	return out, nil
}

func (s *Store) FetchAll(ctx context.Context, kind record.Kind) ([]*record.Record, error) {
	return s.Fetch(ctx, record.Query{Kind: kind, Sort: record.ByRecency})
}

func (s *Store) Count(_ context.Context, kind record.Kind) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.items {
		if r.Kind == kind {
			n++
		}
	}

	return n, nil
}

func clone(r *record.Record) *record.Record {
	c := *r
	if r.Date != nil {
		d := *r.Date
		c.Date = &d
	}

	return &c
}
