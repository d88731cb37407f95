package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/MrJamesThe3rd/budgettracker/internal/matching"
)

type Store struct {
	mu    sync.RWMutex
	rules []matching.Rule
}

func New() *Store {
	return &Store{}
}

func (s *Store) FindMatch(_ context.Context, raw string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(raw)

	var (
		best  matching.Rule
		found bool
	)

	for _, r := range s.rules {
		if !strings.Contains(lower, strings.ToLower(r.Pattern)) {
			continue
		}

		if !found || len(r.Pattern) > len(best.Pattern) ||
			(len(r.Pattern) == len(best.Pattern) && !r.CreatedAt.Before(best.CreatedAt)) {
			best, found = r, true
		}
	}

	return best.Title, found, nil
}

func (s *Store) CreateRule(_ context.Context, r matching.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = append(s.rules, r)

	return nil
}

func (s *Store) ListRules(_ context.Context) ([]matching.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.rules)
	slices.SortStableFunc(out, func(a, b matching.Rule) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}
