package settings

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

// Key names a boolean flag.
type Key string

const (
	KeyExpensesEmpty Key = "isExpensesEmpty"
	KeyIncomesEmpty  Key = "isIncomesEmpty"
)

// EmptyKey returns the "collection empty" flag for kind.
func EmptyKey(kind record.Kind) Key {
	if kind == record.KindIncome {
		return KeyIncomesEmpty
	}

	return KeyExpensesEmpty
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	Get(ctx context.Context, key Key) (value bool, found bool, err error)
	Set(ctx context.Context, key Key, value bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// IsEmpty reads the stored "collection empty" flag of kind. An unset flag reads as true.
// The flag is only updated by add and delete flows, so it may lag behind the store.
func (s *Service) IsEmpty(ctx context.Context, kind record.Kind) (bool, error) {
	v, found, err := s.repo.Get(ctx, EmptyKey(kind))
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", EmptyKey(kind), err)
	}

	if !found {
		return true, nil
	}

	return v, nil
}

func (s *Service) SetEmpty(ctx context.Context, kind record.Kind, empty bool) error {
	if err := s.repo.Set(ctx, EmptyKey(kind), empty); err != nil {
		return fmt.Errorf("writing %s: %w", EmptyKey(kind), err)
	}

	return nil
}

// Flags returns every known flag keyed by name.
func (s *Service) Flags(ctx context.Context) (map[Key]bool, error) {
	flags := make(map[Key]bool, len(record.Kinds))
	for _, k := range record.Kinds {
		v, err := s.IsEmpty(ctx, k)
		if err != nil {
			return nil, err
		}

		flags[EmptyKey(k)] = v
	}

	return flags, nil
}
