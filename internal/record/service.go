package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=record
type Repository interface {
	Insert(ctx context.Context, r *Record) error
	Get(ctx context.Context, kind Kind, id uuid.UUID) (*Record, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error

	Fetch(ctx context.Context, q Query) ([]*Record, error)
	FetchAll(ctx context.Context, kind Kind) ([]*Record, error)
	Count(ctx context.Context, kind Kind) (int, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
	subs subscribers
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Subscribe registers fn for insert and delete events. The returned func removes it.
// Callbacks run synchronously on the goroutine that performed the change.
func (s *Service) Subscribe(fn func(Event)) func() {
	return s.subs.add(fn)
}

// Insert stores r as given. Callers are responsible for validating it.
func (s *Service) Insert(ctx context.Context, r *Record) error {
	now := s.now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}

	r.UpdatedAt = now

	if err := s.repo.Insert(ctx, r); err != nil {
		return unavailable("inserting record", err)
	}

	s.subs.publish(Event{Type: EventInserted, Record: r})

	return nil
}

func (s *Service) Get(ctx context.Context, kind Kind, id uuid.UUID) (*Record, error) {
	r, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return nil, unavailable("getting record", err)
	}

	return r, nil
}

func (s *Service) Delete(ctx context.Context, r *Record) error {
	if err := s.repo.Delete(ctx, r.Kind, r.ID); err != nil {
		return unavailable("deleting record", err)
	}

	s.subs.publish(Event{Type: EventDeleted, Record: r})

	return nil
}

// Fetch runs q against the store. A failed fetch never yields an empty result.
func (s *Service) Fetch(ctx context.Context, q Query) ([]*Record, error) {
	if !q.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, q.Kind)
	}

	if err := q.Sort.Validate(); err != nil {
		return nil, err
	}

	recs, err := s.repo.Fetch(ctx, q)
	if err != nil {
		return nil, unavailable("fetching records", err)
	}

	return recs, nil
}

func (s *Service) FetchAll(ctx context.Context, kind Kind) ([]*Record, error) {
	recs, err := s.repo.FetchAll(ctx, kind)
	if err != nil {
		return nil, unavailable("fetching all records", err)
	}

	return recs, nil
}

// IsEmpty reports whether the store holds no record of kind.
func (s *Service) IsEmpty(ctx context.Context, kind Kind) (bool, error) {
	n, err := s.repo.Count(ctx, kind)
	if err != nil {
		return false, unavailable("counting records", err)
	}

	return n == 0, nil
}

func unavailable(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
