// Package ledger adds and removes records and keeps the per-kind "collection empty"
// flags in step with those changes.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/settings"
)

type AddParams struct {
	Kind   record.Kind
	Title  string
	Note   string
	Amount decimal.Decimal
	Date   *time.Time
	// HasTime keeps the time of day of Date; otherwise Date is stored at local midnight.
	HasTime bool
}

// RemoveResult reports what a Remove call achieved, including on partial failure.
type RemoveResult struct {
	Deleted []*record.Record
	// Emptied lists the kinds that have no records left after the removal.
	Emptied []record.Kind
}

type Service struct {
	records *record.Service
	flags   *settings.Service
}

func NewService(records *record.Service, flags *settings.Service) *Service {
	return &Service{records: records, flags: flags}
}

// Validate checks the invariants a new record must satisfy.
func Validate(p AddParams) error {
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: %q", record.ErrInvalidKind, p.Kind)
	}

	if strings.TrimSpace(p.Title) == "" {
		return record.ErrEmptyTitle
	}

	if !p.Amount.IsPositive() {
		return record.ErrInvalidAmount
	}

	if p.Kind == record.KindIncome && p.Date == nil {
		return record.ErrMissingDate
	}

	return nil
}

// CanAdd reports whether the add action should be enabled for p.
func CanAdd(p AddParams) bool {
	return Validate(p) == nil
}

// Add validates p, stores the new record and clears the kind's empty flag.
func (s *Service) Add(ctx context.Context, p AddParams) (*record.Record, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	r := &record.Record{
		Kind:    p.Kind,
		Title:   strings.TrimSpace(p.Title),
		Note:    p.Note,
		Amount:  p.Amount,
		HasTime: p.HasTime,
	}

	if p.Date != nil {
		d := *p.Date
		if !p.HasTime {
			d = bucket.For(d).Start
		}

		r.Date = &d
	}

	if err := s.records.Insert(ctx, r); err != nil {
		return nil, err
	}

	if err := s.flags.SetEmpty(ctx, p.Kind, false); err != nil {
		return r, fmt.Errorf("record added but flag not updated: %w", err)
	}

	return r, nil
}

// Remove deletes recs in order and stops at the first failure. Kinds left without any
// record get their empty flag set.
func (s *Service) Remove(ctx context.Context, recs ...*record.Record) (RemoveResult, error) {
	var res RemoveResult

	kinds := make([]record.Kind, 0, len(record.Kinds))

	for _, r := range recs {
		if err := s.records.Delete(ctx, r); err != nil {
			return res, fmt.Errorf("removing %s %s: %w", r.Kind, r.ID, err)
		}

		res.Deleted = append(res.Deleted, r)

		if !slices.Contains(kinds, r.Kind) {
			kinds = append(kinds, r.Kind)
		}
	}

	for _, k := range kinds {
		empty, err := s.records.IsEmpty(ctx, k)
		if err != nil {
			return res, fmt.Errorf("checking remaining %s: %w", k.Plural(), err)
		}

		if !empty {
			continue
		}

		if err := s.flags.SetEmpty(ctx, k, true); err != nil {
			return res, err
		}

		res.Emptied = append(res.Emptied, k)
	}

	return res, nil
}
