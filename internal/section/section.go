package section

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

const DefaultExpansionStep = 10

var ErrNoSuchRow = errors.New("no such row in section")

// Overflow decides what expanding does when the day holds more records than the expansion step.
type Overflow int

const (
	// OverflowNavigate leaves the section collapsed and requests the full list instead.
	OverflowNavigate Overflow = iota
	// OverflowExpandInPlace shows the first ExpansionStep records regardless.
	OverflowExpandInPlace
)

type Options struct {
	InitialLimit  int
	ExpansionStep int
	Overflow      Overflow
}

// DeleteResult is returned by ConfirmDelete.
type DeleteResult struct {
	Deleted int
	// CollectionEmpty is set when no record of the section's kind remains anywhere.
	CollectionEmpty bool
	// Dismiss tells the presentation layer to close the confirmation surface.
	Dismiss bool
}

// Section is the view-model of one day of one kind: a fetched window, how much of it is
// shown, and the pending delete selection. It is not safe for concurrent use.
type Section struct {
	query  Query
	ledger *ledger.Service

	kind   record.Kind
	bucket bucket.Bucket
	order  record.SortOrder

	initialLimit  int
	expansionStep int
	overflow      Overflow
	expanded      bool

	fetched []*record.Record
	pending []*record.Record
	loaded  bool
}

func New(records *record.Service, l *ledger.Service, kind record.Kind, day time.Time, order record.SortOrder, opts Options) *Section {
	if opts.ExpansionStep <= 0 {
		opts.ExpansionStep = DefaultExpansionStep
	}

	if opts.InitialLimit <= 0 {
		opts.InitialLimit = opts.ExpansionStep
	}

	return &Section{
		query:         NewQuery(records, kind, opts.ExpansionStep),
		ledger:        l,
		kind:          kind,
		bucket:        bucket.For(day),
		order:         order,
		initialLimit:  opts.InitialLimit,
		expansionStep: opts.ExpansionStep,
		overflow:      opts.Overflow,
	}
}

func (s *Section) Kind() record.Kind       { return s.kind }
func (s *Section) Bucket() bucket.Bucket   { return s.bucket }
func (s *Section) Order() record.SortOrder { return s.order }
func (s *Section) InitialLimit() int       { return s.initialLimit }
func (s *Section) ExpansionStep() int      { return s.expansionStep }
func (s *Section) Expanded() bool          { return s.expanded }
func (s *Section) Loaded() bool            { return s.loaded }

func (s *Section) Label(now time.Time) string {
	return s.bucket.Label(now)
}

// DisplayLimit is InitialLimit while collapsed and ExpansionStep while expanded.
func (s *Section) DisplayLimit() int {
	if s.expanded {
		return s.expansionStep
	}

	return s.initialLimit
}

// Load fetches the section's window. On failure the previous window is kept.
func (s *Section) Load(ctx context.Context) error {
	recs, err := s.query.Fetch(ctx, s.bucket, s.order, s.DisplayLimit())
	if err != nil {
		return fmt.Errorf("loading %s section %s: %w", s.kind, s.bucket.Day(), err)
	}

	s.fetched = recs
	s.loaded = true

	return nil
}

// Records returns the whole fetched window.
func (s *Section) Records() []*record.Record {
	return s.fetched
}

func (s *Section) Count() int {
	return len(s.fetched)
}

func (s *Section) Empty() bool {
	return len(s.fetched) == 0
}

// Displayed returns the first DisplayLimit records of the window.
func (s *Section) Displayed() []*record.Record {
	return s.fetched[:min(s.DisplayLimit(), len(s.fetched))]
}

// Total sums the displayed records only.
func (s *Section) Total() decimal.Decimal {
	return record.Sum(s.Displayed())
}

// WindowTotal sums every fetched record, shown or not.
func (s *Section) WindowTotal() decimal.Decimal {
	return record.Sum(s.fetched)
}

// ShowsToggle reports whether the see more / see less control should be offered.
func (s *Section) ShowsToggle() bool {
	n := len(s.fetched)
	return n > s.DisplayLimit() || n > s.initialLimit
}

func (s *Section) ToggleLabel() string {
	if s.expanded {
		return "See Less"
	}

	return "See More"
}

// Toggle expands or collapses the section. When collapsed and the window holds more than
// ExpansionStep records, it returns a see-more request and leaves the state unchanged
// (unless the overflow policy expands in place). It returns nil when handled locally.
func (s *Section) Toggle() *NavigationRequest {
	if !s.ShowsToggle() {
		return nil
	}

	if s.expanded {
		s.expanded = false
		return nil
	}

	if len(s.fetched) > s.expansionStep && s.overflow == OverflowNavigate {
		return &NavigationRequest{
			Route:   RouteSeeMore,
			Kind:    s.kind,
			Bucket:  s.bucket,
			Records: slices.Clone(s.fetched),
		}
	}

	s.expanded = true

	return nil
}

// Detail returns a request to show the displayed record at offset.
func (s *Section) Detail(offset int) (NavigationRequest, error) {
	shown := s.Displayed()
	if offset < 0 || offset >= len(shown) {
		return NavigationRequest{}, fmt.Errorf("%w: %d", ErrNoSuchRow, offset)
	}

	return NavigationRequest{Route: RouteDetail, Kind: s.kind, Bucket: s.bucket, Record: shown[offset]}, nil
}

// MarkForDeletion replaces the pending selection with recs and returns the prompt that
// must be confirmed before ConfirmDelete is called.
func (s *Section) MarkForDeletion(recs ...*record.Record) ConfirmationRequest {
	s.pending = make([]*record.Record, 0, len(recs))

	seen := make(map[uuid.UUID]struct{}, len(recs))
	for _, r := range recs {
		if r == nil {
			continue
		}

		if _, dup := seen[r.ID]; dup {
			continue
		}

		seen[r.ID] = struct{}{}
		s.pending = append(s.pending, r)
	}

	return NewConfirmation(s.kind, len(s.pending))
}

// MarkDisplayed marks the displayed rows at offsets for deletion.
func (s *Section) MarkDisplayed(offsets ...int) (ConfirmationRequest, error) {
	shown := s.Displayed()

	recs := make([]*record.Record, 0, len(offsets))
	for _, i := range offsets {
		if i < 0 || i >= len(shown) {
			return ConfirmationRequest{}, fmt.Errorf("%w: %d", ErrNoSuchRow, i)
		}

		recs = append(recs, shown[i])
	}

	return s.MarkForDeletion(recs...), nil
}

func (s *Section) Pending() []*record.Record {
	return s.pending
}

func (s *Section) CancelDelete() {
	s.pending = nil
}

// ConfirmDelete deletes the pending records and reloads the window. On failure the
// records that were not deleted stay pending so the action can be retried.
func (s *Section) ConfirmDelete(ctx context.Context) (DeleteResult, error) {
	if len(s.pending) == 0 {
		return DeleteResult{Dismiss: true}, nil
	}

	res, err := s.ledger.Remove(ctx, s.pending...)
	s.forget(res.Deleted)

	out := DeleteResult{
		Deleted:         len(res.Deleted),
		CollectionEmpty: slices.Contains(res.Emptied, s.kind),
	}

	if err != nil {
		return out, err
	}

	out.Dismiss = true

	if err := s.Load(ctx); err != nil {
		return out, fmt.Errorf("refreshing after delete: %w", err)
	}

	return out, nil
}

func (s *Section) forget(deleted []*record.Record) {
	if len(deleted) == 0 {
		return
	}

	gone := make(map[uuid.UUID]struct{}, len(deleted))
	for _, r := range deleted {
		gone[r.ID] = struct{}{}
	}

	isGone := func(r *record.Record) bool {
		_, ok := gone[r.ID]
		return ok
	}

	// Callers may still hold slices returned by Records, Displayed or Pending.
	s.fetched = slices.DeleteFunc(slices.Clone(s.fetched), isGone)
	s.pending = slices.DeleteFunc(slices.Clone(s.pending), isGone)
}
