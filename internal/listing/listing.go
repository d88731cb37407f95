// Package listing composes the date-grouped sections shown for one kind of record.
package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/section"
	"github.com/MrJamesThe3rd/budgettracker/internal/settings"
)

// Slot places one section DaysAgo calendar days before today.
type Slot struct {
	DaysAgo      int
	InitialLimit int
}

// DefaultPlan is today with five rows, then the four previous days with three each.
var DefaultPlan = []Slot{
	{DaysAgo: 0, InitialLimit: 5},
	{DaysAgo: 1, InitialLimit: 3},
	{DaysAgo: 2, InitialLimit: 3},
	{DaysAgo: 3, InitialLimit: 3},
	{DaysAgo: 4, InitialLimit: 3},
}

type Options struct {
	Plan          []Slot
	ExpansionStep int
	Overflow      section.Overflow
}

// List is the outcome of one composition pass.
type List struct {
	Kind  record.Kind
	Order record.SortOrder
	Now   time.Time
	// Empty mirrors the settings flag; sections are not fetched when it is set.
	Empty    bool
	Sections []*section.Section
}

// Visible returns the sections holding at least one record, in slot order.
func (l *List) Visible() []*section.Section {
	out := make([]*section.Section, 0, len(l.Sections))
	for _, s := range l.Sections {
		if !s.Empty() {
			out = append(out, s)
		}
	}

	return out
}

// Find returns the section covering b, or nil.
func (l *List) Find(b bucket.Bucket) *section.Section {
	for _, s := range l.Sections {
		if s.Bucket().Start.Equal(b.Start) {
			return s
		}
	}

	return nil
}

type Aggregator struct {
	records *record.Service
	ledger  *ledger.Service
	flags   *settings.Service
	opts    Options
}

func NewAggregator(records *record.Service, l *ledger.Service, flags *settings.Service, opts Options) *Aggregator {
	if len(opts.Plan) == 0 {
		opts.Plan = DefaultPlan
	}

	if opts.ExpansionStep <= 0 {
		opts.ExpansionStep = section.DefaultExpansionStep
	}

	return &Aggregator{records: records, ledger: l, flags: flags, opts: opts}
}

// Compose builds and loads one section per slot for kind relative to now.
func (a *Aggregator) Compose(ctx context.Context, kind record.Kind, order record.SortOrder, now time.Time) (*List, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", record.ErrInvalidKind, kind)
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	empty, err := a.flags.IsEmpty(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("composing %s: %w", kind.Plural(), err)
	}

	l := &List{Kind: kind, Order: order, Now: now, Empty: empty}
	if empty {
		return l, nil
	}

	l.Sections = make([]*section.Section, 0, len(a.opts.Plan))

	for _, slot := range a.opts.Plan {
		s := section.New(a.records, a.ledger, kind, bucket.DaysBefore(now, slot.DaysAgo).Start, order, section.Options{
			InitialLimit:  slot.InitialLimit,
			ExpansionStep: a.opts.ExpansionStep,
			Overflow:      a.opts.Overflow,
		})

		if err := s.Load(ctx); err != nil {
			return nil, err
		}

		l.Sections = append(l.Sections, s)
	}

	return l, nil
}
