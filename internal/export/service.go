package export

import (
	"cmp"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

// Header is the column layout written by WriteCSV and read back by the importer.
var Header = []string{"Date", "Time", "Kind", "Title", "Amount", "Note"}

// Filter selects records dated in [From, To). Nil bounds are open; undated records only
// pass when both bounds are nil.
type Filter struct {
	Kinds []record.Kind
	From  *time.Time
	To    *time.Time
}

func (f Filter) matches(r *record.Record) bool {
	if r.Date == nil {
		return f.From == nil && f.To == nil
	}

	if f.From != nil && r.Date.Before(*f.From) {
		return false
	}

	if f.To != nil && !r.Date.Before(*f.To) {
		return false
	}

	return true
}

// Service exports records as CSV and as a plain-text summary.
type Service struct {
	records *record.Service
	money   *money.Formatter
}

func NewService(records *record.Service, f *money.Formatter) *Service {
	return &Service{records: records, money: f}
}

// Collect returns the records matching filter, oldest first.
func (s *Service) Collect(ctx context.Context, filter Filter) ([]*record.Record, error) {
	kinds := filter.Kinds
	if len(kinds) == 0 {
		kinds = record.Kinds
	}

	var out []*record.Record

	for _, k := range kinds {
		recs, err := s.records.FetchAll(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", k.Plural(), err)
		}

		for _, r := range recs {
			if filter.matches(r) {
				out = append(out, r)
			}
		}
	}

	slices.SortStableFunc(out, byDate)

	return out, nil
}

func byDate(a, b *record.Record) int {
	switch {
	case a.Date == nil && b.Date == nil:
	case a.Date == nil:
		return 1
	case b.Date == nil:
		return -1
	default:
		if c := a.Date.Compare(*b.Date); c != 0 {
			return c
		}
	}

	return cmp.Compare(a.CreatedAt.UnixNano(), b.CreatedAt.UnixNano())
}

// WriteCSV writes recs with Header as the first row. Amounts are plain decimals.
func (s *Service) WriteCSV(w io.Writer, recs []*record.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range recs {
		var day, clock string
		if r.Date != nil {
			day = r.Date.Format(time.DateOnly)
			if r.HasTime {
				clock = r.Date.Format("15:04")
			}
		}

		row := []string{day, clock, string(r.Kind), r.Title, r.Amount.String(), r.Note}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %s: %w", r.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// Summary renders one line per record followed by per-kind totals.
func (s *Service) Summary(recs []*record.Record) string {
	var sb strings.Builder

	for _, r := range recs {
		day := "no date"
		if r.Date != nil {
			day = r.Date.Format(time.DateOnly)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s\n", day, r.Title, s.money.Signed(r.Amount, r.Kind == record.KindExpense))
	}

	for _, k := range record.Kinds {
		var ofKind []*record.Record
		for _, r := range recs {
			if r.Kind == k {
				ofKind = append(ofKind, r)
			}
		}

		if len(ofKind) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "Total %s: %s\n", k.Plural(), s.money.Format(record.Sum(ofKind)))
	}

	return sb.String()
}
