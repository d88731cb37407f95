package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

// Skipped is a parsed row that failed validation.
type Skipped struct {
	Line  int
	Title string
	Err   error
}

type Result struct {
	Added   []*record.Record
	Skipped []Skipped
}

// Renamer maps a raw imported title to a preferred one.
type Renamer interface {
	Suggest(ctx context.Context, raw string) (string, error)
}

type Service struct {
	parser  Parser
	ledger  *ledger.Service
	renamer Renamer
}

// NewService builds an import service. renamer may be nil.
func NewService(parser Parser, l *ledger.Service, renamer Renamer) *Service {
	return &Service{parser: parser, ledger: l, renamer: renamer}
}

// Parse reads r without storing anything.
func (s *Service) Parse(r io.Reader) ([]Entry, error) {
	entries, err := s.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing import: %w", err)
	}

	return entries, nil
}

// Import parses r and adds every valid row. Rows failing validation are reported as
// skipped; a store failure stops the import and returns what was added so far.
func (s *Service) Import(ctx context.Context, r io.Reader) (Result, error) {
	entries, err := s.Parse(r)
	if err != nil {
		return Result{}, err
	}

	var res Result

	for _, e := range entries {
		e.Params.Title = s.rename(ctx, e.Params.Title)

		if err := ledger.Validate(e.Params); err != nil {
			res.Skipped = append(res.Skipped, Skipped{Line: e.Line, Title: e.Params.Title, Err: err})
			continue
		}

		rec, err := s.ledger.Add(ctx, e.Params)
		if err != nil {
			return res, fmt.Errorf("importing line %d: %w", e.Line, err)
		}

		res.Added = append(res.Added, rec)
	}

	return res, nil
}

// rename keeps the raw title when no rule applies or the lookup fails.
func (s *Service) rename(ctx context.Context, raw string) string {
	if s.renamer == nil {
		return raw
	}

	title, err := s.renamer.Suggest(ctx, raw)
	if err != nil || title == "" {
		return raw
	}

	return title
}
