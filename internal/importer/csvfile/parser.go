// Package csvfile parses CSV exports (the app's own and bank statements) into records to add.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/budgettracker/internal/encoding"
	"github.com/MrJamesThe3rd/budgettracker/internal/importer"
	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

var ErrUnknownLayout = errors.New("no matching CSV layout")

// Parser detects the layout of a CSV file by matching its header row against known
// profiles. Dates without a time are placed at midnight in loc.
type Parser struct {
	loc *time.Location
}

func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}

	return &Parser{loc: loc}
}

func (p *Parser) Parse(r io.Reader) ([]importer.Entry, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows, comma)
		if profile == nil {
			continue
		}

		return p.parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, ErrUnknownLayout
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// colIndex maps header names to their column.
type colIndex map[string]int

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

// detectProfile scans rows for a header matching a profile written with comma.
func detectProfile(rows [][]string, comma rune) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].Comma == comma && matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into entries. Rows without a parseable date or a non-zero
// amount are footers or padding and are skipped.
func (p *Parser) parseRows(prof *Profile, cols colIndex, rows [][]string, firstRow int) ([]importer.Entry, error) {
	var entries []importer.Entry

	for i, row := range rows {
		line := firstRow + i + 1

		date, ok := p.parseDate(prof, cols, row)
		if !ok {
			continue
		}

		title := cellValue(row, cols.get(prof.TitleCol))
		if title == "" {
			return nil, fmt.Errorf("line %d: missing title", line)
		}

		amount, kind, ok, err := parseAmountKind(prof, cols, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if !ok {
			continue
		}

		hasTime := false
		if t, ok := parseClock(cellValue(row, cols.get(prof.TimeCol))); ok {
			date = time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, p.loc)
			hasTime = true
		}

		entries = append(entries, importer.Entry{
			Line: line,
			Params: ledger.AddParams{
				Kind:    kind,
				Title:   title,
				Note:    cellValue(row, cols.get(prof.NoteCol)),
				Amount:  amount,
				Date:    &date,
				HasTime: hasTime,
			},
		})
	}

	return entries, nil
}

func (p *Parser) parseDate(prof *Profile, cols colIndex, row []string) (time.Time, bool) {
	s := cellValue(row, cols.get(prof.DateCol))
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(prof.DateLayout, s, p.loc)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func parseClock(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// parseAmountKind returns the absolute amount and the kind it implies. ok is false when
// the row carries no amount.
func parseAmountKind(prof *Profile, cols colIndex, row []string) (decimal.Decimal, record.Kind, bool, error) {
	switch prof.AmountMode {
	case amountSigned:
		d, ok := amountCell(row, cols.get(prof.AmountCol), prof.DecimalMark)
		if !ok {
			return decimal.Decimal{}, "", false, nil
		}

		if d.IsNegative() {
			return d.Abs(), record.KindExpense, true, nil
		}

		return d, record.KindIncome, true, nil

	case amountSplit:
		if d, ok := amountCell(row, cols.get(prof.DebitCol), prof.DecimalMark); ok {
			return d.Abs(), record.KindExpense, true, nil
		}

		if d, ok := amountCell(row, cols.get(prof.CreditCol), prof.DecimalMark); ok {
			return d.Abs(), record.KindIncome, true, nil
		}

	case amountWithKind:
		d, ok := amountCell(row, cols.get(prof.AmountCol), prof.DecimalMark)
		if !ok {
			return decimal.Decimal{}, "", false, nil
		}

		kind, err := record.ParseKind(cellValue(row, cols.get(prof.KindCol)))
		if err != nil {
			return decimal.Decimal{}, "", false, err
		}

		return d, kind, true, nil
	}

	return decimal.Decimal{}, "", false, nil
}

// amountCell parses a non-zero amount; blanks and unparseable cells report false.
func amountCell(row []string, idx int, mark decimalMark) (decimal.Decimal, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Decimal{}, false
	}

	d, err := parseAmount(s, mark)
	if err != nil || d.IsZero() {
		return decimal.Decimal{}, false
	}

	return d, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
