package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads a record row from the scanner.
// Expected column order: id, kind, title, note, amount, date, has_time, created_at, updated_at
func scanRecord(s scanner) (*record.Record, error) {
	var r record.Record

	var kind string

	var date sql.NullTime

	if err := s.Scan(
		&r.ID, &kind, &r.Title, &r.Note, &r.Amount, &date, &r.HasTime,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	r.Kind = record.Kind(kind)

	if date.Valid {
		r.Date = &date.Time
	}

	return &r, nil
}

const selectRecordColumns = `id, kind, title, note, amount, date, has_time, created_at, updated_at`

var sortColumns = map[record.Field]string{
	record.FieldCreatedAt: "created_at",
	record.FieldTitle:     `title COLLATE "C"`,
	record.FieldDate:      "date",
	record.FieldAmount:    "amount",
}

// orderBy renders the sort order; unknown fields are skipped, id always breaks remaining ties.
func orderBy(o record.SortOrder) string {
	parts := make([]string, 0, len(o)+1)
	for _, k := range o {
		col, ok := sortColumns[k.Field]
		if !ok {
			continue
		}

		parts = append(parts, col+" "+k.Direction.String())
	}

	parts = append(parts, "id ASC")

	return " ORDER BY " + strings.Join(parts, ", ")
}

func (s *Store) Insert(ctx context.Context, r *record.Record) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	query := `
		INSERT INTO records (id, kind, title, note, amount, date, has_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.Kind,
		r.Title,
		r.Note,
		r.Amount,
		r.Date,
		r.HasTime,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, kind record.Kind, id uuid.UUID) (*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM records WHERE kind = $1 AND id = $2`

	r, err := scanRecord(s.db.QueryRowContext(ctx, query, kind, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}

		return nil, fmt.Errorf("getting record: %w", err)
	}

	return r, nil
}

func (s *Store) Delete(ctx context.Context, kind record.Kind, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	if n == 0 {
		return record.ErrNotFound
	}

	return nil
}

func (s *Store) Fetch(ctx context.Context, q record.Query) ([]*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM records WHERE kind = $1`

	args := []any{q.Kind}

	argIdx := 2

	if q.Day != nil {
		// NULL dates never satisfy the comparison.
		query += fmt.Sprintf(" AND date >= $%d AND date < $%d", argIdx, argIdx+1)

		args = append(args, q.Day.Start, q.Day.End)
		argIdx += 2
	}

	query += orderBy(q.Sort)

	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, q.Limit)
	}

	return s.list(ctx, query, args...)
}

func (s *Store) FetchAll(ctx context.Context, kind record.Kind) ([]*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM records WHERE kind = $1` + orderBy(record.ByRecency)

	return s.list(ctx, query, kind)
}

func (s *Store) Count(ctx context.Context, kind record.Kind) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE kind = $1`, kind).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}

	return n, nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*record.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	recs := []*record.Record{}

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		recs = append(recs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record rows: %w", err)
	}

	return recs, nil
}
