package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/budgettracker/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, raw string) (string, bool, error) {
	query := `
		SELECT title
		FROM title_rules
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var title string

	err := s.db.QueryRowContext(ctx, query, raw).Scan(&title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("finding match: %w", err)
	}

	return title, true, nil
}

func (s *Store) CreateRule(ctx context.Context, r matching.Rule) error {
	query := `
		INSERT INTO title_rules (pattern, title, created_at)
		VALUES ($1, $2, $3)
	`

	if _, err := s.db.ExecContext(ctx, query, r.Pattern, r.Title, r.CreatedAt); err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]matching.Rule, error) {
	query := `
		SELECT pattern, title, created_at
		FROM title_rules
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []matching.Rule

	for rows.Next() {
		var r matching.Rule
		if err := rows.Scan(&r.Pattern, &r.Title, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rules: %w", err)
	}

	return rules, nil
}
