// Package matching renames imported titles using learned pattern rules.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidRule = errors.New("rule needs a pattern and a title")

// Rule replaces any title containing Pattern (case-insensitive) with Title.
type Rule struct {
	Pattern   string
	Title     string
	CreatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the title of the longest pattern contained in raw, newest first on ties.
	FindMatch(ctx context.Context, raw string) (title string, found bool, err error)
	CreateRule(ctx context.Context, r Rule) error
	ListRules(ctx context.Context) ([]Rule, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Suggest returns the preferred title for raw, or raw itself when no rule applies.
func (s *Service) Suggest(ctx context.Context, raw string) (string, error) {
	title, found, err := s.repo.FindMatch(ctx, raw)
	if err != nil {
		return raw, fmt.Errorf("matching %q: %w", raw, err)
	}

	if !found {
		return raw, nil
	}

	return title, nil
}

// Learn stores a new rule.
func (s *Service) Learn(ctx context.Context, pattern, title string) (Rule, error) {
	r := Rule{
		Pattern:   strings.TrimSpace(pattern),
		Title:     strings.TrimSpace(title),
		CreatedAt: s.now(),
	}

	if r.Pattern == "" || r.Title == "" {
		return Rule{}, ErrInvalidRule
	}

	if err := s.repo.CreateRule(ctx, r); err != nil {
		return Rule{}, fmt.Errorf("learning rule: %w", err)
	}

	return r, nil
}

func (s *Service) Rules(ctx context.Context) ([]Rule, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}

	return rules, nil
}
