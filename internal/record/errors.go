package record

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnavailable = errors.New("record store unavailable")

	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrMissingDate   = errors.New("income requires a date")
	ErrInvalidKind   = errors.New("invalid record kind")
	ErrInvalidSort   = errors.New("invalid sort order")
)
