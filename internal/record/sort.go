package record

import (
	"cmp"
	"fmt"
	"strings"
)

type Field string

const (
	FieldCreatedAt Field = "created_at"
	FieldTitle     Field = "title"
	FieldDate      Field = "date"
	FieldAmount    Field = "amount"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}

	return "ASC"
}

// SortKey orders records by one field.
type SortKey struct {
	Field     Field
	Direction Direction
}

// SortOrder is applied key by key; later keys only break ties of earlier ones.
type SortOrder []SortKey

var (
	// ByRecency shows the newest entries first.
	ByRecency = SortOrder{
		{Field: FieldCreatedAt, Direction: Descending},
		{Field: FieldTitle, Direction: Ascending},
	}

	// ByName sorts alphabetically, newest first among equal titles.
	ByName = SortOrder{
		{Field: FieldTitle, Direction: Ascending},
		{Field: FieldCreatedAt, Direction: Descending},
	}
)

// ParseSortOrder maps a preset name to its order. Empty selects ByRecency.
func ParseSortOrder(name string) (SortOrder, error) {
	switch strings.ToLower(name) {
	case "", "recency", "time":
		return ByRecency, nil
	case "name", "title":
		return ByName, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidSort, name)
}

// Name returns the preset name of o, or "custom".
func (o SortOrder) Name() string {
	switch {
	case o.equal(ByRecency):
		return "recency"
	case o.equal(ByName):
		return "name"
	}

	return "custom"
}

func (o SortOrder) equal(other SortOrder) bool {
	if len(o) != len(other) {
		return false
	}

	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}

	return true
}

// Validate rejects unknown fields so the order can be rendered into SQL safely.
func (o SortOrder) Validate() error {
	for _, k := range o {
		switch k.Field {
		case FieldCreatedAt, FieldTitle, FieldDate, FieldAmount:
		default:
			return fmt.Errorf("%w: unknown field %q", ErrInvalidSort, k.Field)
		}
	}

	return nil
}

// Compare orders a before b (negative), after b (positive) or equal (zero).
// Records that tie on every key are ordered by ID.
func (o SortOrder) Compare(a, b *Record) int {
	for _, k := range o {
		c := compareField(k.Field, a, b)
		if k.Direction == Descending {
			c = -c
		}

		if c != 0 {
			return c
		}
	}

	return strings.Compare(a.ID.String(), b.ID.String())
}

func compareField(f Field, a, b *Record) int {
	switch f {
	case FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case FieldTitle:
		return cmp.Compare(a.Title, b.Title)
	case FieldAmount:
		return a.Amount.Cmp(b.Amount)
	case FieldDate:
		// Undated records sort last in ascending order.
		switch {
		case a.Date == nil && b.Date == nil:
			return 0
		case a.Date == nil:
			return 1
		case b.Date == nil:
			return -1
		}

		return a.Date.Compare(*b.Date)
	}

	return 0
}
