package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind distinguishes the two record collections.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Kinds lists every collection in display order.
var Kinds = []Kind{KindExpense, KindIncome}

func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Plural is the user-facing collection name ("expenses", "incomes").
func (k Kind) Plural() string {
	return string(k) + "s"
}

// ParseKind accepts both the singular and plural forms.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "expense", "expenses":
		return KindExpense, nil
	case "income", "incomes":
		return KindIncome, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Record is a single expense or income entry.
type Record struct {
	ID     uuid.UUID
	Kind   Kind
	Title  string
	Note   string
	Amount decimal.Decimal
	// Date is optional for expenses. Undated records never fall in a day bucket.
	Date      *time.Time
	HasTime   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sum adds up the amounts of recs.
func Sum(recs []*Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range recs {
		total = total.Add(r.Amount)
	}

	return total
}
