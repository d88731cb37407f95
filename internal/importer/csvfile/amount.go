package csvfile

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads "1.234,56" with a decimal comma or "1,234.56" with a decimal point.
func parseAmount(s string, mark decimalMark) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, " ", "")

	switch mark {
	case decimalComma:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case decimalPoint:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
