// Package money renders decimal amounts for display.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter builds a formatter for an ISO 4217 code rendered in the conventions of lang.
func NewFormatter(code, lang string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parsing currency %q: %w", code, err)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parsing language %q: %w", lang, err)
	}

	return &Formatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Format renders d with the currency symbol, rounded to the currency's standard scale.
func (f *Formatter) Format(d decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(f.unit)
	v := d.Round(int32(scale)).InexactFloat64()

	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}

// Signed prefixes expenses with a minus sign.
func (f *Formatter) Signed(d decimal.Decimal, negative bool) string {
	if negative {
		return "-" + f.Format(d)
	}

	return f.Format(d)
}
