package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgettracker/internal/money"
)

func TestNewFormatter(t *testing.T) {
	type testCase struct {
		name    string
		code    string
		lang    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Euro", code: "EUR", lang: "en"},
		{name: "LowercaseCode", code: "usd", lang: "en-US"},
		{name: "UnknownCurrency", code: "XYZW", lang: "en", wantErr: true},
		{name: "BadLanguage", code: "EUR", lang: "??", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := money.NewFormatter(tt.code, tt.lang)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestFormatter_Format(t *testing.T) {
	f, err := money.NewFormatter("EUR", "en")
	require.NoError(t, err)

	assert.Equal(t, "EUR", f.Currency())

	out := f.Format(decimal.RequireFromString("12.499"))
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "€")

	assert.Equal(t, "-"+out, f.Signed(decimal.RequireFromString("12.499"), true))
	assert.Equal(t, out, f.Signed(decimal.RequireFromString("12.499"), false))
}
