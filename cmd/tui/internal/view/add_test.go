package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgettracker/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

func TestAddInput_Params(t *testing.T) {
	loc := time.UTC

	type testCase struct {
		name     string
		kind     record.Kind
		input    view.AddInput
		wantErr  error
		wantDate *time.Time
		wantTime bool
	}

	tests := []testCase{
		{
			name:     "date only",
			kind:     record.KindExpense,
			input:    view.AddInput{Amount: "12,50", Date: "2026-03-18", Title: " Lunch "},
			wantDate: new(time.Date(2026, time.March, 18, 0, 0, 0, 0, loc)),
		},
		{
			name:     "with time",
			kind:     record.KindIncome,
			input:    view.AddInput{Amount: "1000", Date: "2026-03-18", HasTime: true, Time: "09:15", Title: "Salary"},
			wantDate: new(time.Date(2026, time.March, 18, 9, 15, 0, 0, loc)),
			wantTime: true,
		},
		{
			name:  "undated expense",
			kind:  record.KindExpense,
			input: view.AddInput{Amount: "3", Title: "Coffee", HasTime: true},
		},
		{
			name:    "undated income",
			kind:    record.KindIncome,
			input:   view.AddInput{Amount: "3", Title: "Gift"},
			wantErr: record.ErrMissingDate,
		},
		{
			name:    "blank title",
			kind:    record.KindExpense,
			input:   view.AddInput{Amount: "3", Title: "  "},
			wantErr: record.ErrEmptyTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.input.Params(tt.kind, loc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, tt.input.Ready(tt.kind))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.kind, p.Kind)
			assert.NotEmpty(t, p.Title)
			assert.Equal(t, tt.wantTime, p.HasTime)

			if tt.wantDate == nil {
				assert.Nil(t, p.Date)
				return
			}

			require.NotNil(t, p.Date)
			assert.True(t, tt.wantDate.Equal(*p.Date), "got %s", p.Date)
		})
	}
}

func TestAddInput_ParamsRejectsBadInput(t *testing.T) {
	tests := []view.AddInput{
		{Amount: "", Date: "2026-03-18", Title: "x"},
		{Amount: "abc", Date: "2026-03-18", Title: "x"},
		{Amount: "0", Date: "2026-03-18", Title: "x"},
		{Amount: "-4", Date: "2026-03-18", Title: "x"},
		{Amount: "4", Date: "18/03/2026", Title: "x"},
		{Amount: "4", Date: "2026-03-18", HasTime: true, Time: "9am", Title: "x"},
	}

	for _, in := range tests {
		_, err := in.Params(record.KindExpense, time.UTC)
		assert.Error(t, err, "%+v", in)
		assert.False(t, in.Ready(record.KindExpense))
	}
}
