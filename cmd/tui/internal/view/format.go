package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// FormatAmount renders a record's amount, negative for expenses.
func FormatAmount(f *money.Formatter, r *record.Record) string {
	return f.Signed(r.Amount, r.Kind == record.KindExpense)
}

// FormatDate renders the record date as YYYY-MM-DD, with the time when one was entered.
func FormatDate(r *record.Record) string {
	if r.Date == nil {
		return "no date"
	}

	if r.HasTime {
		return r.Date.Format("2006-01-02 15:04")
	}

	return r.Date.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
