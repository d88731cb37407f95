package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/section"
)

type detailState int

const (
	detailStateView detailState = iota
	detailStateConfirm
	detailStateDeleting
)

// DetailModel shows a single record and lets it be deleted.
type DetailModel struct {
	ledger *ledger.Service
	money  *money.Formatter
	record *record.Record

	state     detailState
	confirm   *huh.Form
	confirmed *bool
	err       error
}

func NewDetailModel(l *ledger.Service, f *money.Formatter, nav section.NavigationRequest) DetailModel {
	return DetailModel{ledger: l, money: f, record: nav.Record}
}

func (m DetailModel) Title() string { return m.record.Title }

func (m DetailModel) ShortHelp() string {
	return "Esc: back | d: delete"
}

func (m DetailModel) Init() tea.Cmd {
	return nil
}

type removedMsg struct {
	err error
}

func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(removedMsg); ok {
		if res.err != nil {
			m.state = detailStateView
			m.err = res.err

			return m, nil
		}

		return m, Back
	}

	switch m.state {
	case detailStateView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "d":
				m.confirmed = new(bool)
				m.confirm = buildConfirmForm(section.NewConfirmation(m.record.Kind, 1), m.confirmed)
				m.state = detailStateConfirm

				return m, m.confirm.Init()
			}
		}

	case detailStateConfirm:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = detailStateView
			return m, nil
		}

		form, cmd := m.confirm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.confirm = f
		}

		if m.confirm.State != huh.StateCompleted {
			return m, cmd
		}

		if !*m.confirmed {
			m.state = detailStateView
			return m, nil
		}

		m.state = detailStateDeleting

		return m, m.removeCmd()
	}

	return m, nil
}

func (m DetailModel) removeCmd() tea.Cmd {
	l, r := m.ledger, m.record

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := l.Remove(ctx, r)
		return removedMsg{err: err}
	}
}

func (m DetailModel) View() string {
	switch m.state {
	case detailStateConfirm:
		return lipgloss.NewStyle().Padding(1).Render(m.confirm.View())
	case detailStateDeleting:
		return lipgloss.NewStyle().Padding(1).Render("Deleting...")
	}

	r := m.record
	label := lipgloss.NewStyle().Width(10).Faint(true)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(r.Title),
		"",
		label.Render("Amount") + FormatAmount(m.money, r),
		label.Render("Date") + FormatDate(r),
		label.Render("Kind") + string(r.Kind),
	}

	if note := strings.TrimSpace(r.Note); note != "" {
		lines = append(lines, label.Render("Note")+note)
	}

	lines = append(lines,
		label.Render("Added")+r.CreatedAt.Local().Format(time.DateTime),
		"",
		faintStyle.Render(m.ShortHelp()),
	)

	if m.err != nil {
		lines = append(lines, "", errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
