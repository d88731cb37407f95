package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/budgettracker/internal/bucket"
	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/section"
)

// SeeMoreModel lists every record of one day in a table.
type SeeMoreModel struct {
	records *record.Service
	money   *money.Formatter

	kind   record.Kind
	bucket bucket.Bucket
	order  record.SortOrder

	table table.Model
	recs  []*record.Record

	loading bool
	err     error
}

func NewSeeMoreModel(records *record.Service, f *money.Formatter, nav section.NavigationRequest, order record.SortOrder) SeeMoreModel {
	columns := []table.Column{
		{Title: "Time", Width: 6},
		{Title: "Title", Width: 30},
		{Title: "Amount", Width: 14},
		{Title: "Note", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := SeeMoreModel{
		records: records,
		money:   f,
		kind:    nav.Kind,
		bucket:  nav.Bucket,
		order:   order,
		table:   t,
		recs:    nav.Records,
		loading: true,
	}
	m.refreshTable()

	return m
}

func (m SeeMoreModel) Title() string { return m.bucket.Day() }

func (m SeeMoreModel) ShortHelp() string {
	return "Esc: back | Enter: detail | r: refresh"
}

func (m SeeMoreModel) Init() tea.Cmd {
	return m.loadDayCmd()
}

type loadDayMsg struct {
	recs []*record.Record
	err  error
}

func (m SeeMoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDayMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.recs = msg.recs
		m.refreshTable()

		return m, nil

	case RecordChangedMsg:
		return m, m.loadDayCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadDayCmd()
		case "enter":
			i := m.table.Cursor()
			if i < 0 || i >= len(m.recs) {
				return m, nil
			}

			nav := section.NavigationRequest{Route: section.RouteDetail, Kind: m.kind, Bucket: m.bucket, Record: m.recs[i]}

			return m, open(ScreenDetail, m.kind, &nav)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// loadDayCmd fetches the whole day without a cap.
func (m SeeMoreModel) loadDayCmd() tea.Cmd {
	records, q := m.records, record.Query{Kind: m.kind, Day: &m.bucket, Sort: m.order}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		recs, err := records.Fetch(ctx, q)
		return loadDayMsg{recs: recs, err: err}
	}
}

func (m *SeeMoreModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.recs))
	for _, r := range m.recs {
		rows = append(rows, table.Row{clock(r), r.Title, FormatAmount(m.money, r), r.Note})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m SeeMoreModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("%s, %s", m.bucket.Start.Format("Mon, Jan 2, 2006"), m.kind.Plural()),
	)

	footer := fmt.Sprintf("%d %s | Total: %s",
		len(m.recs), m.kind.Plural(),
		m.money.Signed(record.Sum(m.recs), m.kind == record.KindExpense))
	if m.loading {
		footer += " | loading..."
	}

	if m.err != nil {
		footer += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.table.View(),
			"",
			footer,
			"",
			faintStyle.Render(m.ShortHelp()),
		),
	)
}
