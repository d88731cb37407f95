package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/budgettracker/internal/ledger"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

// AddInput holds the raw form values of a new record.
type AddInput struct {
	Amount  string
	Date    string
	HasTime bool
	Time    string
	Title   string
	Note    string
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, errors.New("amount is required")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("amount must be a number")
	}

	if !d.IsPositive() {
		return decimal.Zero, errors.New("amount must be greater than zero")
	}

	return d, nil
}

func parseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, errors.New("time must be HH:MM")
	}

	return t.Hour(), t.Minute(), nil
}

// Params converts the input into ledger parameters. An empty date leaves the record undated.
func (in AddInput) Params(kind record.Kind, loc *time.Location) (ledger.AddParams, error) {
	p := ledger.AddParams{
		Kind:    kind,
		Title:   strings.TrimSpace(in.Title),
		Note:    strings.TrimSpace(in.Note),
		HasTime: in.HasTime,
	}

	amount, err := parseAmount(in.Amount)
	if err != nil {
		return p, err
	}

	p.Amount = amount

	if strings.TrimSpace(in.Date) != "" {
		day, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(in.Date), loc)
		if err != nil {
			return p, errors.New("date must be YYYY-MM-DD")
		}

		if in.HasTime {
			h, mm, err := parseClock(in.Time)
			if err != nil {
				return p, err
			}

			day = time.Date(day.Year(), day.Month(), day.Day(), h, mm, 0, 0, loc)
		}

		p.Date = &day
	} else {
		p.HasTime = false
	}

	return p, ledger.Validate(p)
}

// Ready reports whether the add action should be enabled.
func (in AddInput) Ready(kind record.Kind) bool {
	_, err := in.Params(kind, time.Local)
	return err == nil
}

type addFocusMsg struct{}

type addedMsg struct {
	record *record.Record
	err    error
}

type AddModel struct {
	ledger *ledger.Service
	kind   record.Kind
	delay  time.Duration

	input  *AddInput
	submit *bool
	form   *huh.Form

	focused bool
	saving  bool
	err     error
}

// NewAddModel builds the add form for kind. Input focus is granted delay after Init.
func NewAddModel(l *ledger.Service, kind record.Kind, delay time.Duration) AddModel {
	m := AddModel{
		ledger: l,
		kind:   kind,
		delay:  delay,
		input:  &AddInput{Date: time.Now().Format(time.DateOnly)},
		submit: new(bool),
	}
	m.form = m.buildForm()

	return m
}

func (m AddModel) Title() string {
	return "New " + strings.ToUpper(string(m.kind[:1])) + string(m.kind[1:])
}

func (m AddModel) ShortHelp() string {
	return "Enter/Tab: next | Esc: cancel"
}

func (m AddModel) Init() tea.Cmd {
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return addFocusMsg{}
	})
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addFocusMsg:
		m.focused = true
		return m, m.form.Init()

	case addedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			*m.submit = false
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if !m.focused || m.saving {
			return m, nil
		}
	}

	if !m.focused || m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.submit {
		return m, Back
	}

	m.saving = true
	m.err = nil

	return m, m.addCmd()
}

func (m AddModel) addCmd() tea.Cmd {
	l, kind, in := m.ledger, m.kind, *m.input

	return func() tea.Msg {
		p, err := in.Params(kind, time.Local)
		if err != nil {
			return addedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		r, err := l.Add(ctx, p)
		return addedMsg{record: r, err: err}
	}
}

func (m AddModel) buildForm() *huh.Form {
	in, kind := m.input, m.kind

	dateDesc := "Leave empty for an undated expense"
	if kind == record.KindIncome {
		dateDesc = "Required for incomes"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&in.Amount).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Description(dateDesc).
				Placeholder("YYYY-MM-DD").
				Value(&in.Date).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						if kind == record.KindIncome {
							return record.ErrMissingDate
						}

						return nil
					}

					if _, err := time.ParseInLocation(time.DateOnly, s, time.Local); err != nil {
						return errors.New("date must be YYYY-MM-DD")
					}

					return nil
				}),

			huh.NewConfirm().
				Key("has_time").
				Title("Include a time of day?").
				Affirmative("Yes").
				Negative("No").
				Value(&in.HasTime),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("time").
				Title("Time").
				Placeholder("HH:MM").
				Value(&in.Time).
				Validate(func(s string) error {
					_, _, err := parseClock(s)
					return err
				}),
		).WithHideFunc(func() bool {
			return !in.HasTime || strings.TrimSpace(in.Date) == ""
		}),

		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&in.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return record.ErrEmptyTitle
					}

					return nil
				}),

			huh.NewText().
				Key("note").
				Title("Note (optional)").
				Lines(3).
				Value(&in.Note),

			huh.NewConfirm().
				Key("submit").
				Title(fmt.Sprintf("Add this %s?", kind)).
				Affirmative("Add").
				Negative("Cancel").
				Value(m.submit).
				Validate(func(ok bool) error {
					if !ok {
						return nil
					}

					_, err := in.Params(kind, time.Local)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m AddModel) View() string {
	if !m.focused {
		return lipgloss.NewStyle().Padding(1).Render(m.Title() + "\n\n" + faintStyle.Render("..."))
	}

	if m.saving {
		return lipgloss.NewStyle().Padding(1).Render("Saving...")
	}

	action := faintStyle.Render("[ Add ] fill in a title and a positive amount")
	if m.input.Ready(m.kind) {
		action = activeStyle.Render("[ Add ]")
	}

	s := lipgloss.NewStyle().Bold(true).Render(m.Title()) + "\n\n" + m.form.View() + "\n\n" + action

	if m.err != nil {
		s += "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(s)
}
