package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/budgettracker/internal/matching"
)

type rulesState int

const (
	rulesStateList rulesState = iota
	rulesStateEditing
)

// ruleItem wraps a title rule to implement list.Item.
type ruleItem struct {
	rule matching.Rule
}

func (i ruleItem) Title() string {
	return fmt.Sprintf("%q  →  %s", i.rule.Pattern, i.rule.Title)
}

func (i ruleItem) Description() string {
	return "Added " + i.rule.CreatedAt.Local().Format(time.DateOnly)
}

func (i ruleItem) FilterValue() string {
	return i.rule.Pattern + " " + i.rule.Title
}

type ruleFields struct {
	pattern string
	title   string
}

// RulesModel lists the title rules applied on import and lets new ones be added.
type RulesModel struct {
	matchingService *matching.Service

	state  rulesState
	list   list.Model
	form   *huh.Form
	fields *ruleFields

	loading bool
	status  string
	err     error
}

func NewRulesModel(matchSvc *matching.Service) RulesModel {
	l := list.New([]list.Item{}, ruleItemDelegate{}, 80, 20)
	l.Title = "Title Rules"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return RulesModel{
		matchingService: matchSvc,
		list:            l,
		fields:          &ruleFields{},
		loading:         true,
	}
}

func (m RulesModel) Title() string { return "Title Rules" }

func (m RulesModel) ShortHelp() string {
	if m.state == rulesStateEditing {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | n: new rule | /: filter"
}

func (m RulesModel) Init() tea.Cmd {
	return m.loadRulesCmd()
}

type loadRulesMsg struct {
	rules []matching.Rule
	err   error
}

type saveRuleMsg struct {
	rule matching.Rule
	err  error
}

func (m RulesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRulesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		items := make([]list.Item, len(msg.rules))
		for i, r := range msg.rules {
			items[i] = ruleItem{rule: r}
		}

		return m, m.list.SetItems(items)

	case saveRuleMsg:
		m.state = rulesStateList
		m.form = nil

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.status = fmt.Sprintf("Titles containing %q become %q.", msg.rule.Pattern, msg.rule.Title)

		return m, m.loadRulesCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, max(msg.Height-8, 5))
		return m, nil
	}

	switch m.state {
	case rulesStateList:
		return m.updateList(msg)
	case rulesStateEditing:
		return m.updateEditing(msg)
	}

	return m, nil
}

func (m RulesModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() == list.Unfiltered {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.startEditing()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m RulesModel) startEditing() (tea.Model, tea.Cmd) {
	m.fields = &ruleFields{}
	m.status = ""

	nonEmpty := func(what string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", what)
			}

			return nil
		}
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("pattern").
				Title("When the title contains").
				Placeholder("e.g. COMPRA 1234 PINGO DOCE").
				Value(&m.fields.pattern).
				Validate(nonEmpty("pattern")),

			huh.NewInput().
				Key("title").
				Title("Use the title").
				Value(&m.fields.title).
				Validate(nonEmpty("title")),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = rulesStateEditing

	return m, m.form.Init()
}

func (m RulesModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = rulesStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveRuleCmd()
}

func (m RulesModel) View() string {
	if m.state == rulesStateEditing {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Bold(true).Render("New Title Rule") + "\n\n" + m.form.View(),
		)
	}

	body := m.list.View()
	if m.loading {
		body = "Loading rules..."
	}

	if m.status != "" {
		body += "\n" + successStyle.Render(m.status)
	}

	if m.err != nil {
		body += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(body + "\n" + faintStyle.Render(m.ShortHelp()))
}

func (m RulesModel) loadRulesCmd() tea.Cmd {
	svc := m.matchingService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rules, err := svc.Rules(ctx)
		return loadRulesMsg{rules: rules, err: err}
	}
}

func (m RulesModel) saveRuleCmd() tea.Cmd {
	svc := m.matchingService
	pattern, title := m.fields.pattern, m.fields.title

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rule, err := svc.Learn(ctx, pattern, title)
		return saveRuleMsg{rule: rule, err: err}
	}
}

// ruleItemDelegate renders items in the list.
type ruleItemDelegate struct{}

func (d ruleItemDelegate) Height() int                             { return 2 }
func (d ruleItemDelegate) Spacing() int                            { return 0 }
func (d ruleItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d ruleItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ruleItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = activeStyle.Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", faintStyle.Render(i.Description()))
}
