package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/budgettracker/internal/listing"
	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/section"
)

type homeState int

const (
	homeStateBrowse homeState = iota
	homeStateConfirm
	homeStateDeleting
)

// HomeModel shows the recent days of one kind as sections.
type HomeModel struct {
	lists *listing.Aggregator
	money *money.Formatter

	kind  record.Kind
	order record.SortOrder
	list  *listing.List

	state  homeState
	cursor int

	confirm   *huh.Form
	confirmed *bool
	target    *section.Section

	status string
	err    error
}

func NewHomeModel(lists *listing.Aggregator, f *money.Formatter, order record.SortOrder) HomeModel {
	return HomeModel{
		lists: lists,
		money: f,
		kind:  record.KindExpense,
		order: order,
	}
}

func (m HomeModel) Title() string { return "Budget Tracker" }

func (m HomeModel) ShortHelp() string {
	switch m.state {
	case homeStateConfirm:
		return "Enter: choose | Esc: cancel"
	case homeStateDeleting:
		return "Deleting..."
	}

	return "Tab: kind | s: sort | m: more/less | Enter: detail | a: add | d: delete | r: refresh\n" +
		"i: import | x: export | t: title rules | q: quit"
}

func (m HomeModel) Kind() record.Kind       { return m.kind }
func (m HomeModel) Order() record.SortOrder { return m.order }

func (m HomeModel) Init() tea.Cmd {
	return m.composeCmd()
}

type composedMsg struct {
	list *listing.List
	err  error
}

type deletedMsg struct {
	result section.DeleteResult
	err    error
}

func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case composedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.list = msg.list
		m.clampCursor()

		return m, nil

	case deletedMsg:
		m.state = homeStateBrowse
		m.target = nil

		if msg.err != nil {
			m.err = msg.err
			m.status = ""

			return m, m.composeCmd()
		}

		m.err = nil
		m.status = fmt.Sprintf("Deleted %d %s.", msg.result.Deleted, m.noun(msg.result.Deleted))
		if msg.result.CollectionEmpty {
			m.status += fmt.Sprintf(" No %s left.", m.kind.Plural())
		}

		return m, m.composeCmd()

	case RecordChangedMsg:
		// deletedMsg recomposes once the delete has finished.
		if m.state == homeStateDeleting {
			return m, nil
		}

		return m, m.composeCmd()
	}

	switch m.state {
	case homeStateBrowse:
		return m.updateBrowse(msg)
	case homeStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m HomeModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "shift+tab":
		if m.kind == record.KindExpense {
			m.kind = record.KindIncome
		} else {
			m.kind = record.KindExpense
		}

		m.cursor = 0
		m.list = nil
		m.status = ""

		return m, m.composeCmd()

	case "s":
		if m.order.Name() == record.ByName.Name() {
			m.order = record.ByRecency
		} else {
			m.order = record.ByName
		}

		return m, m.composeCmd()

	case "r":
		m.status = ""
		return m, m.composeCmd()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}

	case "m":
		sec, _ := m.selected()
		if sec == nil {
			return m, nil
		}

		if nav := sec.Toggle(); nav != nil {
			return m, open(ScreenSeeMore, m.kind, nav)
		}

		m.clampCursor()

	case "enter":
		sec, offset := m.selected()
		if sec == nil {
			return m, nil
		}

		nav, err := sec.Detail(offset)
		if err != nil {
			m.err = err
			return m, nil
		}

		return m, open(ScreenDetail, m.kind, &nav)

	case "d":
		sec, offset := m.selected()
		if sec == nil {
			return m, nil
		}

		req, err := sec.MarkDisplayed(offset)
		if err != nil {
			m.err = err
			return m, nil
		}

		m.target = sec
		m.confirmed = new(bool)
		m.confirm = buildConfirmForm(req, m.confirmed)
		m.state = homeStateConfirm

		return m, m.confirm.Init()

	case "a":
		return m, open(ScreenAdd, m.kind, nil)
	case "i":
		return m, open(ScreenImport, m.kind, nil)
	case "x":
		return m, open(ScreenExport, m.kind, nil)
	case "t":
		return m, open(ScreenRules, m.kind, nil)
	}

	return m, nil
}

func (m HomeModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.target.CancelDelete()
		m.target = nil
		m.state = homeStateBrowse

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
		m.target.CancelDelete()
		m.target = nil
		m.state = homeStateBrowse

		return m, nil
	}

	m.state = homeStateDeleting

	return m, m.deleteCmd(m.target)
}

// buildConfirmForm renders a section's delete prompt as a two-option confirm.
func buildConfirmForm(req section.ConfirmationRequest, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(req.Title).
				Description(req.Message).
				Affirmative(req.ConfirmLabel).
				Negative(req.CancelLabel).
				Value(confirmed),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m HomeModel) composeCmd() tea.Cmd {
	lists, kind, order := m.lists, m.kind, m.order

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		l, err := lists.Compose(ctx, kind, order, time.Now())
		return composedMsg{list: l, err: err}
	}
}

func (m HomeModel) deleteCmd(sec *section.Section) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := sec.ConfirmDelete(ctx)
		return deletedMsg{result: res, err: err}
	}
}

func (m HomeModel) visible() []*section.Section {
	if m.list == nil {
		return nil
	}

	return m.list.Visible()
}

func (m HomeModel) rowCount() int {
	n := 0
	for _, sec := range m.visible() {
		n += len(sec.Displayed())
	}

	return n
}

// selected maps the cursor to a section and a row offset inside it.
func (m HomeModel) selected() (*section.Section, int) {
	i := m.cursor
	for _, sec := range m.visible() {
		shown := len(sec.Displayed())
		if i < shown {
			return sec, i
		}

		i -= shown
	}

	return nil, 0
}

func (m *HomeModel) clampCursor() {
	if n := m.rowCount(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m HomeModel) noun(n int) string {
	if n == 1 {
		return string(m.kind)
	}

	return m.kind.Plural()
}

func (m HomeModel) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch {
	case m.state == homeStateConfirm:
		b.WriteString(m.confirm.View())
	case m.state == homeStateDeleting:
		b.WriteString("Deleting...")
	case m.list == nil && m.err == nil:
		b.WriteString("Loading...")
	case m.list != nil:
		b.WriteString(m.viewSections())
	}

	if m.status != "" {
		b.WriteString("\n\n" + successStyle.Render(m.status))
	}

	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	b.WriteString("\n\n" + faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

func (m HomeModel) viewHeader() string {
	segments := make([]string, 0, len(record.Kinds))
	for _, k := range record.Kinds {
		label := strings.ToUpper(k.Plural()[:1]) + k.Plural()[1:]
		if k == m.kind {
			segments = append(segments, activeStyle.Render("["+label+"]"))
			continue
		}

		segments = append(segments, " "+label+" ")
	}

	return fmt.Sprintf("%s   %s   %s",
		lipgloss.NewStyle().Bold(true).Render(m.Title()),
		strings.Join(segments, " "),
		faintStyle.Render("sort: "+m.order.Name()),
	)
}

func (m HomeModel) viewSections() string {
	if m.list.Empty {
		return fmt.Sprintf("No %s yet. Press a to add one.", m.kind.Plural())
	}

	sections := m.visible()
	if len(sections) == 0 {
		return fmt.Sprintf("No %s in the last %d days.", m.kind.Plural(), len(m.list.Sections))
	}

	var b strings.Builder

	row := 0
	for _, sec := range sections {
		header := fmt.Sprintf("%-36s %14s",
			sec.Label(m.list.Now),
			"Total: "+m.money.Signed(sec.Total(), m.kind == record.KindExpense))
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(header) + "\n")

		for _, r := range sec.Displayed() {
			line := fmt.Sprintf("%-30s %12s %s", truncate(r.Title, 30), FormatAmount(m.money, r), clock(r))

			if row == m.cursor {
				b.WriteString(activeStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}

			row++
		}

		if sec.ShowsToggle() {
			b.WriteString(faintStyle.Render("  [m] "+sec.ToggleLabel()) + "\n")
		}

		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func clock(r *record.Record) string {
	if r.Date == nil || !r.HasTime {
		return ""
	}

	return r.Date.Format("15:04")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "…"
}
