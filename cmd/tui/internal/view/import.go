package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/budgettracker/internal/importer"
	"github.com/MrJamesThe3rd/budgettracker/internal/money"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStatePreview
	importStateImporting
	importStateResult
)

type ImportModel struct {
	importService *importer.Service
	money         *money.Formatter

	state      importState
	filePicker filepicker.Model
	path       string

	entries []importer.Entry
	preview list.Model

	result importer.Result
	status string
	err    error
}

func NewImportModel(impSvc *importer.Service, f *money.Formatter) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		money:         f,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "Enter: import all | Esc: cancel"
	case importStateResult:
		return "Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

type parsedMsg struct {
	entries []importer.Entry
	err     error
}

type importResultMsg struct {
	result importer.Result
	err    error
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case parsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.entries) == 0 {
			m.state = importStateResult
			m.status = "The file holds no records."

			return m, nil
		}

		m.entries = msg.entries
		m.state = importStatePreview

		items := make([]list.Item, len(m.entries))
		for i, e := range m.entries {
			items[i] = entryItem{entry: e, money: m.money}
		}

		m.preview = list.New(items, entryDelegate{}, 80, 20)
		m.preview.Title = fmt.Sprintf("%d rows in %s", len(m.entries), filepath.Base(m.path))
		m.preview.SetShowStatusBar(false)
		m.preview.SetFilteringEnabled(false)
		m.preview.SetShowHelp(false)

		return m, nil

	case importResultMsg:
		m.state = importStateResult
		m.result = msg.result
		m.status = fmt.Sprintf("Imported %d records.", len(msg.result.Added))

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error after %d records: %v", len(msg.result.Added), msg.err)
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.path = path
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.entries = nil
		m.result = importer.Result{}
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	case importStateParsing, importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing %d rows...", len(m.entries))

		return m, m.importCmd(m.path)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a CSV file to import:\n\n%s", m.filePicker.View()),
		)
	case importStateParsing, importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(
			m.preview.View() + "\n" + faintStyle.Render(m.ShortHelp()),
		)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	status := successStyle.Render(m.status)
	if m.err != nil {
		status = errorStyle.Render(m.status)
	}

	var b strings.Builder
	b.WriteString(status)

	if len(m.result.Skipped) > 0 {
		fmt.Fprintf(&b, "\n\nSkipped %d rows:\n", len(m.result.Skipped))

		for _, s := range m.result.Skipped {
			fmt.Fprintf(&b, "  line %d  %s: %v\n", s.Line, s.Title, s.Err)
		}
	}

	b.WriteString("\n\n(Esc to go back)")

	return style.Render(b.String())
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		entries, err := svc.Parse(f)
		return parsedMsg{entries: entries, err: err}
	}
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := svc.Import(ctx, f)
		return importResultMsg{result: result, err: err}
	}
}

// Preview list item

type entryItem struct {
	entry importer.Entry
	money *money.Formatter
}

func (i entryItem) Title() string {
	p := i.entry.Params

	day := "no date"
	if p.Date != nil {
		day = p.Date.Format(time.DateOnly)
	}

	return fmt.Sprintf("%-10s  %12s  %s", day, i.money.Signed(p.Amount, p.Kind == record.KindExpense), p.Title)
}

func (i entryItem) Description() string { return i.entry.Params.Note }
func (i entryItem) FilterValue() string { return i.entry.Params.Title }

// Preview list delegate

type entryDelegate struct{}

func (d entryDelegate) Height() int                             { return 2 }
func (d entryDelegate) Spacing() int                            { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(entryItem)
	if !ok {
		return
	}

	title := fmt.Sprintf("line %-4d %s", item.entry.Line, item.Title())
	if index == m.Index() {
		title = activeStyle.Render("> " + title)
	} else {
		title = "  " + title
	}

	fmt.Fprintln(w, title)

	desc := item.Description()
	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", faintStyle.Render(desc))
}
