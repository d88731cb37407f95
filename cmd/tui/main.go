package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/budgettracker/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/budgettracker/internal/app"
	"github.com/MrJamesThe3rd/budgettracker/internal/config"
	"github.com/MrJamesThe3rd/budgettracker/internal/record"
)

type model struct {
	app *app.App

	current view.Screen
	// previous is where Back returns to from the detail screen.
	previous view.Screen

	home    view.HomeModel
	add     view.AddModel
	seeMore view.SeeMoreModel
	detail  view.DetailModel
	imports view.ImportModel
	export  view.ExportModel
	rules   view.RulesModel
}

func initialModel(a *app.App) model {
	return model{
		app:     a,
		current: view.ScreenHome,
		home:    view.NewHomeModel(a.Lists, a.Money, a.Order),
	}
}

func (m model) Init() tea.Cmd {
	return m.home.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if msg.String() == "q" && m.current == view.ScreenHome {
			return m, tea.Quit
		}

	case view.OpenMsg:
		return m.open(msg)

	case view.BackMsg:
		if m.current == view.ScreenDetail && m.previous == view.ScreenSeeMore {
			m.current = view.ScreenSeeMore
			return m, nil
		}

		m.current = view.ScreenHome
		m.previous = view.ScreenHome

		return m, nil

	case view.RecordChangedMsg:
		var cmds []tea.Cmd

		newHome, cmd := m.home.Update(msg)
		m.home = newHome.(view.HomeModel)
		cmds = append(cmds, cmd)

		if m.current == view.ScreenSeeMore || m.previous == view.ScreenSeeMore {
			newSeeMore, cmd := m.seeMore.Update(msg)
			m.seeMore = newSeeMore.(view.SeeMoreModel)
			cmds = append(cmds, cmd)
		}

		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd

	switch m.current {
	case view.ScreenHome:
		var newModel tea.Model
		newModel, cmd = m.home.Update(msg)
		m.home = newModel.(view.HomeModel)
	case view.ScreenAdd:
		var newModel tea.Model
		newModel, cmd = m.add.Update(msg)
		m.add = newModel.(view.AddModel)
	case view.ScreenSeeMore:
		var newModel tea.Model
		newModel, cmd = m.seeMore.Update(msg)
		m.seeMore = newModel.(view.SeeMoreModel)
	case view.ScreenDetail:
		var newModel tea.Model
		newModel, cmd = m.detail.Update(msg)
		m.detail = newModel.(view.DetailModel)
	case view.ScreenImport:
		var newModel tea.Model
		newModel, cmd = m.imports.Update(msg)
		m.imports = newModel.(view.ImportModel)
	case view.ScreenExport:
		var newModel tea.Model
		newModel, cmd = m.export.Update(msg)
		m.export = newModel.(view.ExportModel)
	case view.ScreenRules:
		var newModel tea.Model
		newModel, cmd = m.rules.Update(msg)
		m.rules = newModel.(view.RulesModel)
	}

	return m, cmd
}

func (m model) open(msg view.OpenMsg) (tea.Model, tea.Cmd) {
	a := m.app
	m.previous = m.current
	m.current = msg.Screen

	switch msg.Screen {
	case view.ScreenAdd:
		m.add = view.NewAddModel(a.Ledger, msg.Kind, a.Config.List.FocusDelay)
		return m, m.add.Init()
	case view.ScreenSeeMore:
		m.seeMore = view.NewSeeMoreModel(a.Records, a.Money, *msg.Nav, m.home.Order())
		return m, m.seeMore.Init()
	case view.ScreenDetail:
		m.detail = view.NewDetailModel(a.Ledger, a.Money, *msg.Nav)
		return m, m.detail.Init()
	case view.ScreenImport:
		m.imports = view.NewImportModel(a.Importer, a.Money)
		return m, m.imports.Init()
	case view.ScreenExport:
		m.export = view.NewExportModel(a.Exporter)
		return m, m.export.Init()
	case view.ScreenRules:
		m.rules = view.NewRulesModel(a.Rules)
		return m, m.rules.Init()
	}

	m.current = view.ScreenHome

	return m, nil
}

func (m model) View() string {
	switch m.current {
	case view.ScreenHome:
		return m.home.View()
	case view.ScreenAdd:
		return m.add.View()
	case view.ScreenSeeMore:
		return m.seeMore.View()
	case view.ScreenDetail:
		return m.detail.View()
	case view.ScreenImport:
		return m.imports.View()
	case view.ScreenExport:
		return m.export.View()
	case view.ScreenRules:
		return m.rules.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialise services", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a), tea.WithAltScreen())

	unsubscribe := a.Records.Subscribe(func(e record.Event) {
		p.Send(view.RecordChangedMsg{Event: e})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
