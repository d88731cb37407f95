package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/budgettracker/internal/record"
	"github.com/MrJamesThe3rd/budgettracker/internal/section"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type Screen int

const (
	ScreenHome Screen = iota
	ScreenAdd
	ScreenSeeMore
	ScreenDetail
	ScreenImport
	ScreenExport
	ScreenRules
)

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenMsg asks the root model to switch to another screen.
type OpenMsg struct {
	Screen Screen
	Kind   record.Kind
	// Nav is set when the switch was requested by a section.
	Nav *section.NavigationRequest
}

func open(screen Screen, kind record.Kind, nav *section.NavigationRequest) tea.Cmd {
	return func() tea.Msg {
		return OpenMsg{Screen: screen, Kind: kind, Nav: nav}
	}
}

// RecordChangedMsg carries a store event into the program.
type RecordChangedMsg struct {
	Event record.Event
}

var (
	_ View = HomeModel{}
	_ View = AddModel{}
	_ View = SeeMoreModel{}
	_ View = DetailModel{}
	_ View = ImportModel{}
	_ View = ExportModel{}
	_ View = RulesModel{}
)
