package view

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// TimeframeSelectedMsg is emitted once a range is chosen. End is exclusive; both are zero
// when All is true.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

type timeframeFields struct {
	choice Timeframe
	start  string
	end    string
}

// TimeframePicker selects a preset range, or asks for custom start and end days.
type TimeframePicker struct {
	state    timeframeState
	minFrame Timeframe
	fields   *timeframeFields
	form     *huh.Form
}

// NewTimeframePicker offers the presets from minFrame onwards.
func NewTimeframePicker(minFrame Timeframe) TimeframePicker {
	m := TimeframePicker{minFrame: minFrame}
	m.Reset()

	return m
}

func (m TimeframePicker) Init() tea.Cmd {
	return m.form.Init()
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state == timeframeStateCustom {
		m.Reset()
		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == timeframeStateCustom {
		start, end, err := parseRange(m.fields.start, m.fields.end)
		if err != nil {
			m.Reset()
			return m, m.form.Init()
		}

		return m, selected(TimeframeSelectedMsg{Start: start, End: end})
	}

	switch m.fields.choice {
	case TimeframeCustom:
		m.state = timeframeStateCustom
		m.form = m.customForm()

		return m, m.form.Init()
	case TimeframeAll:
		return m, selected(TimeframeSelectedMsg{All: true})
	}

	start, end := NormalizeDateRange(TimeframeToDateRange(m.fields.choice, time.Now()))

	return m, selected(TimeframeSelectedMsg{Start: start, End: end})
}

func selected(msg TimeframeSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m TimeframePicker) selectForm() *huh.Form {
	options := make([]huh.Option[Timeframe], 0, TimeframeCustom-m.minFrame+1)
	for tf := m.minFrame; tf <= TimeframeCustom; tf++ {
		options = append(options, huh.NewOption(tf.String(), tf))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Timeframe]().
				Key("timeframe").
				Title("Select Timeframe").
				Options(options...).
				Value(&m.fields.choice),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m TimeframePicker) customForm() *huh.Form {
	fields := m.fields

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("start").
				Title("Start Date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(&fields.start).
				Validate(func(s string) error {
					_, err := parseDay(s)
					return err
				}),

			huh.NewInput().
				Key("end").
				Title("End Date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(&fields.end).
				Validate(func(s string) error {
					_, _, err := parseRange(fields.start, s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, errors.New("use YYYY-MM-DD")
	}

	return t, nil
}

// parseRange parses both days and widens them to whole days.
func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDay(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start date (YYYY-MM-DD)")
	}

	end, err := parseDay(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end date (YYYY-MM-DD)")
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end date is before start date")
	}

	start, end = NormalizeDateRange(start, end)

	return start, end, nil
}

func (m TimeframePicker) View() string {
	hint := "(Enter to select, Esc to back)"
	if m.state == timeframeStateCustom {
		hint = "(Enter to confirm, Esc to presets)"
	}

	return m.form.View() + "\n\n" + faintStyle.Render(hint)
}

// IsSelecting reports whether the preset list is showing rather than the custom inputs.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

// Reset returns the picker to the preset list.
func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.fields = &timeframeFields{choice: m.minFrame}
	m.form = m.selectForm()
}
