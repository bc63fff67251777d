// Package tui is the interactive dashboard: a live fasting timer with
// water logging, streak stats, history, and the reminder schedule.
package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/fastward/fastward/internal/constants"
	"github.com/fastward/fastward/internal/fasting"
	"github.com/fastward/fastward/internal/models"
)

type view int

const (
	viewTimer view = iota
	viewHistory
	viewSchedule
)

// confirmAction marks which destructive action the confirm prompt guards.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmCancel
)

type StartFormModel struct {
	Protocol    string
	CustomHours string
}

type Model struct {
	fasting *fasting.Service
	userID  string

	view     view
	keys     KeyMap
	help     help.Model
	now      time.Time
	quitting bool
	width    int
	height   int

	active   *models.FastingSession
	profile  models.Profile
	streaks  models.StreakResult
	history  []models.FastingSession
	plan     models.NotificationPlan
	loadErr  error
	notice   string
	confirm  confirmAction
	form     *huh.Form
	formData *StartFormModel
}

func NewModel(svc *fasting.Service, userID string) Model {
	m := Model{
		fasting: svc,
		userID:  userID,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		now:     time.Now(),
	}
	m.refresh()
	return m
}

// refresh reloads everything the dashboard shows. The data set is small,
// so a full reload after every mutation keeps the views trivially
// consistent.
func (m *Model) refresh() {
	m.loadErr = nil

	profile, err := m.fasting.Profile(m.userID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.profile = profile

	active, err := m.fasting.GetActiveSession(m.userID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.active = active

	streaks, err := m.fasting.Streaks(m.userID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.streaks = streaks

	history, err := m.fasting.GetSessionHistory(m.userID, constants.HistoryDefaultLimit, 0)
	if err != nil {
		m.loadErr = err
		return
	}
	m.history = history

	plan, err := m.fasting.Plan(m.userID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.plan = plan
}

func (m *Model) newStartForm() {
	data := &StartFormModel{Protocol: m.profile.DefaultProtocol}
	options := make([]huh.Option[string], 0, len(models.BuiltinProtocols)+1)
	for _, p := range models.BuiltinProtocols {
		options = append(options, huh.NewOption(p.Name, p.Name))
	}
	options = append(options, huh.NewOption("custom", "custom"))

	m.formData = data
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Protocol").
				Options(options...).
				Value(&data.Protocol),
			huh.NewInput().
				Title("Custom hours").
				Description("Only used when protocol is \"custom\".").
				Placeholder("20").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := strconv.Atoi(s)
					return err
				}).
				Value(&data.CustomHours),
		),
	)
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}
