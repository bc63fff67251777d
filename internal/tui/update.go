package tui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/fastward/fastward/internal/fasting"
	"github.com/fastward/fastward/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.now = time.Time(msg)
		// An elapsed fast finalizes on the next read; refresh picks that
		// up and moves it into history.
		if m.active != nil && m.active.IsElapsed(m.now) {
			m.refresh()
			m.notice = "Fast complete! 🎉"
		}
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The start form owns the keyboard while open.
	if m.form != nil {
		if msg.String() == "esc" {
			m.form = nil
			m.formData = nil
			return m, nil
		}
		return m.updateForm(msg)
	}

	if m.confirm != confirmNone {
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextView):
		m.view = (m.view + 1) % 3
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Start):
		if m.active != nil {
			m.notice = "A fast is already running."
			return m, nil
		}
		m.newStartForm()
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Cancel):
		if m.active == nil {
			m.notice = "No fast to cancel."
			return m, nil
		}
		m.confirm = confirmCancel
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		return m.completeActive()

	case key.Matches(msg, m.keys.WaterAdd):
		return m.logWater(true)

	case key.Matches(msg, m.keys.WaterRemove):
		return m.logWater(false)
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.confirm == confirmCancel && m.active != nil {
			if _, err := m.fasting.CancelFast(m.userID, m.active.ID); err != nil {
				m.notice = fmt.Sprintf("Cancel failed: %v", err)
			} else {
				m.notice = "Fast cancelled."
			}
			m.refresh()
		}
	}
	m.confirm = confirmNone
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.startFromForm()
		m.form = nil
		m.formData = nil
	}
	return m, cmd
}

func (m *Model) startFromForm() {
	proto, ok := models.ProtocolByName(m.formData.Protocol)
	if !ok {
		hours, err := strconv.Atoi(m.formData.CustomHours)
		if err != nil || hours <= 0 {
			m.notice = "Enter a positive hour count for a custom fast."
			return
		}
		proto = models.CustomProtocol(hours)
	}

	if _, err := m.fasting.StartFast(m.userID, proto); err != nil {
		if errors.Is(err, fasting.ErrSessionConflict) {
			m.notice = "A fast is already running."
		} else {
			m.notice = fmt.Sprintf("Start failed: %v", err)
		}
	} else {
		m.notice = fmt.Sprintf("Started a %s fast.", proto.Name)
	}
	m.refresh()
}

func (m Model) completeActive() (tea.Model, tea.Cmd) {
	if m.active == nil {
		m.notice = "No fast to complete."
		return m, nil
	}
	if _, err := m.fasting.CompleteFast(m.userID, m.active.ID); err != nil {
		if errors.Is(err, fasting.ErrInvalidInput) {
			m.notice = "The fast hasn't reached its target yet."
		} else {
			m.notice = fmt.Sprintf("Complete failed: %v", err)
		}
		return m, nil
	}
	m.notice = "Fast completed. Nice work!"
	m.refresh()
	return m, nil
}

func (m Model) logWater(add bool) (tea.Model, tea.Cmd) {
	if m.active == nil {
		m.notice = "Water is tracked per fast; start one first."
		return m, nil
	}
	var err error
	if add {
		_, err = m.fasting.AddWater(m.userID, m.active.ID)
	} else {
		_, err = m.fasting.RemoveWater(m.userID, m.active.ID)
	}
	if err != nil {
		m.notice = fmt.Sprintf("Water update failed: %v", err)
		return m, nil
	}
	m.refresh()
	return m, nil
}
