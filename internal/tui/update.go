package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/campworks/cycleplan/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.loading = false
		m.config = msg.Config
		if msg.Config != nil && len(msg.Config.Plans) > 0 {
			m = m.withPlans(msg.Config.Plans)
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.err != nil {
		// any key dismisses the error
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.focused = (m.focused + fieldCount - 1) % fieldCount
	case key.Matches(msg, m.keys.Right):
		m.focused = (m.focused + 1) % fieldCount
	case key.Matches(msg, m.keys.Up):
		m = m.adjust(1).recalculate()
	case key.Matches(msg, m.keys.Down):
		m = m.adjust(-1).recalculate()
	case key.Matches(msg, m.keys.NextPlan):
		m.planIndex = (m.planIndex + 1) % len(m.plans)
		m = m.selectPlan()
	case key.Matches(msg, m.keys.Earlier):
		m.currentMonth = shiftJoining(m.currentMonth, -1)
		m = m.recalculate()
	case key.Matches(msg, m.keys.Later):
		m.currentMonth = shiftJoining(m.currentMonth, 1)
		m = m.recalculate()
	case key.Matches(msg, m.keys.Reset):
		m = m.selectPlan()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// adjust moves the focused field by delta. Months wrap around the year;
// tolerance stays within 0..11.
func (m Model) adjust(delta int) Model {
	switch m.focused {
	case FieldStart:
		m.step = m.step.WithStart(m.step.Start().Add(delta))
	case FieldEnd:
		m.step = m.step.WithEnd(m.step.End().Add(delta))
	case FieldControl:
		m.step = m.step.WithControl(m.step.Control().Add(delta))
	case FieldTolerance:
		t := m.step.Tolerance() + delta
		if t >= 0 && t <= domain.MonthsPerYear-1 {
			m.step = m.step.WithTolerance(t)
		}
	}
	return m
}

// shiftJoining cycles the joining month through none, January..December.
func shiftJoining(m domain.Month, delta int) domain.Month {
	return domain.Month((int(m) + delta + 13) % 13)
}
