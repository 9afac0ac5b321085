package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/campworks/cycleplan/internal/output"
	"github.com/campworks/cycleplan/internal/tui/components"
	"github.com/campworks/cycleplan/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return tuistyles.AppStyle.Render("Loading " + m.configPath + "...")
	}
	if m.err != nil {
		return tuistyles.AppStyle.Render(tuistyles.ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}

	sections := []string{
		m.renderTitleBar(),
		m.renderFields(),
		components.Timeline{
			Summary:      m.summary,
			Control:      m.step.Control(),
			CurrentMonth: m.currentMonth,
		}.Render(),
		m.renderSummary(),
	}
	if m.warning != nil {
		sections = append(sections, tuistyles.WarningStyle.Render("! "+m.warning.Error()))
	}
	sections = append(sections, m.help.View(m.keys))

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderTitleBar renders the application title and the selected plan
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("cycleplan - payment cycle preview")

	plan := m.plans[m.planIndex]
	breadcrumb := fmt.Sprintf("%s (%s)", plan.Name, plan.Kind)
	if len(m.plans) > 1 {
		breadcrumb += fmt.Sprintf("  %d/%d", m.planIndex+1, len(m.plans))
	}
	if m.config != nil {
		breadcrumb = m.config.Campaign.Name + " / " + breadcrumb
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(breadcrumb), "")
}

func (m Model) renderFields() string {
	values := map[Field]string{
		FieldStart:     m.step.Start().String(),
		FieldEnd:       m.step.End().String(),
		FieldControl:   m.step.Control().String(),
		FieldTolerance: fmt.Sprintf("%d months", m.step.Tolerance()),
	}

	pickers := make([]string, 0, fieldCount)
	for f := FieldStart; f < fieldCount; f++ {
		picker := components.NewFieldPicker(f.String(), values[f]).SetFocused(f == m.focused)
		pickers = append(pickers, lipgloss.NewStyle().Width(18).Render(picker.Render()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pickers...) + "\n"
}

func (m Model) renderSummary() string {
	if m.summary.TotalInstallments == 0 {
		return ""
	}
	cards := []*components.SummaryCard{
		components.NewSummaryCard("Installments", fmt.Sprintf("%d", m.summary.TotalInstallments)),
		components.NewSummaryCard("Last enrollment", m.summary.LastEnrollmentMonth.String()),
		components.NewSummaryCard("Due by control", fmt.Sprintf("%d", m.summary.MinimumInstallmentsAtControl)),
	}

	plan := m.plans[m.planIndex]
	currency := ""
	if m.config != nil {
		currency = m.config.Campaign.Currency
	}
	if m.projection != nil {
		cards = append(cards, components.NewSummaryCard(
			"Joining "+m.currentMonth.Short(),
			fmt.Sprintf("%d late, %d left", m.projection.ArrearsCount, m.projection.RemainingCount)))
		if !plan.TotalAmount.IsZero() {
			cards = append(cards, components.NewSummaryCard("Monthly",
				output.FormatCurrency(m.projection.EstimatedMonthlyAmount, currency)))
		}
	}
	return components.CardRow(cards...)
}
