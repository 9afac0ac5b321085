package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/campworks/cycleplan/internal/domain"
	"github.com/campworks/cycleplan/internal/tui/tuistyles"
)

// Timeline renders the months of a cycle as a colored strip with markers
// for the last enrollment month, the control month and the year boundary.
type Timeline struct {
	Summary      domain.CycleSummary
	Control      domain.Month
	CurrentMonth domain.Month
}

// Render returns the strip, a marker row and a legend.
func (t Timeline) Render() string {
	if len(t.Summary.Months) == 0 {
		return tuistyles.SubtitleStyle.Render("(empty cycle)")
	}

	var cells, marks []string
	for _, m := range t.Summary.Months {
		label := m.MonthNumber.Short()
		if m.SequenceIndex > 0 && m.MonthNumber == 1 {
			cells = append(cells, tuistyles.SubtitleStyle.Render("│"))
			marks = append(marks, " ")
		}
		cell := tuistyles.PhaseStyle(m.Phase).Render(label)
		cells = append(cells, cell)
		marks = append(marks, lipgloss.PlaceHorizontal(lipgloss.Width(cell), lipgloss.Center, t.marker(m)))
	}

	legend := strings.Join([]string{
		tuistyles.PhaseStyle(domain.PhaseOpenEnrollment).Render(domain.PhaseOpenEnrollment.Label()),
		tuistyles.PhaseStyle(domain.PhaseControlStart).Render(domain.PhaseControlStart.Label()),
		tuistyles.PhaseStyle(domain.PhaseContingency).Render(domain.PhaseContingency.Label()),
		tuistyles.SubtitleStyle.Render("L last enrollment  C control  ▲ joining"),
	}, " ")

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(cells, ""),
		strings.Join(marks, ""),
		legend,
		tuistyles.SubtitleStyle.Render(strconv.Itoa(t.Summary.TotalInstallments)+" installments"),
	)
}

func (t Timeline) marker(m domain.CycleMonth) string {
	var s string
	if m.MonthNumber == t.Summary.LastEnrollmentMonth {
		s += "L"
	}
	if m.MonthNumber == t.Control {
		s += "C"
	}
	if t.CurrentMonth != 0 && m.MonthNumber == t.CurrentMonth {
		s += "▲"
	}
	return s
}
