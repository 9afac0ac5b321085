package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/campworks/cycleplan/internal/domain"
)

var (
	headingStyle     = lipgloss.NewStyle().Bold(true)
	openStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	controlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	contingencyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// ConsoleFormatter renders a human readable timeline.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.TimelineReport) ([]byte, error) {
	if err := requireReport(report); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	currency := report.Campaign.Currency

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, headingStyle.Render(fmt.Sprintf("PAYMENT PLAN TIMELINE: %s (%d)", report.Campaign.Name, report.Campaign.CycleYear)))
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	if report.CurrentMonth != 0 {
		fmt.Fprintf(&buf, "Joining in: %s\n", report.CurrentMonth)
	}

	for _, pt := range report.Plans {
		fmt.Fprintln(&buf)
		writePlanConsole(&buf, report.Campaign.CycleYear, currency, pt)
	}
	return buf.Bytes(), nil
}

func writePlanConsole(buf *bytes.Buffer, cycleYear int, currency string, pt domain.PlanTimeline) {
	plan := pt.Plan
	summary := pt.Summary

	fmt.Fprintf(buf, "%s [%s]\n", headingStyle.Render(plan.Name), plan.Kind)
	fmt.Fprintln(buf, strings.Repeat("-", 72))
	fmt.Fprintf(buf, "  Cycle:               %s to %s\n", plan.Cycle.StartMonth, plan.Cycle.EndMonth)
	fmt.Fprintf(buf, "  Installments:        %d\n", summary.TotalInstallments)
	fmt.Fprintf(buf, "  Total:               %s\n", FormatCurrency(plan.TotalAmount, currency))
	fmt.Fprintf(buf, "  Monthly estimate:    %s\n", FormatCurrency(pt.MonthlyEstimate.Round(2), currency))
	fmt.Fprintf(buf, "  Last enrollment:     %s\n", summary.LastEnrollmentMonth)
	fmt.Fprintf(buf, "  Control:             %s (%d installments due, %d months tolerance)\n",
		plan.Cycle.ControlMonth, summary.MinimumInstallmentsAtControl, plan.Cycle.ToleranceMonths)

	if fa := pt.FixedAmount; fa != nil {
		fmt.Fprintf(buf, "  Fixed installment:   %s\n", FormatCurrency(fa.FixedAmount, currency))
		if !fa.Consistent {
			fmt.Fprintln(buf, contingencyStyle.Render(fmt.Sprintf(
				"  WARNING: %d x %s = %s differs from the total by %s",
				summary.TotalInstallments, FormatCurrency(fa.FixedAmount, currency),
				FormatCurrency(fa.ScheduledTotal, currency), FormatCurrency(fa.Discrepancy, currency))))
		}
	}

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "  TIMELINE")
	for _, m := range summary.Months {
		if m.SequenceIndex > 0 && m.MonthNumber == 1 {
			fmt.Fprintln(buf, mutedStyle.Render(fmt.Sprintf("  ---- %d ----", cycleYear+1)))
		}
		fmt.Fprintf(buf, "  %2d. %s %d  %s%s\n",
			m.SequenceIndex+1, m.MonthNumber.Short(), monthYear(cycleYear, m),
			phaseStyle(m.Phase).Render(fmt.Sprintf("%-16s", m.Phase.Label())),
			monthMarkers(pt, m))
	}

	if p := pt.Projection; p != nil {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "  ENROLLMENT PROJECTION")
		fmt.Fprintf(buf, "  Starts:              %s\n", p.EffectiveStartMonth)
		fmt.Fprintf(buf, "  In arrears:          %d\n", p.ArrearsCount)
		fmt.Fprintf(buf, "  Remaining:           %d\n", p.RemainingCount)
		fmt.Fprintf(buf, "  Estimated monthly:   %s\n", FormatCurrency(p.EstimatedMonthlyAmount, currency))
	}

	if len(pt.Schedule) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "  SCHEDULE")
		for _, inst := range pt.Schedule {
			note := ""
			if inst.InArrears {
				note = contingencyStyle.Render("  in arrears")
			}
			fmt.Fprintf(buf, "  %2d. %s  %14s%s\n",
				inst.Number, inst.DueDate.Format("2006-01-02"), FormatCurrency(inst.Amount, currency), note)
		}
	}
}

func monthMarkers(pt domain.PlanTimeline, m domain.CycleMonth) string {
	var marks []string
	if m.MonthNumber == pt.Summary.LastEnrollmentMonth {
		marks = append(marks, "last enrollment")
	}
	if m.MonthNumber == pt.Plan.Cycle.ControlMonth {
		marks = append(marks, "control")
	}
	if len(marks) == 0 {
		return ""
	}
	return " <- " + strings.Join(marks, ", ")
}

func phaseStyle(p domain.Phase) lipgloss.Style {
	switch p {
	case domain.PhaseOpenEnrollment:
		return openStyle
	case domain.PhaseControlStart:
		return controlStyle
	case domain.PhaseContingency:
		return contingencyStyle
	default:
		return mutedStyle
	}
}
