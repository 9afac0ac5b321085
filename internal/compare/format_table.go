package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("PAYMENT PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BasePlanName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	if compSet.CurrentMonth != 0 {
		sb.WriteString(fmt.Sprintf("Joining in: %s\n", compSet.CurrentMonth))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %9s %*s %*s %*s\n",
		nameWidth, "Plan",
		"Cycle",
		numWidth, "Installments",
		numWidth, "Monthly",
		numWidth, "Total"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, compSet.Currency, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, compSet.Currency, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.PlanName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Total:            %s%s%s (%s%%)\n",
				tf.deltaSymbol(alt.TotalDiffFromBase),
				compSet.Currency,
				tf.formatDecimal(alt.TotalDiffFromBase.Abs()),
				alt.TotalPctFromBase.StringFixed(1)))

			if !alt.MonthlyDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Monthly:          %s%s%s\n",
					tf.deltaSymbol(alt.MonthlyDiff),
					compSet.Currency,
					alt.MonthlyDiff.Abs().StringFixed(2)))
			}

			if alt.InstallmentsDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Installments:     %+d\n", alt.InstallmentsDiff))
			}

			if alt.ControlShift != 0 {
				sb.WriteString(fmt.Sprintf("  Due by control:   %+d installments\n", alt.ControlShift))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single plan row
func (tf *TableFormatter) formatRow(result *ComparisonResult, currency string, nameWidth, numWidth int, isBase bool) string {
	if result == nil {
		return ""
	}
	name := result.PlanName
	if isBase {
		name += " (base)"
	}

	cycle := fmt.Sprintf("%s-%s", result.StartMonth.Short(), result.EndMonth.Short())
	installments := fmt.Sprintf("%d", result.TotalInstallments)
	if result.ArrearsCount > 0 {
		installments = fmt.Sprintf("%d (%d late)", result.TotalInstallments, result.ArrearsCount)
	}

	return fmt.Sprintf("%-*s %9s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		cycle,
		numWidth, installments,
		numWidth, currency+result.MonthlyEstimate.StringFixed(2),
		numWidth, currency+tf.formatDecimal(result.TotalAmount))
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each plan
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BasePlanName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.TotalDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+%s%s", compSet.Currency, tf.formatDecimal(alt.TotalDiffFromBase))
		} else if alt.TotalDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-%s%s", compSet.Currency, tf.formatDecimal(alt.TotalDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.PlanName, change))
	}

	return sb.String()
}
