package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Plan",
		"Type",
		"Start Month",
		"End Month",
		"Control Month",
		"Tolerance Months",
		"Installments",
		"Total Amount",
		"Monthly Estimate",
		"Minimum At Control",
		"Last Enrollment Month",
		"Arrears",
		"Remaining",
		"Installments Diff",
		"Total Diff from Base",
		"Total % Change",
		"Monthly Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, planType string) []string {
	return []string{
		result.PlanName,
		planType,
		strconv.Itoa(int(result.StartMonth)),
		strconv.Itoa(int(result.EndMonth)),
		strconv.Itoa(int(result.ControlMonth)),
		strconv.Itoa(result.ToleranceMonths),
		strconv.Itoa(result.TotalInstallments),
		result.TotalAmount.StringFixed(2),
		result.MonthlyEstimate.StringFixed(2),
		strconv.Itoa(result.MinimumAtControl),
		strconv.Itoa(int(result.LastEnrollmentMonth)),
		strconv.Itoa(result.ArrearsCount),
		strconv.Itoa(result.RemainingCount),
		strconv.Itoa(result.InstallmentsDiff),
		result.TotalDiffFromBase.StringFixed(2),
		result.TotalPctFromBase.StringFixed(2),
		result.MonthlyDiff.StringFixed(2),
	}
}
