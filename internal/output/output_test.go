package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/campworks/cycleplan/internal/calculation"
	"github.com/campworks/cycleplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestReport(t *testing.T, opts calculation.TimelineOptions) *domain.TimelineReport {
	t.Helper()
	fixed := decimal.NewFromInt(21000)
	cfg := &domain.Configuration{
		Campaign: domain.Campaign{Name: "Summer Camp", Currency: "$", CycleYear: 2025},
		Plans: []domain.PaymentPlan{
			{
				Name:        "Plan A",
				Kind:        domain.PlanKindPrimary,
				Cycle:       domain.CyclePlan{StartMonth: 3, EndMonth: 1, ControlMonth: 7, ToleranceMonths: 1, DueDay: 10},
				TotalAmount: decimal.NewFromInt(120000),
			},
			{
				Name:                   "Plan B",
				Kind:                   domain.PlanKindContingency,
				Cycle:                  domain.CyclePlan{StartMonth: 7, EndMonth: 1, ControlMonth: 7, DueDay: 31},
				TotalAmount:            decimal.NewFromInt(140000),
				FixedInstallmentAmount: &fixed,
			},
		},
	}
	report, err := calculation.NewEngine().BuildTimeline(testContext(t), cfg, opts)
	require.NoError(t, err)
	return report
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(report *domain.TimelineReport) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := formatter.Format(&domain.TimelineReport{})

	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, "test-formatter", formatter.Name())
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	chdirForTest(t, t.TempDir())

	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(*domain.TimelineReport) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}

	filename, err := WriteFormatted(formatter, &domain.TimelineReport{}, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "cycleplan_report_"), "Should have correct prefix")
	assert.True(t, strings.HasSuffix(filename, ".txt"), "Should have correct extension")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "error-formatter",
		F: func(*domain.TimelineReport) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	filename, err := WriteFormatted(formatter, &domain.TimelineReport{}, "txt")

	assert.Error(t, err)
	assert.Empty(t, filename, "Should return empty filename on error")
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "csv", "json", "html"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "console", GetFormatterByName("TABLE").Name(), "Aliases resolve case-insensitively")
	assert.Equal(t, "html", GetFormatterByName("htm").Name())
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json"}, AvailableFormatterNames())
	assert.Equal(t, []string{"htm", "table", "text"}, AvailableFormatAliases())
}

func TestFormatters_NilReport(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		_, err := GetFormatterByName(name).Format(nil)
		assert.Error(t, err, name)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		symbol string
		want   string
	}{
		{"0", "$", "$0.00"},
		{"999.5", "$", "$999.50"},
		{"10909.09", "$", "$10,909.09"},
		{"1234567.891", "$", "$1,234,567.89"},
		{"-1500", "$", "-$1,500.00"},
		{"120000", "ARS", "ARS 120,000.00"},
		{"12", "", "$12.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.amount), tt.symbol))
	}
}

func TestConsoleFormatter_Format(t *testing.T) {
	report := buildTestReport(t, calculation.TimelineOptions{CurrentMonth: 5, IncludeSchedule: true})

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "PAYMENT PLAN TIMELINE: Summer Camp (2025)")
	assert.Contains(t, content, "Joining in: May")
	assert.Contains(t, content, "Plan A [primary]")
	assert.Contains(t, content, "Installments:        11")
	assert.Contains(t, content, "Monthly estimate:    $10,909.09")
	assert.Contains(t, content, "Last enrollment:     June")
	assert.Contains(t, content, "Control:             July (4 installments due, 1 months tolerance)")
	assert.Contains(t, content, "Jun 2025")
	assert.Contains(t, content, "<- last enrollment")
	assert.Contains(t, content, "<- control")
	assert.Contains(t, content, "---- 2026 ----")
	assert.Contains(t, content, "Jan 2026")
	assert.Contains(t, content, "In arrears:          2")
	assert.Contains(t, content, "2025-03-10")
	assert.Contains(t, content, "in arrears")
	assert.Contains(t, content, "WARNING: 7 x $21,000.00 = $147,000.00 differs from the total by $7,000.00")
	assert.Contains(t, content, "2025-07-31")
}

func TestConsoleFormatter_Format_NoSchedule(t *testing.T) {
	report := buildTestReport(t, calculation.TimelineOptions{})

	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "SCHEDULE")
	assert.NotContains(t, string(out), "ENROLLMENT PROJECTION")
}

func TestCSVFormatter_Format(t *testing.T) {
	report := buildTestReport(t, calculation.TimelineOptions{IncludeSchedule: true})

	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+11+7, "Header plus one row per cycle month")

	assert.Equal(t, "Plan", records[0][0])
	first := records[1]
	assert.Equal(t, []string{"Plan A", "primary", "1", "3", "2025", "open_enrollment", "false", "false", "2025-03-10", "10909.09", "false"}, first)

	control := records[5]
	assert.Equal(t, "7", control[3])
	assert.Equal(t, "control_start", control[5])
	assert.Equal(t, "true", control[7])

	last := records[11]
	assert.Equal(t, "1", last[3])
	assert.Equal(t, "2026", last[4])
	assert.Equal(t, "10909.10", last[9])
}

func TestCSVFormatter_Format_WithoutSchedule(t *testing.T) {
	report := buildTestReport(t, calculation.TimelineOptions{})

	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, records[1][8], "Due date is empty without a schedule")
}

func TestJSONFormatter_Format(t *testing.T) {
	report := buildTestReport(t, calculation.TimelineOptions{CurrentMonth: 5})

	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var decoded domain.TimelineReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Summer Camp", decoded.Campaign.Name)
	require.Len(t, decoded.Plans, 2)
	assert.Equal(t, 11, decoded.Plans[0].Summary.TotalInstallments)
	require.NotNil(t, decoded.Plans[0].Projection)
	assert.Equal(t, 2, decoded.Plans[0].Projection.ArrearsCount)
}

func TestHTMLFormatter_Format(t *testing.T) {
	report := buildTestReport(t, calculation.TimelineOptions{CurrentMonth: 5, IncludeSchedule: true})

	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Summer Camp payment plans</title>")
	assert.Contains(t, content, "<h2>Plan A <small>primary</small></h2>")
	assert.Contains(t, content, `<tr class="control_start">`)
	assert.Contains(t, content, "January 2026")
	assert.Contains(t, content, "last enrollment")
	assert.Contains(t, content, "class=\"warning\"")
	assert.Contains(t, content, "$10,909.09")
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

// testContext returns a context canceled when the test finishes
// (equivalent of testing.T.Context, Go 1.24+).
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
