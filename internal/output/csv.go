package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/campworks/cycleplan/internal/domain"
)

// CSVFormatter writes one row per cycle month and plan. Due date and amount
// are only filled when the report carries a schedule.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.TimelineReport) ([]byte, error) {
	if err := requireReport(report); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "Kind", "Sequence", "Month", "Year", "Phase", "LastEnrollment", "Control", "DueDate", "Amount", "InArrears"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, pt := range report.Plans {
		for _, m := range pt.Summary.Months {
			row := []string{
				pt.Plan.Name,
				string(pt.Plan.Kind),
				strconv.Itoa(m.SequenceIndex + 1),
				strconv.Itoa(int(m.MonthNumber)),
				strconv.Itoa(monthYear(report.Campaign.CycleYear, m)),
				string(m.Phase),
				strconv.FormatBool(m.MonthNumber == pt.Summary.LastEnrollmentMonth),
				strconv.FormatBool(m.MonthNumber == pt.Plan.Cycle.ControlMonth),
				"", "", "",
			}
			if m.SequenceIndex < len(pt.Schedule) {
				inst := pt.Schedule[m.SequenceIndex]
				row[8] = inst.DueDate.Format("2006-01-02")
				row[9] = inst.Amount.StringFixed(2)
				row[10] = strconv.FormatBool(inst.InArrears)
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
