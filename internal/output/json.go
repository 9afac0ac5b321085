package output

import (
	"encoding/json"

	"github.com/campworks/cycleplan/internal/domain"
)

// JSONFormatter emits the report as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.TimelineReport) ([]byte, error) {
	if err := requireReport(report); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
