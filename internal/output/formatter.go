package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/campworks/cycleplan/internal/domain"
	ierr "github.com/campworks/cycleplan/internal/errors"
)

// Formatter renders a timeline report.
type Formatter interface {
	Name() string
	Format(report *domain.TimelineReport) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *domain.TimelineReport) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.TimelineReport) ([]byte, error) {
	return f.F(report)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"csv":     CSVFormatter{},
	"json":    JSONFormatter{},
	"html":    HTMLFormatter{},
}

var aliases = map[string]string{
	"text":  "console",
	"table": "console",
	"htm":   "html",
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted alternative format names.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders report with f into a timestamped file in the
// working directory and returns its name.
func WriteFormatted(f Formatter, report *domain.TimelineReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("cycleplan_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", ierr.WithError(err).WithMessagef("failed to write %s", filename).Mark(ierr.ErrValidation)
	}
	return filename, nil
}

func requireReport(report *domain.TimelineReport) error {
	if report == nil {
		return ierr.NewError("nothing to format").Mark(ierr.ErrValidation)
	}
	return nil
}

// monthYear returns the calendar year of a cycle month.
func monthYear(cycleYear int, m domain.CycleMonth) int {
	if m.CrossesYearBoundary {
		return cycleYear + 1
	}
	return cycleYear
}
